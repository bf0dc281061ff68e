// Package fips defines the core types and contracts of the FIPS provider bridge: opaque context
// handles, algorithm and curve identifiers, verification outcomes, the error taxonomy shared by
// every context family, and the interface of the validated cryptographic module the bridge drives.
package fips
