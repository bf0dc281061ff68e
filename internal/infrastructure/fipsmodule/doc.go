// Package fipsmodule implements fips.Module on top of the Go native FIPS 140-3 module.
//
// The operating mode is selected when the process starts (GODEBUG=fips140=on) and cannot
// be changed afterwards, so SetMode only succeeds when it requests the current mode.
package fipsmodule
