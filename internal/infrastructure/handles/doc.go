// Package handles provides generation-checked slot tables that map opaque fips.Handle values to
// live contexts. A handle encodes a slot index and the slot's generation; releasing a slot bumps
// its generation so stale or forged handles fail resolution instead of reaching freed state.
package handles
