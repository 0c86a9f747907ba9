//go:build contracts_disabled

package contract

// enforced is false in this build: Bind still validates configuration, but
// calls skip every spec check and Func returns the original function.
const enforced = false
