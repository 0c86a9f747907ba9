//go:build !contracts_disabled

package contract

// enforced reports whether spec checks are compiled into this build.
// Build with -tags contracts_disabled to compile checking out.
const enforced = true
