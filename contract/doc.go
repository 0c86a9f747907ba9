// Package contract enforces runtime contracts on function calls: each
// parameter and the return value of a function can declare a [spec.Spec], and
// every call through the contract checks the live values against those
// declarations, failing with an error that names the offending parameter, the
// value, and the expectation it missed.
//
// # Overview
//
// A contract is declared as a [Signature] — the function's ordered parameter
// names plus the specs attached to some of them — and bound to a function
// value exactly once with [Bind]. The resulting [Contract] intercepts calls:
//
//  1. arguments are bound to parameter names, positionally or by name,
//  2. every declared input spec is checked; the first violation aborts the
//     call before the function body runs,
//  3. the original function is invoked with the arguments unchanged,
//  4. a declared return spec is checked against the actual returned value,
//  5. the original results pass through untouched.
//
// A violation surfaces as [*InputValidationError] or [*OutputValidationError];
// both unwrap to [*ValidationError] and match [ErrValidation] with errors.Is.
//
// # Usage
//
//	sum := func(a, b int) float64 { return float64(a + b) }
//
//	c, err := contract.Bind(sum, contract.NewSignature("a", "b").
//	    Check("a", spec.Type[int]()).
//	    Check("b", spec.Type[int]()).
//	    Returns(spec.Type[float64]()))
//	if err != nil {
//	    // the signature does not fit the function
//	}
//
//	results, err := c.Call(1, 3) // []any{4.0}, nil
//
// For call sites that want the wrapped function's own type back, [Contract.Func]
// rebuilds the function with checks woven in, and the generic [Wrap1], [Wrap2]
// and [Wrap3] helpers produce statically typed wrappers that report violations
// through an added error result.
//
// A signature that declares no specs at all produces no interception: Func
// returns the original function value itself.
//
// # Disabling enforcement
//
// Building with -tags contracts_disabled compiles checking out: binding still
// validates the contract's configuration, but calls skip every spec check.
// This mirrors how assertion packages are disabled for production builds.
//
// # Thread safety
//
// A Contract is immutable after Bind and safe for concurrent calls, provided
// the user-supplied predicates inside its specs are.
package contract
