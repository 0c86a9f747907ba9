// Package spec provides declarative expectations ("specs") that can be attached
// to function parameters and return values and evaluated against live values at
// call time.
//
// # Overview
//
// A [Spec] is a small immutable value describing what a value must satisfy. It
// is one of a closed set of variants, resolved once at construction time:
//
//   - a type test ([Type], [TypeOf]) — satisfied when the value's runtime type
//     is the target type or implements it,
//   - a predicate test ([Predicate], [PredicateFunc], [For]) — satisfied when a
//     user-supplied single-argument function reports true,
//   - a pass-through ([Pass]) — always satisfied, useful as documentation,
//   - a combinator ([All], [Any]) — a boolean composition of other Specs.
//
// Specs are evaluated with [Spec.Evaluate], which reports whether a value
// satisfies the Spec. Predicates may fail with an error of their own; how such
// errors travel depends on the surrounding combinator (see below).
//
// # Usage
//
//	isEven := spec.For("isEven", func(n int) bool { return n%2 == 0 })
//
//	s := spec.All(spec.Type[int](), isEven)
//	ok, err := s.Evaluate(42) // true, nil
//	ok, err = s.Evaluate(7)   // false, nil
//
// Specs compose freely; a combinator may appear anywhere a Spec is accepted:
//
//	flexible := spec.Any(
//	    spec.Type[int](),
//	    spec.All(spec.Type[string](), nonEmpty),
//	)
//
// # Combinator semantics
//
// [All] is a conjunction: every sub-spec must be satisfied. Sub-specs are
// evaluated left to right and evaluation stops at the first unsatisfied one.
// With no sub-specs, All is vacuously satisfied.
//
// [Any] is a disjunction: at least one sub-spec must be satisfied. Sub-specs
// are evaluated left to right and evaluation stops at the first satisfied one.
// With no sub-specs, Any is never satisfied.
//
// The two differ in how they treat a failing predicate. Under All (and under
// plain evaluation) a predicate error propagates to the caller of Evaluate.
// Under Any, an error — including a type-incompatibility error from a typed
// predicate, or a panic inside the predicate — only marks that one sub-spec as
// unsatisfied, and evaluation continues with the next. This lets an Any list
// mix predicates that are only meaningful for certain input types, such as a
// length check that cannot apply to a number.
//
// # Thread safety
//
// Specs are immutable after construction and safe for concurrent evaluation,
// provided user-supplied predicates are themselves safe to call concurrently.
package spec
