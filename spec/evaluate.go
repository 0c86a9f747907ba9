package spec

import (
	"errors"
	"reflect"
)

// ErrPredicateType is wrapped by typed predicates (see [For] and [Of]) when
// evaluated against a value their test cannot accept. Inside [Any] such an
// error counts as an ordinary unsatisfied sub-spec; everywhere else it
// propagates to the caller of [Spec.Evaluate].
var ErrPredicateType = errors.New("value not applicable to predicate")

// Evaluate reports whether v satisfies the Spec.
//
// Type specs are satisfied when v's runtime type is the target type, or
// implements it when the target is an interface. An untyped nil has no runtime
// type and satisfies no type spec.
//
// Predicate specs invoke the user-supplied test; an error from the test is
// returned as-is alongside false.
//
// All evaluates its sub-specs left to right, stops at the first unsatisfied
// one, and propagates the first sub-spec error it encounters. With no
// sub-specs it is vacuously satisfied.
//
// Any evaluates its sub-specs left to right and stops at the first satisfied
// one. A sub-spec whose evaluation errors or panics counts as unsatisfied and
// evaluation continues with the next. With no sub-specs it is never satisfied.
func (s Spec) Evaluate(v any) (bool, error) {
	switch s.kind {
	case KindPass:
		return true, nil
	case KindType:
		return s.evaluateType(v), nil
	case KindPredicate:
		return s.pred(v)
	case KindAll:
		return s.evaluateAll(v)
	case KindAny:
		return s.evaluateAny(v), nil
	default:
		return true, nil
	}
}

// evaluateType implements the instance-of test: exact type match for concrete
// targets, implementation for interface targets.
func (s Spec) evaluateType(v any) bool {
	t := reflect.TypeOf(v)
	if t == nil {
		return false
	}

	if s.typ.Kind() == reflect.Interface {
		return t.Implements(s.typ)
	}

	return t == s.typ
}

// evaluateAll is the conjunction: every sub-spec must be satisfied, first
// failure or error wins.
func (s Spec) evaluateAll(v any) (bool, error) {
	for _, sub := range s.subs {
		ok, err := sub.Evaluate(v)
		if err != nil {
			return false, err
		}

		if !ok {
			return false, nil
		}
	}

	return true, nil
}

// evaluateAny is the disjunction: the first satisfied sub-spec wins, and a
// sub-spec that errors or panics only counts against itself.
func (s Spec) evaluateAny(v any) bool {
	for _, sub := range s.subs {
		if evaluateLenient(sub, v) {
			return true
		}
	}

	return false
}

// evaluateLenient evaluates a single sub-spec, converting errors and panics
// into an unsatisfied result.
func evaluateLenient(s Spec, v any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	satisfied, err := s.Evaluate(v)

	return err == nil && satisfied
}
