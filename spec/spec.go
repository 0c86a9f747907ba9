package spec

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Kind identifies which variant of expectation a Spec carries. The kind is
// resolved once, when the Spec is constructed, and never changes.
type Kind int

const (
	// KindPass is the always-satisfied variant.
	KindPass Kind = iota
	// KindType is an instance-of test against a target type.
	KindType
	// KindPredicate is a user-supplied single-argument test.
	KindPredicate
	// KindAll is a conjunction of sub-specs.
	KindAll
	// KindAny is a disjunction of sub-specs.
	KindAny
)

// String returns the kind's name, for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindPass:
		return "pass"
	case KindType:
		return "type"
	case KindPredicate:
		return "predicate"
	case KindAll:
		return "all"
	case KindAny:
		return "any"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Spec is a declarative expectation a value may or may not satisfy.
// The zero value is a pass-through spec, identical to [Pass].
//
// Specs are immutable; constructors return them by value and all methods take
// value receivers.
type Spec struct {
	kind Kind
	name string
	typ  reflect.Type
	pred func(any) (bool, error)
	subs []Spec
}

// Kind returns the variant this Spec was constructed as.
func (s Spec) Kind() Kind {
	return s.kind
}

// Type returns a Spec satisfied when a value's runtime type is T, or
// implements T when T is an interface type.
//
// Example:
//
//	spec.Type[int]()          // exactly int
//	spec.Type[error]()        // anything implementing error
func Type[T any]() Spec {
	return TypeFromReflect(reflect.TypeOf((*T)(nil)).Elem())
}

// TypeOf returns a Spec satisfied by values whose runtime type matches the
// dynamic type of v. It is a convenience for call sites that have an example
// value rather than a type parameter.
func TypeOf(v any) Spec {
	return TypeFromReflect(reflect.TypeOf(v))
}

// TypeFromReflect returns a Spec satisfied by values of the given reflected
// type, or implementing it when it is an interface type. A nil type yields a
// pass-through spec.
func TypeFromReflect(t reflect.Type) Spec {
	if t == nil {
		return Pass()
	}

	return Spec{
		kind: KindType,
		name: t.String(),
		typ:  t,
	}
}

// Predicate returns a Spec backed by a user-supplied test with full control
// over failure: the test reports whether the value satisfies the spec, and may
// return an error of its own when it cannot meaningfully be applied to the
// value. How that error travels depends on the surrounding combinator; see the
// package documentation.
//
// The name is used in renderings of the Spec and in validation errors.
func Predicate(name string, fn func(any) (bool, error)) Spec {
	return Spec{
		kind: KindPredicate,
		name: name,
		pred: fn,
	}
}

// PredicateFunc returns a Spec backed by a simple boolean test that cannot
// fail on its own.
func PredicateFunc(name string, fn func(any) bool) Spec {
	return Predicate(name, func(v any) (bool, error) {
		return fn(v), nil
	})
}

// For returns a Spec backed by a test over a concrete type T. Evaluating a
// value that is not a T fails with an error wrapping [ErrPredicateType]: under
// plain evaluation and inside [All] that error reaches the caller, while
// inside [Any] it only marks this spec unsatisfied.
//
// Example:
//
//	isEven := spec.For("isEven", func(n int) bool { return n%2 == 0 })
func For[T any](name string, fn func(T) bool) Spec {
	return Predicate(name, func(v any) (bool, error) {
		of, ok := v.(T)
		if !ok {
			return false, fmt.Errorf("%w: %s expects %s, got %T",
				ErrPredicateType, name, reflect.TypeOf((*T)(nil)).Elem().String(), v)
		}

		return fn(of), nil
	})
}

// Pass returns the always-satisfied Spec. It is the escape hatch for
// parameters that are declared only for documentation.
func Pass() Spec {
	return Spec{kind: KindPass}
}

// Of builds a Spec from an arbitrary value, resolving its shape once:
//
//   - a [Spec] is returned unchanged,
//   - a [reflect.Type] becomes a type spec,
//   - a func(any) bool or func(any) (bool, error) becomes a predicate spec,
//   - any other single-argument function returning bool becomes a typed
//     predicate, invoked through reflection; incompatible arguments behave as
//     they do for [For],
//   - everything else becomes a pass-through spec.
//
// Predicates built here are named after the function when the runtime can
// recover its name.
func Of(v any) Spec {
	switch of := v.(type) {
	case Spec:
		return of
	case reflect.Type:
		return TypeFromReflect(of)
	case func(any) bool:
		return PredicateFunc(funcName(of), of)
	case func(any) (bool, error):
		return Predicate(funcName(of), of)
	}

	fv := reflect.ValueOf(v)
	if fv.Kind() == reflect.Func && isBoolPredicate(fv.Type()) {
		return reflectPredicate(fv)
	}

	return Pass()
}

// isBoolPredicate reports whether t is a non-variadic func with one argument
// and a single bool result.
func isBoolPredicate(t reflect.Type) bool {
	return !t.IsVariadic() &&
		t.NumIn() == 1 &&
		t.NumOut() == 1 &&
		t.Out(0).Kind() == reflect.Bool
}

// reflectPredicate wraps a reflected single-argument bool function as a
// predicate spec, enforcing the argument type the way For does.
func reflectPredicate(fv reflect.Value) Spec {
	name := funcName(fv.Interface())
	argType := fv.Type().In(0)

	return Predicate(name, func(v any) (bool, error) {
		vv := reflect.ValueOf(v)
		if !vv.IsValid() || !vv.Type().AssignableTo(argType) {
			return false, fmt.Errorf("%w: %s expects %s, got %T",
				ErrPredicateType, name, argType.String(), v)
		}

		return fv.Call([]reflect.Value{vv})[0].Bool(), nil
	})
}

// funcName recovers a short name for a function value, falling back to
// "predicate" for anonymous or unrecoverable functions.
func funcName(fn any) string {
	pc := reflect.ValueOf(fn).Pointer()

	rf := runtime.FuncForPC(pc)
	if rf == nil {
		return "predicate"
	}

	name := rf.Name()
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}

	if name == "" || isAnonymousFuncName(name) {
		return "predicate"
	}

	return strings.TrimSuffix(name, "-fm")
}

// isAnonymousFuncName reports whether name is a runtime-generated anonymous
// function name: "func" followed only by digits, like func1 or func12. A real
// function that merely starts with "func", like funcCheck, is not anonymous.
func isAnonymousFuncName(name string) bool {
	digits, ok := strings.CutPrefix(name, "func")
	if !ok || digits == "" {
		return false
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// String renders the Spec for humans: the target type for type specs, the
// predicate's name for predicate specs, "anything" for pass-throughs, and
// "all(...)" / "any(...)" for combinators.
func (s Spec) String() string {
	switch s.kind {
	case KindPass:
		return "anything"
	case KindType, KindPredicate:
		return s.name
	case KindAll, KindAny:
		names := make([]string, len(s.subs))
		for i, sub := range s.subs {
			names[i] = sub.String()
		}

		return fmt.Sprintf("%s(%s)", s.kind, strings.Join(names, ", "))
	default:
		return s.kind.String()
	}
}
