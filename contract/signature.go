package contract

import (
	"fmt"

	"github.com/amp-labs/contract/spec"
)

// ReturnName is the reserved marker under which a return spec and an output
// violation are keyed. It can never name a real parameter; Bind rejects
// signatures that try.
const ReturnName = "return"

// Signature declares a function's contract: its ordered parameter names, the
// specs attached to some of those parameters, and an optional spec for the
// return value. A Signature is assembled with the fluent builder methods and
// then frozen by [Bind]; the builder methods must not be called on a signature
// after it has been bound.
type Signature struct {
	name    string
	params  []string
	checks  map[string]spec.Spec
	returns *spec.Spec
}

// NewSignature starts a signature for a function with the given parameter
// names, in declaration order. Parameters without a later Check are
// unconstrained.
func NewSignature(params ...string) *Signature {
	return &Signature{
		params: params,
		checks: make(map[string]spec.Spec),
	}
}

// Named sets a diagnostic name for the contract, used in logs. Without one the
// bound contract gets a generated identifier.
func (s *Signature) Named(name string) *Signature {
	s.name = name

	return s
}

// Check attaches a spec to the named parameter, replacing any previous spec
// for that parameter. Referring to an undeclared parameter, or to the reserved
// return marker, is a configuration error reported by Bind.
func (s *Signature) Check(param string, sp spec.Spec) *Signature {
	s.checks[param] = sp

	return s
}

// Returns attaches a spec to the function's return value.
func (s *Signature) Returns(sp spec.Spec) *Signature {
	s.returns = &sp

	return s
}

// HasChecks reports whether the signature declares any spec at all. A
// signature without checks produces no interception when bound.
func (s *Signature) HasChecks() bool {
	return len(s.checks) > 0 || s.returns != nil
}

// Params returns a copy of the declared parameter names, in order.
func (s *Signature) Params() []string {
	out := make([]string, len(s.params))
	copy(out, s.params)

	return out
}

// validate collects every configuration problem with the declared names, so
// Bind can report them all at once.
func (s *Signature) validate() []error {
	var errs []error

	seen := make(map[string]struct{}, len(s.params))

	for _, param := range s.params {
		if param == "" {
			errs = append(errs, fmt.Errorf("%w: parameter list %v", ErrEmptyParam, s.params))

			continue
		}

		if param == ReturnName {
			errs = append(errs, fmt.Errorf("%w: %q", ErrReservedName, param))
		}

		if _, dup := seen[param]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateParam, param))
		}

		seen[param] = struct{}{}
	}

	for param := range s.checks {
		if param == ReturnName {
			errs = append(errs, fmt.Errorf("%w: use Returns to check the return value", ErrReservedName))

			continue
		}

		if _, ok := seen[param]; !ok {
			errs = append(errs, fmt.Errorf("%w: check declared for %q, parameters are %v",
				ErrUnknownParam, param, s.params))
		}
	}

	return errs
}

// indexOf returns the position of the named parameter, or -1.
func (s *Signature) indexOf(param string) int {
	for i, name := range s.params {
		if name == param {
			return i
		}
	}

	return -1
}
