package manifest

import (
	"errors"
	"fmt"
	"slices"

	"github.com/amp-labs/contract/spec"
)

// ErrUnknownCheck is returned when a manifest refers to a check name the
// registry does not know.
var ErrUnknownCheck = errors.New("unknown check")

// Registry maps check names usable in manifests to their specs. A fresh
// registry knows the builtin type checks; applications register their own
// predicates on top.
//
// A Registry is not safe for concurrent mutation; register everything before
// handing it to Parse or Load.
type Registry struct {
	checks map[string]spec.Spec
}

// NewRegistry returns a registry seeded with the builtin checks:
// "int", "int64", "float64", "string", "bool", and "any" (always satisfied).
func NewRegistry() *Registry {
	r := &Registry{
		checks: make(map[string]spec.Spec),
	}

	r.Register("any", spec.Pass())
	r.Register("int", spec.Type[int]())
	r.Register("int64", spec.Type[int64]())
	r.Register("float64", spec.Type[float64]())
	r.Register("string", spec.Type[string]())
	r.Register("bool", spec.Type[bool]())

	return r
}

// Register makes a spec available to manifests under the given name,
// replacing any previous spec with that name.
func (r *Registry) Register(name string, sp spec.Spec) *Registry {
	r.checks[name] = sp

	return r
}

// Resolve returns the spec registered under name. An unknown name is an
// error listing the available checks.
func (r *Registry) Resolve(name string) (spec.Spec, error) {
	sp, ok := r.checks[name]
	if !ok {
		return spec.Spec{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownCheck, name, r.Names())
	}

	return sp, nil
}

// Names returns the registered check names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
