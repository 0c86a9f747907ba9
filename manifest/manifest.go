// Package manifest loads declarative contract manifests: YAML documents that
// declare, per function, the parameter names and the checks attached to
// parameters and return values. A manifest resolves against a [Registry] of
// named checks into [contract.Signature] values ready to bind.
//
// A manifest looks like:
//
//	contracts:
//	  - function: Sum
//	    params:
//	      - name: a
//	        check: int
//	      - name: b
//	        check:
//	          all: [int, positive]
//	    returns:
//	      any: [int, float64]
//
// A check expression is either a bare registry name or a single-key mapping
// all:/any: over a list of check expressions, nesting freely.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/amp-labs/contract/contract"
	"github.com/amp-labs/contract/spec"
)

var (
	// ErrMalformedCheck is returned for a check expression that is neither a
	// bare name nor a single all:/any: mapping.
	ErrMalformedCheck = errors.New("malformed check expression")

	// ErrMissingFunction is returned for a contract entry without a function name.
	ErrMissingFunction = errors.New("contract is missing a function name")

	// ErrDuplicateContract is returned when two entries declare the same function.
	ErrDuplicateContract = errors.New("duplicate contract")

	// ErrMissingParamName is returned for a parameter entry without a name.
	ErrMissingParamName = errors.New("parameter is missing a name")

	// ErrUnknownContract is returned by Set.Bind for a function the manifest
	// does not declare.
	ErrUnknownContract = errors.New("no contract declared for function")
)

// Set holds the signatures a manifest declared, keyed by function name.
type Set map[string]*contract.Signature

// Signature returns the declared signature for the named function, or nil.
func (s Set) Signature(function string) *contract.Signature {
	return s[function]
}

// Bind binds fn to the signature the manifest declared for the named
// function.
func (s Set) Bind(function string, fn any, opts ...contract.Option) (*contract.Contract, error) {
	sig, ok := s[function]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContract, function)
	}

	return contract.Bind(fn, sig, opts...)
}

// document is the YAML shape of a manifest file.
type document struct {
	Contracts []contractDoc `yaml:"contracts"`
}

type contractDoc struct {
	Function string     `yaml:"function"`
	Params   []paramDoc `yaml:"params"`
	Returns  *checkExpr `yaml:"returns"`
}

type paramDoc struct {
	Name  string     `yaml:"name"`
	Check *checkExpr `yaml:"check"`
}

// checkExpr is a parsed check expression: a bare registry name (op empty) or
// an all/any combinator over sub-expressions.
type checkExpr struct {
	name string
	op   string
	subs []checkExpr
}

// UnmarshalYAML accepts a scalar name or a single-key all:/any: mapping.
func (c *checkExpr) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&c.name)
	case yaml.MappingNode:
		// A mapping node stores keys and values interleaved in Content.
		if len(node.Content) != 2 {
			return fmt.Errorf("%w: want a single all: or any: key, line %d", ErrMalformedCheck, node.Line)
		}

		op := node.Content[0].Value
		if op != "all" && op != "any" {
			return fmt.Errorf("%w: unknown combinator %q, line %d", ErrMalformedCheck, op, node.Line)
		}

		var subs []checkExpr
		if err := node.Content[1].Decode(&subs); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedCheck, err)
		}

		c.op = op
		c.subs = subs

		return nil
	default:
		return fmt.Errorf("%w: line %d", ErrMalformedCheck, node.Line)
	}
}

// resolve turns the expression into a spec against the registry.
func (c *checkExpr) resolve(reg *Registry) (spec.Spec, error) {
	if c.op == "" {
		return reg.Resolve(c.name)
	}

	resolved := make([]spec.Spec, len(c.subs))

	for i, sub := range c.subs {
		sp, err := sub.resolve(reg)
		if err != nil {
			return spec.Spec{}, err
		}

		resolved[i] = sp
	}

	if c.op == "all" {
		return spec.All(resolved...), nil
	}

	return spec.Any(resolved...), nil
}

// Parse resolves a manifest document against the registry. A nil registry
// means the builtins only.
func Parse(data []byte, reg *Registry) (Set, error) {
	if reg == nil {
		reg = NewRegistry()
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	set := make(Set, len(doc.Contracts))

	for _, cd := range doc.Contracts {
		if cd.Function == "" {
			return nil, ErrMissingFunction
		}

		if _, dup := set[cd.Function]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateContract, cd.Function)
		}

		sig, err := cd.signature(reg)
		if err != nil {
			return nil, err
		}

		set[cd.Function] = sig
	}

	return set, nil
}

// Load reads and parses a manifest file.
func Load(path string, reg *Registry) (Set, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("reading manifest %q: %w", path, err)
	}

	return Parse(data, reg)
}

// signature builds the contract signature a single manifest entry declares.
func (cd contractDoc) signature(reg *Registry) (*contract.Signature, error) {
	params := make([]string, len(cd.Params))

	for i, p := range cd.Params {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: contract %q", ErrMissingParamName, cd.Function)
		}

		params[i] = p.Name
	}

	sig := contract.NewSignature(params...).Named(cd.Function)

	for _, p := range cd.Params {
		if p.Check == nil {
			continue
		}

		sp, err := p.Check.resolve(reg)
		if err != nil {
			return nil, fmt.Errorf("contract %q, parameter %q: %w", cd.Function, p.Name, err)
		}

		sig.Check(p.Name, sp)
	}

	if cd.Returns != nil {
		sp, err := cd.Returns.resolve(reg)
		if err != nil {
			return nil, fmt.Errorf("contract %q return value: %w", cd.Function, err)
		}

		sig.Returns(sp)
	}

	return sig, nil
}
