package contract

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// errorType is the reflected error interface, used to recognize a function's
// trailing error result.
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Enabled reports whether spec checking is compiled into this build. It is
// false when the module is built with -tags contracts_disabled.
func Enabled() bool {
	return enforced
}

// Contract is a function bound to its Signature. It is created by [Bind],
// immutable afterwards, and safe for concurrent calls.
type Contract struct {
	id     string
	sig    *Signature
	fn     reflect.Value
	fnType reflect.Type
	logger *slog.Logger
	stats  counters

	// errIdx is the index of the function's own trailing error result, or -1.
	// retIdx is the index of the result the return spec applies to, or -1
	// when no return spec is declared.
	errIdx int
	retIdx int
}

// Bind binds fn to its declared signature, validating the configuration once.
// Binding happens exactly once per contract; every later call reuses the
// captured signature.
//
// Configuration problems — a non-function, a variadic function, a parameter
// count that does not match, reserved or duplicate or empty parameter names, a
// check on an undeclared parameter, or a return spec on a function without
// exactly one non-error result — are all collected and returned together as a
// joined error.
func Bind(fn any, sig *Signature, opts ...Option) (*Contract, error) {
	if sig == nil {
		return nil, ErrNilSignature
	}

	opt := defaultOptions()
	for _, o := range opts {
		o(&opt)
	}

	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T", ErrNotFunc, fn)
	}

	ft := fv.Type()

	var errs []error

	if ft.IsVariadic() {
		errs = append(errs, fmt.Errorf("%w: %s", ErrVariadic, ft))
	}

	if ft.NumIn() != len(sig.params) {
		errs = append(errs, fmt.Errorf("%w: %s takes %d, signature declares %d",
			ErrArity, ft, ft.NumIn(), len(sig.params)))
	}

	errs = append(errs, sig.validate()...)

	errIdx := -1
	if ft.NumOut() > 0 && ft.Out(ft.NumOut()-1) == errorType {
		errIdx = ft.NumOut() - 1
	}

	retIdx := -1

	if sig.returns != nil {
		nonErr := ft.NumOut()
		if errIdx >= 0 {
			nonErr--
		}

		if nonErr == 1 {
			retIdx = 0
		} else {
			errs = append(errs, fmt.Errorf("%w: %s has %d", ErrReturnArity, ft, nonErr))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	id := sig.name
	if id == "" {
		id = "contract-" + uuid.New().String()
	}

	c := &Contract{
		id:     id,
		sig:    sig,
		fn:     fv,
		fnType: ft,
		logger: opt.logger,
		errIdx: errIdx,
		retIdx: retIdx,
	}

	c.logger.Debug("contract bound",
		"contract", c.id,
		"func", ft.String(),
		"params", sig.params,
		"checks", len(sig.checks),
		"hasReturnSpec", sig.returns != nil)

	return c, nil
}

// ID returns the contract's diagnostic identifier: the signature's name, or a
// generated "contract-" identifier when the signature is anonymous.
func (c *Contract) ID() string {
	return c.id
}

// Signature returns the signature the contract was bound with.
func (c *Contract) Signature() *Signature {
	return c.sig
}

// Func returns the call-intercepting wrapper with the bound function's own
// dynamic type; assert it back to that type to call it naturally.
//
// When the signature declares no checks, or checking is compiled out, Func
// returns the original function value itself — reference identity is
// preserved and no interception happens.
//
// A violation is delivered through the function's own trailing error result
// when it has one. For functions without an error result the wrapper panics
// with the violation; use [Contract.Call] or the typed Wrap helpers to receive
// it as a value instead.
func (c *Contract) Func() any {
	if !enforced || !c.sig.HasChecks() {
		return c.fn.Interface()
	}

	return reflect.MakeFunc(c.fnType, c.intercept).Interface()
}

// Call invokes the bound function with positionally supplied arguments and
// returns its non-error results. The error result is, in order of precedence:
// a binding problem ([ErrArity], [ErrArgType]), an input violation, a
// predicate's own error, the function's own returned error, or an output
// violation.
//
// Input checks run on the supplied values before they are matched against the
// function's parameter types, so a value of the wrong Go type fails its
// declared spec rather than erroring on the call mechanics.
func (c *Contract) Call(args ...any) ([]any, error) {
	if len(args) != len(c.sig.params) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrArity, len(args), len(c.sig.params))
	}

	outs, err := c.invoke(args)
	if err != nil {
		return nil, err
	}

	return c.splitResults(outs)
}

// CallNamed invokes the bound function with a mix of positional and named
// arguments: positional arguments fill the leading parameters, named
// arguments are matched to declared parameter names. Every parameter must be
// bound exactly once; an unknown name, a doubly bound parameter, or an unbound
// parameter is a call error.
//
// Named arguments are validated exactly like positional ones.
func (c *Contract) CallNamed(args []any, named map[string]any) ([]any, error) {
	total := len(c.sig.params)
	if len(args) > total {
		return nil, fmt.Errorf("%w: %d positional arguments for %d parameters",
			ErrArity, len(args), total)
	}

	bound := make([]any, total)
	have := make([]bool, total)

	for i, arg := range args {
		bound[i] = arg
		have[i] = true
	}

	for name, value := range named {
		idx := c.sig.indexOf(name)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q, parameters are %v", ErrUnknownParam, name, c.sig.params)
		}

		if have[idx] {
			return nil, fmt.Errorf("%w: %q bound positionally and by name", ErrDuplicateArg, name)
		}

		bound[idx] = value
		have[idx] = true
	}

	for i, ok := range have {
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingArg, c.sig.params[i])
		}
	}

	outs, err := c.invoke(bound)
	if err != nil {
		return nil, err
	}

	return c.splitResults(outs)
}

// Stats returns a snapshot of the contract's counters.
func (c *Contract) Stats() Stats {
	return c.stats.snapshot()
}

// invoke runs the full pipeline over dynamically supplied arguments: input
// checks, argument reflection, the call itself, then the output check.
func (c *Contract) invoke(args []any) ([]reflect.Value, error) {
	c.stats.calls.Inc()

	if err := c.checkInputs(args); err != nil {
		return nil, err
	}

	vals, err := c.reflectArgs(args)
	if err != nil {
		return nil, err
	}

	outs := c.fn.Call(vals)

	if err := c.checkOutput(outs); err != nil {
		return nil, err
	}

	return outs, nil
}

// intercept is the reflect.MakeFunc body backing Func.
func (c *Contract) intercept(args []reflect.Value) []reflect.Value {
	c.stats.calls.Inc()

	raw := make([]any, len(args))
	for i, arg := range args {
		raw[i] = arg.Interface()
	}

	if err := c.checkInputs(raw); err != nil {
		return c.failureResults(err)
	}

	outs := c.fn.Call(args)

	if err := c.checkOutput(outs); err != nil {
		return c.failureResults(err)
	}

	return outs
}

// failureResults delivers a violation from inside the reflective wrapper:
// through the function's own trailing error result when it has one, by panic
// otherwise.
func (c *Contract) failureResults(err error) []reflect.Value {
	if c.errIdx < 0 {
		panic(err)
	}

	outs := make([]reflect.Value, c.fnType.NumOut())
	for i := range outs {
		outs[i] = reflect.Zero(c.fnType.Out(i))
	}

	errOut := reflect.New(errorType).Elem()
	errOut.Set(reflect.ValueOf(err))
	outs[c.errIdx] = errOut

	return outs
}

// checkInputs evaluates every declared input spec against its bound value, in
// declared parameter order. The first violation or predicate error wins; the
// function body must not run after either.
func (c *Contract) checkInputs(args []any) error {
	if !enforced {
		return nil
	}

	for i, param := range c.sig.params {
		sp, ok := c.sig.checks[param]
		if !ok {
			continue
		}

		start := time.Now()

		satisfied, err := sp.Evaluate(args[i])
		if err != nil {
			c.stats.predicateErrors.Inc()
			observeCheck(directionInput, outcomeError, start)
			c.logger.Debug("predicate failed while checking input",
				"contract", c.id, "parameter", param, "spec", sp.String(), "error", err)

			return fmt.Errorf("checking parameter %q against %s: %w", param, sp, err)
		}

		if !satisfied {
			c.stats.inputViolations.Inc()
			observeCheck(directionInput, outcomeViolation, start)
			c.logger.Debug("input violates contract",
				"contract", c.id, "parameter", param, "spec", sp.String(), "value", args[i])

			return NewInputValidationError(param, args[i], sp)
		}

		observeCheck(directionInput, outcomePass, start)
	}

	return nil
}

// checkOutput evaluates the declared return spec against the value the
// function actually returned. When the function's own error result is non-nil
// the check is skipped; the caller gets the function's error, not ours.
func (c *Contract) checkOutput(outs []reflect.Value) error {
	if !enforced || c.sig.returns == nil {
		return nil
	}

	if c.errIdx >= 0 && !outs[c.errIdx].IsNil() {
		return nil
	}

	sp := *c.sig.returns
	value := outs[c.retIdx].Interface()
	start := time.Now()

	satisfied, err := sp.Evaluate(value)
	if err != nil {
		c.stats.predicateErrors.Inc()
		observeCheck(directionOutput, outcomeError, start)
		c.logger.Debug("predicate failed while checking return value",
			"contract", c.id, "spec", sp.String(), "error", err)

		return fmt.Errorf("checking return value against %s: %w", sp, err)
	}

	if !satisfied {
		c.stats.outputViolations.Inc()
		observeCheck(directionOutput, outcomeViolation, start)
		c.logger.Debug("return value violates contract",
			"contract", c.id, "spec", sp.String(), "value", value)

		return NewOutputValidationError(value, sp)
	}

	observeCheck(directionOutput, outcomePass, start)

	return nil
}

// reflectArgs converts dynamically supplied arguments into call values of the
// function's parameter types. A nil argument becomes the zero value for
// parameter types that can hold nil.
func (c *Contract) reflectArgs(args []any) ([]reflect.Value, error) {
	vals := make([]reflect.Value, len(args))

	for i, arg := range args {
		inType := c.fnType.In(i)

		if arg == nil {
			switch inType.Kind() {
			case reflect.Chan, reflect.Func, reflect.Interface,
				reflect.Map, reflect.Pointer, reflect.Slice:
				vals[i] = reflect.Zero(inType)

				continue
			default:
				return nil, fmt.Errorf("%w: parameter %q of type %s cannot be nil",
					ErrArgType, c.sig.params[i], inType)
			}
		}

		av := reflect.ValueOf(arg)
		if !av.Type().AssignableTo(inType) {
			return nil, fmt.Errorf("%w: parameter %q wants %s, got %T",
				ErrArgType, c.sig.params[i], inType, arg)
		}

		vals[i] = av
	}

	return vals, nil
}

// splitResults separates the function's own trailing error, when present,
// from its remaining results.
func (c *Contract) splitResults(outs []reflect.Value) ([]any, error) {
	results := make([]any, 0, len(outs))

	var callErr error

	for i, out := range outs {
		if i == c.errIdx {
			if !out.IsNil() {
				callErr = out.Interface().(error) //nolint:forcetypeassert // Out type is error.
			}

			continue
		}

		results = append(results, out.Interface())
	}

	return results, callErr
}
