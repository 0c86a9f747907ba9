package contract

// Wrap binds fn to its signature and returns the intercepting wrapper in one
// step. The wrapper has fn's own dynamic type; see [Contract.Func] for how
// violations are delivered and for the no-check identity guarantee.
func Wrap(fn any, sig *Signature, opts ...Option) (any, error) {
	c, err := Bind(fn, sig, opts...)
	if err != nil {
		return nil, err
	}

	return c.Func(), nil
}

// MustBind is Bind, panicking on configuration errors. Intended for
// package-level contract variables whose signatures are static.
func MustBind(fn any, sig *Signature, opts ...Option) *Contract {
	c, err := Bind(fn, sig, opts...)
	if err != nil {
		panic(err)
	}

	return c
}

// MustWrap is Wrap, panicking on configuration errors.
func MustWrap(fn any, sig *Signature, opts ...Option) any {
	wrapped, err := Wrap(fn, sig, opts...)
	if err != nil {
		panic(err)
	}

	return wrapped
}

// Wrap1 binds a one-argument function and returns a statically typed wrapper
// that reports violations through an added error result. On failure the R
// result is the zero value.
func Wrap1[A1, R any](fn func(A1) R, sig *Signature, opts ...Option) (func(A1) (R, error), error) {
	c, err := Bind(fn, sig, opts...)
	if err != nil {
		return nil, err
	}

	return func(a1 A1) (R, error) {
		return callTyped[R](c, a1)
	}, nil
}

// Wrap2 binds a two-argument function; see Wrap1.
func Wrap2[A1, A2, R any](
	fn func(A1, A2) R, sig *Signature, opts ...Option,
) (func(A1, A2) (R, error), error) {
	c, err := Bind(fn, sig, opts...)
	if err != nil {
		return nil, err
	}

	return func(a1 A1, a2 A2) (R, error) {
		return callTyped[R](c, a1, a2)
	}, nil
}

// Wrap3 binds a three-argument function; see Wrap1.
func Wrap3[A1, A2, A3, R any](
	fn func(A1, A2, A3) R, sig *Signature, opts ...Option,
) (func(A1, A2, A3) (R, error), error) {
	c, err := Bind(fn, sig, opts...)
	if err != nil {
		return nil, err
	}

	return func(a1 A1, a2 A2, a3 A3) (R, error) {
		return callTyped[R](c, a1, a2, a3)
	}, nil
}

// callTyped runs the dynamic pipeline and recovers the single result as R.
func callTyped[R any](c *Contract, args ...any) (R, error) {
	var zero R

	results, err := c.Call(args...)
	if err != nil {
		return zero, err
	}

	// A function whose only result is its trailing error leaves no results
	// to recover; R was instantiated as error and the zero value is it.
	if len(results) == 0 {
		return zero, nil
	}

	if typed, ok := results[0].(R); ok {
		return typed, nil
	}

	// A nil interface result does not assert back; the zero value is it.
	return zero, nil
}
