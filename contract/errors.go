package contract

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/amp-labs/contract/spec"
)

var (
	// ErrValidation matches every input and output validation error via
	// errors.Is, so callers can detect contract violations without naming
	// the concrete variant.
	ErrValidation = errors.New("contract violation")

	// ErrNilSignature is returned by Bind when no signature is supplied.
	ErrNilSignature = errors.New("nil signature")

	// ErrNotFunc is returned by Bind when the bound value is not a function.
	ErrNotFunc = errors.New("not a function")

	// ErrVariadic is returned by Bind for variadic functions, which cannot be
	// bound to a fixed parameter list.
	ErrVariadic = errors.New("variadic functions are not supported")

	// ErrArity is returned when the number of declared parameters or supplied
	// arguments does not match the function.
	ErrArity = errors.New("wrong number of arguments")

	// ErrReturnArity is returned by Bind when a return spec is declared but
	// the function does not have exactly one non-error result.
	ErrReturnArity = errors.New("return spec requires exactly one non-error result")

	// ErrReservedName flags use of the reserved return marker as a parameter
	// name, or as the name of an input validation error.
	ErrReservedName = errors.New("reserved return marker used as parameter name")

	// ErrDuplicateParam is returned by Bind when two parameters share a name.
	ErrDuplicateParam = errors.New("duplicate parameter name")

	// ErrEmptyParam is returned by Bind for an empty parameter name.
	ErrEmptyParam = errors.New("empty parameter name")

	// ErrUnknownParam flags a check or named argument referring to a
	// parameter the signature does not declare.
	ErrUnknownParam = errors.New("unknown parameter")

	// ErrMissingArg is returned by CallNamed when a declared parameter is
	// bound by neither a positional nor a named argument.
	ErrMissingArg = errors.New("missing argument")

	// ErrDuplicateArg is returned by CallNamed when a parameter is bound both
	// positionally and by name.
	ErrDuplicateArg = errors.New("argument supplied twice")

	// ErrArgType is returned when a dynamically supplied argument cannot be
	// passed to the function's corresponding parameter type.
	ErrArgType = errors.New("argument type mismatch")
)

// ValidationError is the base record of a contract violation: the name of the
// offending parameter (or the return marker), the offending value, and the
// spec it failed. It is immutable; the fields are exposed through read-only
// accessors.
//
// Callers normally see one of the two concrete variants,
// [*InputValidationError] or [*OutputValidationError], and can reach the base
// through errors.As.
type ValidationError struct {
	name     string
	value    any
	expected spec.Spec
}

// Name returns the name of the offending parameter, or [ReturnName] when the
// violation is on the return value.
func (e *ValidationError) Name() string {
	return e.name
}

// Value returns the offending value.
func (e *ValidationError) Value() any {
	return e.value
}

// Expected returns the spec the value failed to satisfy.
func (e *ValidationError) Expected() spec.Spec {
	return e.expected
}

// Error renders the violation for humans, naming the parameter, the value and
// the expected spec.
func (e *ValidationError) Error() string {
	if e.name == ReturnName {
		return fmt.Sprintf("return value %v does not satisfy %s", e.value, e.expected)
	}

	return fmt.Sprintf("parameter %q = %v does not satisfy %s", e.name, e.value, e.expected)
}

// Is makes errors.Is(err, ErrValidation) true for every validation error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation //nolint:err113 // Sentinel identity is the point here.
}

// Detail returns a debug-oriented JSON rendering of the violation: the
// direction, the offending name and value, the value's dynamic type, and the
// spec rendering. Values that cannot be marshaled are rendered with %v.
func (e *ValidationError) Detail() string {
	direction := "input"
	if e.name == ReturnName {
		direction = "output"
	}

	detail := map[string]any{
		"direction": direction,
		"name":      e.name,
		"value":     e.value,
		"valueType": fmt.Sprintf("%T", e.value),
		"spec":      e.expected.String(),
	}

	data, err := json.Marshal(detail)
	if err != nil {
		detail["value"] = fmt.Sprintf("%v", e.value)

		data, err = json.Marshal(detail)
		if err != nil {
			return fmt.Sprintf("%+v", detail)
		}
	}

	return string(data)
}

// InputValidationError reports that an argument failed its declared spec. The
// wrapped function's body never ran.
type InputValidationError struct {
	ValidationError
}

// NewInputValidationError builds an input violation for the named parameter.
// Using the reserved return marker as the name is a configuration mistake, not
// a describable input failure, and panics with an error wrapping
// [ErrReservedName].
func NewInputValidationError(name string, value any, expected spec.Spec) *InputValidationError {
	if name == ReturnName {
		panic(fmt.Errorf("%w: an input validation error cannot be named %q", ErrReservedName, ReturnName))
	}

	return &InputValidationError{
		ValidationError: ValidationError{
			name:     name,
			value:    value,
			expected: expected,
		},
	}
}

// Unwrap exposes the base ValidationError for errors.As.
func (e *InputValidationError) Unwrap() error {
	return &e.ValidationError
}

// OutputValidationError reports that the value a function actually returned
// failed the declared return spec. The function body already ran; its side
// effects stand.
type OutputValidationError struct {
	ValidationError
}

// NewOutputValidationError builds an output violation. The name is always the
// reserved return marker.
func NewOutputValidationError(value any, expected spec.Spec) *OutputValidationError {
	return &OutputValidationError{
		ValidationError: ValidationError{
			name:     ReturnName,
			value:    value,
			expected: expected,
		},
	}
}

// Unwrap exposes the base ValidationError for errors.As.
func (e *OutputValidationError) Unwrap() error {
	return &e.ValidationError
}
