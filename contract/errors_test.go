package contract

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/contract/spec"
)

func TestValidationError_Accessors(t *testing.T) {
	t.Parallel()

	expected := spec.Type[int]()
	err := NewInputValidationError("a", 2.5, expected)

	assert.Equal(t, "a", err.Name())
	assert.Equal(t, 2.5, err.Value())
	assert.Equal(t, expected, err.Expected())
}

func TestValidationError_Renderings(t *testing.T) {
	t.Parallel()

	inputErr := NewInputValidationError("a", 2.5, spec.Type[int]())
	assert.Equal(t, `parameter "a" = 2.5 does not satisfy int`, inputErr.Error())

	outputErr := NewOutputValidationError(4, spec.All(spec.Type[int](), spec.PredicateFunc("isEven", func(any) bool { return false })))
	assert.Equal(t, "return value 4 does not satisfy all(int, isEven)", outputErr.Error())
}

func TestValidationError_Detail(t *testing.T) {
	t.Parallel()

	detail := NewInputValidationError("a", 2.5, spec.Type[int]()).Detail()

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(detail), &decoded))

	assert.Equal(t, "input", decoded["direction"])
	assert.Equal(t, "a", decoded["name"])
	assert.InEpsilon(t, 2.5, decoded["value"], 0.0001)
	assert.Equal(t, "float64", decoded["valueType"])
	assert.Equal(t, "int", decoded["spec"])

	detail = NewOutputValidationError(4, spec.Type[int]()).Detail()
	require.NoError(t, json.Unmarshal([]byte(detail), &decoded))
	assert.Equal(t, "output", decoded["direction"])
	assert.Equal(t, ReturnName, decoded["name"])
}

func TestValidationError_DetailUnmarshalableValue(t *testing.T) {
	t.Parallel()

	// A channel cannot be marshaled; the rendering falls back to %v.
	detail := NewInputValidationError("ch", make(chan int), spec.Pass()).Detail()
	assert.Contains(t, detail, `"name":"ch"`)
}

func TestErrorTaxonomy_UnwrapsToBase(t *testing.T) {
	t.Parallel()

	var err error = NewInputValidationError("a", 1, spec.Pass())

	var base *ValidationError
	require.ErrorAs(t, err, &base)
	assert.Equal(t, "a", base.Name())

	var inputErr *InputValidationError
	require.ErrorAs(t, err, &inputErr)

	var outputErr *OutputValidationError
	assert.False(t, errors.As(err, &outputErr),
		"an input violation must not match the output variant")
}

func TestErrorTaxonomy_MatchesSentinel(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, NewInputValidationError("a", 1, spec.Pass()), ErrValidation)
	require.ErrorIs(t, NewOutputValidationError(1, spec.Pass()), ErrValidation)
}

func TestNewInputValidationError_PanicsOnReservedName(t *testing.T) {
	t.Parallel()

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered, "misusing the return marker is a configuration mistake")

		err, ok := recovered.(error)
		require.True(t, ok)
		require.ErrorIs(t, err, ErrReservedName)
	}()

	NewInputValidationError(ReturnName, 1, spec.Pass())
}

func TestNewOutputValidationError_CarriesReturnMarker(t *testing.T) {
	t.Parallel()

	err := NewOutputValidationError(9, spec.Type[int]())
	assert.Equal(t, ReturnName, err.Name())
	assert.Equal(t, 9, err.Value())
}
