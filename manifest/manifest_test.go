package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/contract/contract"
	"github.com/amp-labs/contract/spec"
)

func TestParse_SimpleContract(t *testing.T) {
	t.Parallel()

	manifest := []byte(`
contracts:
  - function: Sum
    params:
      - name: a
        check: int
      - name: b
        check: int
    returns: float64
`)

	set, err := Parse(manifest, nil)
	require.NoError(t, err)
	require.Len(t, set, 1)

	sig := set.Signature("Sum")
	require.NotNil(t, sig)
	assert.Equal(t, []string{"a", "b"}, sig.Params())
	assert.True(t, sig.HasChecks())
}

func TestParse_DrivesAWrappedFunction(t *testing.T) {
	t.Parallel()

	set, err := Load("testdata/contracts.yaml", NewRegistry().
		Register("nonEmpty", spec.For("nonEmpty", func(s string) bool { return s != "" })))
	require.NoError(t, err)

	sum := func(a, b int) float64 { return float64(a + b) }

	c, err := set.Bind("Sum", sum)
	require.NoError(t, err)

	results, err := c.Call(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []any{4.0}, results)

	_, err = c.Call(2.5, 2.5)

	var inputErr *contract.InputValidationError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "a", inputErr.Name())
}

func TestParse_NestedCombinators(t *testing.T) {
	t.Parallel()

	set, err := Load("testdata/contracts.yaml", NewRegistry().
		Register("nonEmpty", spec.For("nonEmpty", func(s string) bool { return s != "" })))
	require.NoError(t, err)

	classify := func(v any) string { return "classified" }

	c, err := set.Bind("Classify", classify)
	require.NoError(t, err)

	// any(int, all(string, nonEmpty))
	for _, value := range []any{7, "label"} {
		_, err := c.Call(value)
		require.NoError(t, err)
	}

	for _, value := range []any{"", 2.5} {
		_, err := c.Call(value)
		require.ErrorIs(t, err, contract.ErrValidation)
	}
}

func TestParse_ParamWithoutCheckIsUnconstrained(t *testing.T) {
	t.Parallel()

	set, err := Load("testdata/contracts.yaml", NewRegistry().
		Register("nonEmpty", spec.For("nonEmpty", func(s string) bool { return s != "" })))
	require.NoError(t, err)

	sig := set.Signature("Describe")
	require.NotNil(t, sig)
	assert.False(t, sig.HasChecks())
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		manifest string
		want     error
	}{
		{
			name: "missing function name",
			manifest: `
contracts:
  - params:
      - name: a
`,
			want: ErrMissingFunction,
		},
		{
			name: "duplicate function",
			manifest: `
contracts:
  - function: F
    params: []
  - function: F
    params: []
`,
			want: ErrDuplicateContract,
		},
		{
			name: "missing parameter name",
			manifest: `
contracts:
  - function: F
    params:
      - check: int
`,
			want: ErrMissingParamName,
		},
		{
			name: "unknown check",
			manifest: `
contracts:
  - function: F
    params:
      - name: a
        check: definitelyNotRegistered
`,
			want: ErrUnknownCheck,
		},
		{
			name: "unknown combinator",
			manifest: `
contracts:
  - function: F
    params:
      - name: a
        check:
          nand: [int, string]
`,
			want: ErrMalformedCheck,
		},
		{
			name: "two combinator keys",
			manifest: `
contracts:
  - function: F
    params:
      - name: a
        check:
          all: [int]
          any: [string]
`,
			want: ErrMalformedCheck,
		},
		{
			name: "unknown check nested in combinator",
			manifest: `
contracts:
  - function: F
    returns:
      any:
        - int
        - all: [ghost]
`,
			want: ErrUnknownCheck,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.manifest), nil)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_EmptyCombinators(t *testing.T) {
	t.Parallel()

	manifest := []byte(`
contracts:
  - function: Anything
    params:
      - name: x
        check:
          all: []
    returns:
      any: []
`)

	set, err := Parse(manifest, nil)
	require.NoError(t, err)

	c, err := set.Bind("Anything", func(x any) any { return x })
	require.NoError(t, err)

	// Empty all accepts the input; empty any rejects every output.
	_, err = c.Call("whatever")

	var outputErr *contract.OutputValidationError
	require.ErrorAs(t, err, &outputErr)
}

func TestSet_BindUnknownFunction(t *testing.T) {
	t.Parallel()

	set, err := Parse([]byte("contracts: []"), nil)
	require.NoError(t, err)

	_, err = set.Bind("Ghost", func() {})
	require.ErrorIs(t, err, ErrUnknownContract)
}

func TestParse_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("contracts: ["), nil)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load("testdata/does-not-exist.yaml", nil)
	require.Error(t, err)
}
