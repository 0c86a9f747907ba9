package contract

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/contract/spec"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func TestBind_LogsBinding(t *testing.T) {
	t.Parallel()

	var logBuffer bytes.Buffer

	c := MustBind(sum, NewSignature("a", "b").Named("sum").Check("a", spec.Type[int]()),
		WithLogger(debugLogger(&logBuffer)))
	require.NotNil(t, c)

	logOutput := logBuffer.String()
	assert.Contains(t, logOutput, "contract bound")
	assert.Contains(t, logOutput, `"contract":"sum"`)
	assert.Contains(t, logOutput, "func(int, int) float64")
}

func TestCall_LogsViolations(t *testing.T) {
	t.Parallel()

	var logBuffer bytes.Buffer

	c := MustBind(identity, NewSignature("x").
		Named("identity").
		Check("x", spec.Type[int]()).
		Returns(spec.For("isEven", isEven)),
		WithLogger(debugLogger(&logBuffer)))

	_, err := c.Call("oops")
	require.Error(t, err)
	assert.Contains(t, logBuffer.String(), "input violates contract")
	assert.Contains(t, logBuffer.String(), `"parameter":"x"`)

	logBuffer.Reset()

	_, err = c.Call(3)
	require.Error(t, err)
	assert.Contains(t, logBuffer.String(), "return value violates contract")
	assert.Contains(t, logBuffer.String(), `"spec":"isEven"`)
}

func TestCall_LogsPredicateErrors(t *testing.T) {
	t.Parallel()

	var logBuffer bytes.Buffer

	c := MustBind(identity, NewSignature("x").Check("x", spec.For("isEven", isEven)),
		WithLogger(debugLogger(&logBuffer)))

	_, err := c.Call("not an int")
	require.Error(t, err)
	assert.Contains(t, logBuffer.String(), "predicate failed while checking input")
}

func TestWithLogger_NilKeepsDefault(t *testing.T) {
	t.Parallel()

	c := MustBind(sum, NewSignature("a", "b"), WithLogger(nil))
	assert.NotNil(t, c)
}
