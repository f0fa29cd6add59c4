package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestHeaders(t *testing.T) {
	h := Config{APIKey: "key"}.Headers()
	assert.Equal(t, "key", h["x-honeycomb-team"])
	assert.Equal(t, "dungeongen", h["x-honeycomb-dataset"])

	h = Config{APIKey: "key", Dataset: "maps"}.Headers()
	assert.Equal(t, "maps", h["x-honeycomb-dataset"])
}

func TestTracers(t *testing.T) {
	_, span := Tracer("world").Start(context.Background(), "test")
	span.End()

	_, span = NoopTracer().Start(context.Background(), "test")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}
