package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	tp, shutdown, err := Setup(context.Background(), "", "")
	require.NoError(t, err)
	require.NotNil(t, tp)

	_, span := tp.Tracer("test").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_EnabledRecordsSpans(t *testing.T) {
	// The exporter connects lazily, so no collector is needed to build it.
	tp, shutdown, err := Setup(context.Background(), "127.0.0.1:4318", "tracker-test")
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "check")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
