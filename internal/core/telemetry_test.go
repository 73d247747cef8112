// AngelaMos | 2026
// telemetry_test.go

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/carterperez-dev/gym-membership/internal/config"
)

func TestSamplerFallsBackOnBadRate(t *testing.T) {
	assert.Contains(t, Sampler(0).Description(), "0.1")
	assert.Contains(t, Sampler(1.5).Description(), "0.1")
	assert.Contains(t, Sampler(0.5).Description(), "0.5")
}

func TestNewTelemetryDisabled(t *testing.T) {
	tel, err := NewTelemetry(context.Background(),
		config.OtelConfig{Enabled: false},
		config.AppConfig{Name: "gym"},
	)
	require.NoError(t, err)

	_, span := tel.Tracer.Start(context.Background(), "dropped")
	assert.False(t, span.SpanContext().IsSampled())
	span.End()

	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestEndSpanRecordsError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	tracer := tp.Tracer(instrumentationName)

	_, ok := tracer.Start(context.Background(), "ok")
	EndSpan(ok, nil)

	ctx, failed := tracer.Start(context.Background(), "failed")
	EndSpan(failed, errors.New("ledger write failed"))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "ledger write failed", spans[1].Status().Description)
	assert.Len(t, spans[1].Events(), 1)
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	assert.Empty(t, TraceIDFromContext(context.Background()))
}
