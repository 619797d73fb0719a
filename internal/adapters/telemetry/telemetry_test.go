package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/scrwatch/internal/adapters/telemetry"
	"go.trai.ch/scrwatch/internal/core/ports"
)

func setupMonitor(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	prev := otel.GetTracerProvider()
	sr := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return sr
}

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ trace.SpanProcessor = (*telemetry.Bridge)(nil)
}

func TestOTelTracer_StartWithAttributes(t *testing.T) {
	sr := setupMonitor(t)

	tracer := telemetry.NewOTelTracer("test-tracer")
	_, span := tracer.Start(context.Background(), "cache.sync",
		ports.WithAttribute("dir", "/cache"),
		ports.WithAttribute("files", 5),
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "cache.sync", spans[0].Name())
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("dir", "/cache"),
		attribute.Int("files", 5),
	}, spans[0].Attributes())
}

func TestOTelSpan_SetAttribute(t *testing.T) {
	sr := setupMonitor(t)

	tracer := telemetry.NewOTelTracer("test-tracer")
	_, span := tracer.Start(context.Background(), "span")
	span.SetAttribute("s", "v")
	span.SetAttribute("i", 3)
	span.SetAttribute("i64", int64(4))
	span.SetAttribute("port", uint16(57421))
	span.SetAttribute("f", 1.5)
	span.SetAttribute("b", true)
	span.SetAttribute("list", []string{"index", "data_0"})
	span.SetAttribute("wait", 250*time.Millisecond)
	span.SetAttribute("other", struct{ N int }{N: 7})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("s", "v"),
		attribute.Int("i", 3),
		attribute.Int64("i64", 4),
		attribute.Int("port", 57421),
		attribute.Float64("f", 1.5),
		attribute.Bool("b", true),
		attribute.StringSlice("list", []string{"index", "data_0"}),
		attribute.String("wait", "250ms"),
		attribute.String("other", "{7}"),
	}, spans[0].Attributes())
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr := setupMonitor(t)

	tracer := telemetry.NewOTelTracer("test-tracer")
	_, span := tracer.Start(context.Background(), "span")
	span.RecordError(nil)
	span.RecordError(errors.New("unstable"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "unstable", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestOTelTracer_WithoutProvider(t *testing.T) {
	tracer := telemetry.NewOTelTracer("test-tracer")
	assert.NotNil(t, tracer)

	ctx, span := tracer.Start(context.Background(), "test-span")
	assert.NotNil(t, ctx)
	assert.NotNil(t, span)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}
