package telemetry_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/scrwatch/internal/adapters/telemetry"
	"go.trai.ch/scrwatch/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_OnEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	bridge := telemetry.NewBridge(mockLogger)

	mockLogger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		assert.True(t, strings.HasPrefix(msg, "cache.sync "), msg)
		assert.Contains(t, msg, " attempts=2")
	}).Times(1)

	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), "cache.sync")
	span.SetAttributes(attribute.Int("attempts", 2))
	span.End()

	if roSpan, ok := span.(sdktrace.ReadOnlySpan); ok {
		bridge.OnEnd(roSpan)
	}
}

func TestBridge_OnEndWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	bridge := telemetry.NewBridge(mockLogger)

	mockLogger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.True(t, strings.HasSuffix(msg, ": cache snapshot did not stabilize"), msg)
	}).Times(1)

	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), "cache.sync")
	span.SetStatus(codes.Error, "cache snapshot did not stabilize")
	span.End()

	if roSpan, ok := span.(sdktrace.ReadOnlySpan); ok {
		bridge.OnEnd(roSpan)
	}
}

func TestBridge_OnEndWithNilLogger(_ *testing.T) {
	bridge := telemetry.NewBridge(nil)

	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), "test-span")
	span.End()

	if roSpan, ok := span.(sdktrace.ReadOnlySpan); ok {
		bridge.OnEnd(roSpan)
	}
}

func TestBridge_ForceFlushAndShutdown(t *testing.T) {
	bridge := telemetry.NewBridge(nil)

	assert.NoError(t, bridge.ForceFlush(context.Background()))
	assert.NoError(t, bridge.Shutdown(context.Background()))
}

func TestInstall(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Times(1)

	shutdown := telemetry.Install(telemetry.NewBridge(mockLogger))

	tracer := telemetry.NewOTelTracer("test-tracer")
	_, span := tracer.Start(context.Background(), "cache.sync")
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}
