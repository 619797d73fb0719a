package ports

import (
	"context"

	"go.trai.ch/scrwatch/internal/core/domain"
)

//go:generate mockgen -source=sink.go -destination=mocks/mock_sink.go -package=mocks

// EventSink consumes derived domain events. Implementations must return
// promptly and must not call back into the pipeline.
type EventSink interface {
	Emit(ctx context.Context, ev domain.Event) error
}

// RequestSink consumes classified requests for diagnostics.
type RequestSink interface {
	Observe(ctx context.Context, req domain.Request) error
}
