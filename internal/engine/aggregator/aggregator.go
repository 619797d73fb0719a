// Package aggregator serializes events from independent producers into one sink.
package aggregator

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/scrwatch/internal/core/domain"
	"go.trai.ch/scrwatch/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultBuffer is the queue depth between producers and the delivery goroutine.
const DefaultBuffer = 64

type message struct {
	event   domain.Event
	request domain.Request
}

// Aggregator fans in messages from any number of producers. Delivery happens
// on the single goroutine running Run, in the order messages were queued, so
// each producer's messages arrive in the order it sent them.
type Aggregator struct {
	events   ports.EventSink
	requests ports.RequestSink
	logger   ports.Logger

	queue     chan message
	closeOnce sync.Once
}

// New creates an Aggregator. requests may be nil when no diagnostic consumer is attached.
func New(events ports.EventSink, requests ports.RequestSink, logger ports.Logger, buffer int) *Aggregator {
	return &Aggregator{
		events:   events,
		requests: requests,
		logger:   logger,
		queue:    make(chan message, buffer),
	}
}

// Event queues ev for delivery. It gives up when ctx is done.
func (a *Aggregator) Event(ctx context.Context, ev domain.Event) {
	a.enqueue(ctx, message{event: ev})
}

// Request queues req for the diagnostic sink, if any.
func (a *Aggregator) Request(ctx context.Context, req domain.Request) {
	if a.requests == nil {
		return
	}
	a.enqueue(ctx, message{request: req})
}

func (a *Aggregator) enqueue(ctx context.Context, m message) {
	select {
	case a.queue <- m:
	case <-ctx.Done():
	}
}

// Close signals that no producer will queue more messages. Run returns once
// everything already queued has been delivered. Close must only be called
// after all producers have stopped.
func (a *Aggregator) Close() {
	a.closeOnce.Do(func() { close(a.queue) })
}

// Run delivers queued messages until Close is called and the queue is drained.
// Sink failures are logged and never stop delivery.
func (a *Aggregator) Run(ctx context.Context) error {
	// Draining after cancellation must still reach the sink.
	ctx = context.WithoutCancel(ctx)
	for m := range a.queue {
		a.deliver(ctx, m)
	}
	return nil
}

func (a *Aggregator) deliver(ctx context.Context, m message) {
	name := ""
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error(zerr.With(zerr.With(domain.ErrSinkPanicked, "panic", fmt.Sprint(r)), "message", name))
		}
	}()

	var err error
	switch {
	case m.event != nil:
		name = m.event.Name()
		err = a.events.Emit(ctx, m.event)
	case m.request != nil:
		name = m.request.Name()
		err = a.requests.Observe(ctx, m.request)
	}

	if err != nil {
		failed := zerr.With(zerr.Wrap(domain.ErrDeliveryFailed, "sink rejected message"), "message", name)
		a.logger.Error(zerr.With(failed, "reason", err.Error()))
	}
}
