// Package pipeline runs the process watcher and the cache watcher and feeds
// their output through the classifier and deriver into one sink.
package pipeline

import (
	"context"
	"sync"

	"go.trai.ch/scrwatch/internal/core/domain"
	"go.trai.ch/scrwatch/internal/core/ports"
	"go.trai.ch/scrwatch/internal/engine/aggregator"
	"go.trai.ch/scrwatch/internal/engine/cachewatch"
	"go.trai.ch/scrwatch/internal/engine/classifier"
	"go.trai.ch/scrwatch/internal/engine/deriver"
	"go.trai.ch/scrwatch/internal/engine/procwatch"
	"golang.org/x/sync/errgroup"
)

// Deps are the collaborators of a running pipeline.
type Deps struct {
	Processes ports.ProcessTable
	Reader    ports.SnapshotReader
	Files     ports.FileWatcher
	Tracer    ports.Tracer
	Logger    ports.Logger
	Events    ports.EventSink
	// Requests receives every classified request. Optional.
	Requests ports.RequestSink
}

// Handle controls a started pipeline. Holding one handle per pipeline is the
// caller's responsibility; Start never shares state between calls.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error

	mu       sync.Mutex
	cacheErr error
}

// Start launches both watchers and the delivery goroutine. A cache watcher
// that cannot register its files stops on its own; the process watcher keeps
// running and the failure is reported by CacheErr.
func Start(ctx context.Context, cfg domain.Config, deps Deps) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	agg := aggregator.New(deps.Events, deps.Requests, deps.Logger, aggregator.DefaultBuffer)
	proc := procwatch.New(deps.Processes, deps.Logger, cfg.Process)
	cache := cachewatch.New(deps.Reader, deps.Files, deps.Tracer, deps.Logger, cfg.Cache)
	der := deriver.New(cfg.Deriver.WindowCapacity, cfg.Deriver.ChatLookback)

	var producers sync.WaitGroup
	producers.Go(func() {
		_ = proc.Run(ctx, func(ev domain.Event) {
			agg.Event(ctx, ev)
		})
	})
	producers.Go(func() {
		err := cache.Run(ctx, func(e domain.CacheEntry) {
			req := classifier.Classify(e.URL)
			agg.Request(ctx, req)
			if ev, ok := der.Feed(req); ok {
				agg.Event(ctx, ev)
			}
		})
		if err != nil {
			h.setCacheErr(err)
			deps.Logger.Error(err)
		}
	})

	var g errgroup.Group
	g.Go(func() error {
		producers.Wait()
		agg.Close()
		return nil
	})
	g.Go(func() error {
		return agg.Run(ctx)
	})

	go func() {
		h.err = g.Wait()
		cancel()
		close(h.done)
	}()

	return h
}

// Stop cancels the pipeline and waits for every goroutine to exit.
func (h *Handle) Stop() error {
	h.cancel()
	return h.Wait()
}

// Wait blocks until the pipeline has fully stopped.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Done is closed once the pipeline has fully stopped.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// CacheErr returns the error that stopped the cache watcher, if any.
func (h *Handle) CacheErr() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cacheErr
}

func (h *Handle) setCacheErr(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cacheErr = err
}
