// Package cachewatch turns browser cache file changes into a stream of newly used entries.
package cachewatch

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.trai.ch/scrwatch/internal/core/domain"
	"go.trai.ch/scrwatch/internal/core/ports"
	"go.trai.ch/zerr"
)

// errNotStable marks a read whose hash differs from the previous attempt.
var errNotStable = errors.New("snapshot changed between reads")

// Watcher reacts to cache file notifications and emits entries used after its
// high-water mark, oldest first.
type Watcher struct {
	reader ports.SnapshotReader
	files  ports.FileWatcher
	tracer ports.Tracer
	logger ports.Logger
	cfg    domain.CacheConfig

	mark    time.Time
	hasMark bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithHighWaterMark starts the watcher at t instead of the time Run is called.
func WithHighWaterMark(t time.Time) Option {
	return func(w *Watcher) {
		w.mark = t
		w.hasMark = true
	}
}

// New creates a Watcher for the cache described by cfg.
func New(
	reader ports.SnapshotReader,
	files ports.FileWatcher,
	tracer ports.Tracer,
	logger ports.Logger,
	cfg domain.CacheConfig,
	opts ...Option,
) *Watcher {
	w := &Watcher{
		reader: reader,
		files:  files,
		tracer: tracer,
		logger: logger,
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// HighWaterMark returns the last-used time of the newest entry emitted so far.
func (w *Watcher) HighWaterMark() time.Time {
	return w.mark
}

// Run registers the cache files and processes notifications until ctx is done.
// A registration failure is returned immediately. Rounds that never stabilize
// are logged and skipped; the watcher keeps waiting for the next change.
func (w *Watcher) Run(ctx context.Context, emit func(domain.CacheEntry)) error {
	names := domain.CacheFiles()
	events, err := w.files.Watch(ctx, w.cfg.Dir, names, w.cfg.NotifyInterval)
	if err != nil {
		return err
	}

	if !w.hasMark {
		w.mark = time.Now()
		w.hasMark = true
	}
	w.logger.Info("watching browser cache in " + w.cfg.Dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return zerr.With(zerr.Wrap(domain.ErrWatcherClosed, "cache watch ended"), "dir", w.cfg.Dir)
			}
			if !slices.Contains(names, filepath.Base(ev.Path)) {
				continue
			}
			drain(events)

			if err := w.Sync(ctx, emit); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.logger.Warn(err.Error())
			}
		}
	}
}

// drain discards queued notifications; one sync covers all of them.
func drain(events <-chan ports.WatchEvent) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Sync performs one round: read until stable, then emit entries newer than the
// high-water mark in ascending last-used order and advance the mark.
func (w *Watcher) Sync(ctx context.Context, emit func(domain.CacheEntry)) error {
	ctx, span := w.tracer.Start(ctx, "cache.sync")
	defer span.End()

	snap, attempts, err := w.StableSnapshot(ctx)
	span.SetAttribute("attempts", attempts)
	if err != nil {
		span.RecordError(err)
		return err
	}

	fresh := w.advance(snap.Entries)
	span.SetAttribute("entries", len(snap.Entries))
	span.SetAttribute("new_entries", len(fresh))

	for _, e := range fresh {
		emit(e)
	}
	return nil
}

// StableSnapshot reads the cache until two consecutive successful reads hash
// equal. A failed read does not reset the previous hash. It gives up after the
// configured number of attempts with ErrCacheUnstable.
func (w *Watcher) StableSnapshot(ctx context.Context) (domain.CacheSnapshot, int, error) {
	var (
		attempts int
		prev     uint64
		hasPrev  bool
		lastErr  error
	)

	op := func() (domain.CacheSnapshot, error) {
		attempts++
		snap, err := w.read()
		if err != nil {
			lastErr = err
			return domain.CacheSnapshot{}, err
		}
		if hasPrev && prev == snap.Hash {
			return snap, nil
		}
		prev, hasPrev = snap.Hash, true
		lastErr = errNotStable
		return domain.CacheSnapshot{}, errNotStable
	}

	snap, err := backoff.RetryWithData(op, w.policy(ctx))
	if err == nil {
		return snap, attempts, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.CacheSnapshot{}, attempts, ctxErr
	}

	unstable := zerr.Wrap(domain.ErrCacheUnstable, "cache sync abandoned")
	unstable = zerr.With(unstable, "attempts", attempts)
	unstable = zerr.With(unstable, "last_error", lastErr.Error())
	return domain.CacheSnapshot{}, attempts, zerr.With(unstable, "dir", w.cfg.Dir)
}

func (w *Watcher) policy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(w.cfg.Retry.InitialBackoff),
		backoff.WithMaxInterval(w.cfg.Retry.MaxBackoff),
		backoff.WithMaxElapsedTime(0),
	)
	retries := max(w.cfg.Retry.MaxAttempts-1, 0)
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

func (w *Watcher) read() (domain.CacheSnapshot, error) {
	var entries []domain.CacheEntry
	for e, err := range w.reader.Read(w.cfg.Dir) {
		if err != nil {
			return domain.CacheSnapshot{}, err
		}
		entries = append(entries, e)
	}
	return domain.CacheSnapshot{Entries: entries, Hash: Fingerprint(entries)}, nil
}

// advance sorts entries, returns those past the mark and moves the mark to the newest.
func (w *Watcher) advance(entries []domain.CacheEntry) []domain.CacheEntry {
	slices.SortStableFunc(entries, func(a, b domain.CacheEntry) int {
		return a.LastUsed.Compare(b.LastUsed)
	})

	i, _ := slices.BinarySearchFunc(entries, w.mark, func(e domain.CacheEntry, t time.Time) int {
		if e.LastUsed.After(t) {
			return 1
		}
		return -1
	})
	fresh := entries[i:]
	if len(fresh) > 0 {
		w.mark = fresh[len(fresh)-1].LastUsed
	}
	return fresh
}
