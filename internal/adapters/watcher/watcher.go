// Package watcher reports changes to a fixed set of files in one directory.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/scrwatch/internal/core/domain"
	"go.trai.ch/scrwatch/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileWatcher = (*Watcher)(nil)

const eventChannelBuffer = 16

// Watcher implements ports.FileWatcher with fsnotify on the directory plus a
// stat poll of each file at the notification interval.
type Watcher struct {
	logger ports.Logger
}

// NewWatcher creates a new file watcher.
func NewWatcher(logger ports.Logger) *Watcher {
	return &Watcher{logger: logger}
}

// fileState is the last observed stat of a watched file.
type fileState struct {
	exists  bool
	size    int64
	modTime time.Time
}

func statFile(path string) (fileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}, err
	}
	return fileState{exists: true, size: info.Size(), modTime: info.ModTime()}, nil
}

// Watch implements ports.FileWatcher. Every name must exist when Watch is
// called. A directory that fsnotify cannot watch falls back to polling.
func (w *Watcher) Watch(
	ctx context.Context,
	dir string,
	names []string,
	interval time.Duration,
) (<-chan ports.WatchEvent, error) {
	if interval <= 0 {
		interval = domain.DefaultNotifyInterval
	}

	states := make(map[string]fileState, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		st, err := statFile(path)
		if err != nil {
			regErr := zerr.With(zerr.Wrap(domain.ErrWatchRegisterFailed, "cache file not watchable"), "file", path)
			return nil, zerr.With(regErr, "reason", err.Error())
		}
		states[path] = st
	}

	fsw, err := fsnotify.NewWatcher()
	if err == nil {
		if addErr := fsw.Add(dir); addErr != nil {
			_ = fsw.Close()
			fsw, err = nil, addErr
		}
	}
	if err != nil {
		w.logger.Warn(fmt.Sprintf("change notifications unavailable for %s, polling only: %v", dir, err))
	}

	out := make(chan ports.WatchEvent, eventChannelBuffer)
	batches := make(chan []ports.WatchEvent)
	debouncer := NewDebouncer(interval, func(events []ports.WatchEvent) {
		select {
		case batches <- events:
		case <-ctx.Done():
		}
	})

	l := &loop{
		logger:    w.logger,
		fsw:       fsw,
		states:    states,
		interval:  interval,
		debouncer: debouncer,
		batches:   batches,
		out:       out,
	}
	go l.run(ctx)

	return out, nil
}

// loop owns the fsnotify watcher and the poll state of one Watch call.
type loop struct {
	logger    ports.Logger
	fsw       *fsnotify.Watcher
	states    map[string]fileState
	interval  time.Duration
	debouncer *Debouncer
	batches   chan []ports.WatchEvent
	out       chan ports.WatchEvent
}

func (l *loop) run(ctx context.Context) {
	defer close(l.out)
	defer l.debouncer.Stop()
	if l.fsw != nil {
		defer func() { _ = l.fsw.Close() }()
	}

	var (
		fsEvents <-chan fsnotify.Event
		fsErrors <-chan error
	)
	if l.fsw != nil {
		fsEvents, fsErrors = l.fsw.Events, l.fsw.Errors
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsEvents:
			if !ok {
				fsEvents = nil
				continue
			}
			if _, watched := l.states[event.Name]; !watched {
				continue
			}
			if op, known := convertOp(event.Op); known {
				l.debouncer.Add(event.Name, op)
			}
		case err, ok := <-fsErrors:
			if !ok {
				fsErrors = nil
				continue
			}
			l.logger.Warn("file watcher error: " + err.Error())
		case <-ticker.C:
			l.poll()
		case batch := <-l.batches:
			for _, ev := range batch {
				select {
				case l.out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// poll compares each file against its last stat and reports differences.
func (l *loop) poll() {
	for path, prev := range l.states {
		cur, err := statFile(path)
		if err != nil {
			cur = fileState{}
		}
		if cur == prev {
			continue
		}
		l.states[path] = cur

		switch {
		case !cur.exists:
			l.debouncer.Add(path, ports.OpRemove)
		case !prev.exists:
			l.debouncer.Add(path, ports.OpCreate)
		default:
			l.debouncer.Add(path, ports.OpWrite)
		}
	}
}

// convertOp maps an fsnotify operation to ports.WatchOp.
func convertOp(op fsnotify.Op) (ports.WatchOp, bool) {
	switch {
	case op.Has(fsnotify.Write):
		return ports.OpWrite, true
	case op.Has(fsnotify.Create):
		return ports.OpCreate, true
	case op.Has(fsnotify.Remove):
		return ports.OpRemove, true
	case op.Has(fsnotify.Rename):
		return ports.OpRename, true
	default:
		return 0, false
	}
}
