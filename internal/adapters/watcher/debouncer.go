package watcher

import (
	"slices"
	"strings"
	"sync"
	"time"
	"unique"

	"go.trai.ch/scrwatch/internal/core/ports"
)

// maxWaitWindows bounds how many windows a pending batch may be held back
// while events keep arriving.
const maxWaitWindows = 2

// Debouncer coalesces rapid file events into one batch per quiet window.
// A batch is never held longer than maxWaitWindows windows after its first
// event, so a steady stream of writes still yields batches.
// The last operation seen for a path wins.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]ports.WatchOp
	first    time.Time
	timer    *time.Timer
	window   time.Duration
	callback func(events []ports.WatchEvent)
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(events []ports.WatchEvent)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]ports.WatchOp),
		window:   window,
		callback: callback,
	}
}

// Add records an event for path and restarts the window, up to the
// maximum wait of the pending batch.
func (d *Debouncer) Add(path string, op ports.WatchOp) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	if len(d.pending) == 0 {
		d.first = now
	}
	d.pending[unique.Make(path)] = op

	delay := d.window
	if remaining := d.first.Add(maxWaitWindows * d.window).Sub(now); remaining < delay {
		delay = max(remaining, 0)
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, d.fire)
}

// Stop cancels the pending window and discards queued events.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}
	events := d.takeLocked()
	d.timer = nil
	d.mu.Unlock()

	if d.callback != nil {
		d.callback(events)
	}
}

// takeLocked drains the pending set, sorted by path.
func (d *Debouncer) takeLocked() []ports.WatchEvent {
	events := make([]ports.WatchEvent, 0, len(d.pending))
	for handle, op := range d.pending {
		events = append(events, ports.WatchEvent{Path: handle.Value(), Operation: op})
	}
	clear(d.pending)

	slices.SortFunc(events, func(a, b ports.WatchEvent) int {
		return strings.Compare(a.Path, b.Path)
	})
	return events
}
