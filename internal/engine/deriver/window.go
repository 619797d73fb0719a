package deriver

import (
	"iter"

	"go.trai.ch/scrwatch/internal/core/domain"
)

// window is a fixed-capacity FIFO of requests. Pushing onto a full window
// evicts the oldest entry.
type window struct {
	buf   []domain.Request
	head  int // index of the oldest entry
	count int
}

func newWindow(capacity int) *window {
	return &window{buf: make([]domain.Request, capacity)}
}

func (w *window) push(req domain.Request) {
	if len(w.buf) == 0 {
		return
	}
	tail := (w.head + w.count) % len(w.buf)
	w.buf[tail] = req
	if w.count == len(w.buf) {
		w.head = (w.head + 1) % len(w.buf)
		return
	}
	w.count++
}

func (w *window) clear() {
	clear(w.buf)
	w.head = 0
	w.count = 0
}

func (w *window) len() int { return w.count }

// newest yields at most n entries, most recent first.
func (w *window) newest(n int) iter.Seq[domain.Request] {
	return func(yield func(domain.Request) bool) {
		for i := range min(n, w.count) {
			idx := (w.head + w.count - 1 - i) % len(w.buf)
			if !yield(w.buf[idx]) {
				return
			}
		}
	}
}

// snapshot returns the entries oldest first.
func (w *window) snapshot() []domain.Request {
	out := make([]domain.Request, 0, w.count)
	for i := range w.count {
		out = append(out, w.buf[(w.head+i)%len(w.buf)])
	}
	return out
}
