// Package console writes derived events and classified requests to a terminal
// or a pipe.
package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/scrwatch/internal/adapters/detector"
	"go.trai.ch/scrwatch/internal/core/domain"
	"go.trai.ch/scrwatch/internal/core/ports"
	"go.trai.ch/scrwatch/internal/ui/output"
	"go.trai.ch/scrwatch/internal/ui/style"
)

var (
	_ ports.EventSink   = (*Sink)(nil)
	_ ports.RequestSink = (*Sink)(nil)
)

// Sink prints one line per event or request. JSON mode writes a
// domain.Envelope per line; pretty mode writes a coloured summary.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	json   bool
	enc    *json.Encoder
	output *termenv.Output
	now    func() time.Time
}

// Option configures a Sink.
type Option func(*Sink)

// WithClock sets the clock used for pretty timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Sink) {
		s.now = now
	}
}

// NewSink creates a Sink writing to w, or stdout when w is nil. ModeAuto is
// treated as pretty; callers resolve it with the detector first.
func NewSink(w io.Writer, mode detector.OutputMode, opts ...Option) *Sink {
	if w == nil {
		w = os.Stdout
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	s := &Sink{
		w:      w,
		json:   mode == detector.ModeJSON,
		enc:    enc,
		output: output.New(w),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Emit implements ports.EventSink.
func (s *Sink) Emit(_ context.Context, ev domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.json {
		return s.enc.Encode(domain.EventEnvelope(ev))
	}

	name := ev.Name()
	head := s.output.String(style.EventIcon(name) + " " + name).
		Foreground(s.output.Color(string(style.EventColor(name)))).
		Bold().
		String()
	return s.printLocked(head, describeEvent(ev))
}

// Observe implements ports.RequestSink.
func (s *Sink) Observe(_ context.Context, req domain.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.json {
		return s.enc.Encode(domain.RequestEnvelope(req))
	}

	head := s.output.String("  " + style.Arrow + " " + req.Name()).Faint().String()
	return s.printLocked(head, describeRequest(req))
}

// entryLine is the JSON form of a cache entry.
type entryLine struct {
	LastUsed time.Time `json:"last_used"`
	URL      string    `json:"url"`
	Request  string    `json:"request"`
}

// Entry prints a raw cache entry together with the category it classifies as.
func (s *Sink) Entry(e domain.CacheEntry, req domain.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.json {
		return s.enc.Encode(entryLine{LastUsed: e.LastUsed, URL: e.URL, Request: req.Name()})
	}

	stamp := s.output.String(e.LastUsed.Format(time.RFC3339Nano)).
		Foreground(s.output.Color(string(style.Slate))).
		String()
	name := s.output.String(req.Name()).Faint().String()
	_, err := fmt.Fprintln(s.w, stamp+" "+name+" "+e.URL)
	return err
}

func (s *Sink) printLocked(head, detail string) error {
	stamp := s.output.String(s.now().Format(time.TimeOnly)).
		Foreground(s.output.Color(string(style.Slate))).
		String()

	line := stamp + " " + head
	if detail != "" {
		line += " " + detail
	}
	_, err := fmt.Fprintln(s.w, line)
	return err
}

func player(p domain.Player) string {
	return fmt.Sprintf("%s@%d", p.Alias, p.Gateway)
}

func describeEvent(ev domain.Event) string {
	switch e := ev.(type) {
	case domain.ServiceUp:
		return fmt.Sprintf("port %d", e.Port)
	case domain.ProfileSelect:
		return player(e.Player)
	case domain.MatchFound:
		return fmt.Sprintf("%s vs %s on map %s", player(e.Player1), player(e.Player2), e.Map)
	default:
		return ""
	}
}

func describeRequest(req domain.Request) string {
	switch r := req.(type) {
	case domain.Tooninfo:
		return player(r.Player)
	case domain.GameLoadingProfile:
		return player(r.Player)
	case domain.LeaderboardByToon:
		return player(r.Player)
	case domain.MapPreview:
		return r.Hash
	case domain.GameLoading:
		return r.URL
	case domain.ChatPanel:
		return r.URL
	case domain.ToastPanel:
		return r.URL
	case domain.Unparsable:
		return r.URL
	case domain.Unknown:
		if r.Reason == "" {
			return r.URL
		}
		return r.URL + " (" + r.Reason + ")"
	default:
		return ""
	}
}
