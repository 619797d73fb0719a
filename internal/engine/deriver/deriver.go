// Package deriver turns a chronological stream of classified requests into domain events.
package deriver

import (
	"go.trai.ch/scrwatch/internal/core/domain"
)

// Deriver matches request patterns over a bounded window of recent requests.
// It is not safe for concurrent use; the cache watcher owns it.
type Deriver struct {
	window        *window
	matchLookback int
	chatLookback  int
}

// New creates a Deriver whose window holds capacity requests. Chat panels
// look back chatLookback requests for a leaderboard lookup; match detection
// looks back over the whole window.
func New(capacity, chatLookback int) *Deriver {
	return &Deriver{
		window:        newWindow(capacity),
		matchLookback: capacity,
		chatLookback:  chatLookback,
	}
}

// Feed consumes one request. When it completes a pattern the derived event is
// returned and the window starts a new episode without the triggering request.
func (d *Deriver) Feed(req domain.Request) (domain.Event, bool) {
	ev, ok := d.derive(req)
	if ok {
		d.window.clear()
		return ev, true
	}

	d.window.push(req)
	return nil, false
}

// Len reports how many requests are currently held.
func (d *Deriver) Len() int {
	return d.window.len()
}

// Window returns the held requests, oldest first.
func (d *Deriver) Window() []domain.Request {
	return d.window.snapshot()
}

func (d *Deriver) derive(req domain.Request) (domain.Event, bool) {
	switch r := req.(type) {
	case domain.GameLoadingProfile:
		return d.matchFound(r.Player)
	case domain.ChatPanel:
		return d.profileSelect()
	case domain.ToastPanel:
		return domain.GameEnded{}, true
	default:
		return nil, false
	}
}

// matchFound looks for the map and the opponent's loading-screen profile.
func (d *Deriver) matchFound(self domain.Player) (domain.Event, bool) {
	var (
		mapHash  string
		haveMap  bool
		opponent domain.Player
		haveOpp  bool
	)

	for prev := range d.window.newest(d.matchLookback) {
		switch p := prev.(type) {
		case domain.MapPreview:
			if !haveMap {
				mapHash, haveMap = p.Hash, true
			}
		case domain.GameLoadingProfile:
			if !haveOpp && p.Player != self {
				opponent, haveOpp = p.Player, true
			}
		}
		if haveMap && haveOpp {
			return domain.MatchFound{Player1: self, Player2: opponent, Map: mapHash}, true
		}
	}

	return nil, false
}

// profileSelect looks for a recent leaderboard lookup.
func (d *Deriver) profileSelect() (domain.Event, bool) {
	for prev := range d.window.newest(d.chatLookback) {
		if lb, ok := prev.(domain.LeaderboardByToon); ok {
			return domain.ProfileSelect{Player: lb.Player}, true
		}
	}
	return nil, false
}
