package domain

// Player identifies a toon on a gateway.
type Player struct {
	Alias   string `json:"alias"`
	Gateway uint8  `json:"gateway"`
}

// Request is a classified URL observed in the browser cache.
// The set of implementations is closed.
type Request interface {
	// Name returns the stable category name of the request.
	Name() string
	isRequest()
}

// Tooninfo is a profile lookup issued when a toon's info is shown.
type Tooninfo struct {
	Player
}

// GameLoadingProfile is a profile lookup issued from the matchmaking loading screen.
type GameLoadingProfile struct {
	Player
}

// LeaderboardByToon is a leaderboard rank lookup for a toon.
type LeaderboardByToon struct {
	Player
}

// GameLoading is the matchmaking loading panel.
type GameLoading struct {
	URL string `json:"url"`
}

// ChatPanel is the chat panel.
type ChatPanel struct {
	URL string `json:"url"`
}

// ToastPanel is the toast notification panel.
type ToastPanel struct {
	URL string `json:"url"`
}

// MapPreview is a map preview image keyed by map hash.
type MapPreview struct {
	Hash string `json:"hash"`
}

// Unknown is a well-formed URL that matched no rule.
// Reason is set when a known marker matched but a field was malformed.
type Unknown struct {
	URL    string `json:"url"`
	Reason string `json:"reason,omitempty"`
}

// Unparsable is a cache key that is not an absolute URL.
type Unparsable struct {
	URL string `json:"url"`
}

func (Tooninfo) Name() string           { return "Tooninfo" }
func (GameLoadingProfile) Name() string { return "GameLoadingProfile" }
func (LeaderboardByToon) Name() string  { return "LeaderboardByToon" }
func (GameLoading) Name() string        { return "GameLoading" }
func (ChatPanel) Name() string          { return "ChatPanel" }
func (ToastPanel) Name() string         { return "ToastPanel" }
func (MapPreview) Name() string         { return "MapPreview" }
func (Unknown) Name() string            { return "Unknown" }
func (Unparsable) Name() string         { return "Unparsable" }

func (Tooninfo) isRequest()           {}
func (GameLoadingProfile) isRequest() {}
func (LeaderboardByToon) isRequest()  {}
func (GameLoading) isRequest()        {}
func (ChatPanel) isRequest()          {}
func (ToastPanel) isRequest()         {}
func (MapPreview) isRequest()         {}
func (Unknown) isRequest()            {}
func (Unparsable) isRequest()         {}
