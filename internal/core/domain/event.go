package domain

// Event is a domain event delivered to consumers.
// The set of implementations is closed.
type Event interface {
	// Name returns the wire name of the event.
	Name() string
	isEvent()
}

// ProfileSelect is derived when the local player opens chat with a toon selected.
type ProfileSelect struct {
	Player
}

// MatchFound is derived when both players of a match and its map are known.
type MatchFound struct {
	Player1 Player `json:"player1"`
	Player2 Player `json:"player2"`
	Map     string `json:"map"`
}

// GameEnded is derived when the post-game toast appears.
type GameEnded struct{}

// ServiceUp reports the local API listening on Port.
type ServiceUp struct {
	Port uint16 `json:"port"`
}

// ServiceDown reports that the local API is not reachable.
type ServiceDown struct{}

func (ProfileSelect) Name() string { return "ProfileSelect" }
func (MatchFound) Name() string    { return "MatchFound" }
func (GameEnded) Name() string     { return "GameEnded" }
func (ServiceUp) Name() string     { return "WebServerRunning" }
func (ServiceDown) Name() string   { return "WebServerDown" }

func (ProfileSelect) isEvent() {}
func (MatchFound) isEvent()    {}
func (GameEnded) isEvent()     {}
func (ServiceUp) isEvent()     {}
func (ServiceDown) isEvent()   {}

// Envelope is the serialized form of an event or request: {"name": ..., "payload": ...}.
type Envelope struct {
	Name    string `json:"name"`
	Payload any    `json:"payload,omitempty"`
}

// EventEnvelope wraps ev for serialization. Unit events carry no payload.
func EventEnvelope(ev Event) Envelope {
	switch ev.(type) {
	case GameEnded, ServiceDown:
		return Envelope{Name: ev.Name()}
	default:
		return Envelope{Name: ev.Name(), Payload: ev}
	}
}

// RequestEnvelope wraps req for serialization.
func RequestEnvelope(req Request) Envelope {
	return Envelope{Name: req.Name(), Payload: req}
}
