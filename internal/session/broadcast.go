package session

import "github.com/mcdev12/skirmish/internal/events"

// Broadcaster is the session's outbound boundary. Implementations must be
// safe for concurrent use and must not block: the room loop fires and
// forgets.
type Broadcaster interface {
	ToRoom(roomID string, event events.Event)
	ToPlayer(roomID, playerID string, event events.Event)
}

// MultiBroadcaster fans every event out to several sinks, typically the
// websocket hub plus the NATS relay.
type MultiBroadcaster []Broadcaster

func (m MultiBroadcaster) ToRoom(roomID string, event events.Event) {
	for _, b := range m {
		b.ToRoom(roomID, event)
	}
}

func (m MultiBroadcaster) ToPlayer(roomID, playerID string, event events.Event) {
	for _, b := range m {
		b.ToPlayer(roomID, playerID, event)
	}
}

// NopBroadcaster discards everything.
type NopBroadcaster struct{}

func (NopBroadcaster) ToRoom(string, events.Event)           {}
func (NopBroadcaster) ToPlayer(string, string, events.Event) {}
