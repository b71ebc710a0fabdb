package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Event is the envelope every room broadcast travels in, on the websocket
// and on the NATS relay alike.
type Event struct {
	ID        string          `json:"id"`        // Event UUID
	RoomID    string          `json:"roomId"`    // Room UUID
	Type      Type            `json:"type"`      // Event type
	Timestamp time.Time       `json:"timestamp"` // Event creation time
	Data      json.RawMessage `json:"data"`      // Event-specific payload
}

// Type names are the wire contract with the browser client; they must not
// change without a matching client release.
type Type string

const (
	TypeGameStarted     Type = "gameStarted"
	TypeTurnStarted     Type = "turnStarted"
	TypeTurnTimerUpdate Type = "TurnTimerUpdate"
	TypeEndTurnTimer    Type = "endTurnTimer"
	TypePlayerMoved     Type = "playerMoved"
	TypeDoorToggled     Type = "doorToggled"
	TypeItemPicked      Type = "itemPicked"

	TypeCombatStarted     Type = "combatStarted"
	TypeCombatTimerUpdate Type = "CombatTimerUpdate"
	TypeEndCombatTimer    Type = "endCombatTimer"
	TypeAttackResult      Type = "attackResult"
	TypeEscapeResult      Type = "escapeResult"
	TypeCombatEnded       Type = "combatEnded"

	TypePlayerAbandoned Type = "playerAbandoned"
	TypeGameOver        Type = "gameOver"
	TypeError           Type = "error"
)

// New wraps a payload in an envelope. Timer updates pass a bare int so the
// wire carries the integer seconds directly.
func New(roomID string, t Type, payload any) Event {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			log.Error().Err(err).Str("type", string(t)).Msg("failed to marshal event payload")
		} else {
			data = b
		}
	}
	return Event{
		ID:        uuid.New().String(),
		RoomID:    roomID,
		Type:      t,
		Timestamp: time.Now(),
		Data:      data,
	}
}
