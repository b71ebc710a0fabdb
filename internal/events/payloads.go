package events

import "github.com/mcdev12/skirmish/internal/stats"

// GameStartedPayload announces the turn order decided at game start.
type GameStartedPayload struct {
	TurnOrder   []string `json:"turnOrder"`
	TurnSeconds int      `json:"turnSeconds"`
}

// TurnStartedPayload opens a player's turn.
type TurnStartedPayload struct {
	PlayerID     string `json:"playerId"`
	TurnNumber   int    `json:"turnNumber"`
	MovementLeft int    `json:"movementLeft"`
	ActionsLeft  int    `json:"actionsLeft"`
}

// PlayerMovedPayload reports one movement step.
type PlayerMovedPayload struct {
	PlayerID     string `json:"playerId"`
	From         int    `json:"from"`
	To           int    `json:"to"`
	MovementLeft int    `json:"movementLeft"`
}

// DoorToggledPayload reports a door changing state.
type DoorToggledPayload struct {
	TileIndex int    `json:"tileIndex"`
	State     string `json:"state"`
}

// ItemPickedPayload reports an item leaving the board for an inventory.
type ItemPickedPayload struct {
	PlayerID  string `json:"playerId"`
	Item      string `json:"item"`
	TileIndex int    `json:"tileIndex"`
}

// CombatStartedPayload opens a combat sub-session.
type CombatStartedPayload struct {
	AttackerID string `json:"attackerId"`
	DefenderID string `json:"defenderId"`
}

// AttackResultPayload reports one resolved attack exchange.
type AttackResultPayload struct {
	AttackerID     string `json:"attackerId"`
	DefenderID     string `json:"defenderId"`
	AttackRoll     int    `json:"attackRoll"`
	DefenseRoll    int    `json:"defenseRoll"`
	Hit            bool   `json:"hit"`
	DefenderHealth int    `json:"defenderHealth"`
	FightTurns     int    `json:"fightTurns"`
}

// EscapeResultPayload reports one escape attempt.
type EscapeResultPayload struct {
	PlayerID    string `json:"playerId"`
	Success     bool   `json:"success"`
	EscapesLeft int    `json:"escapesLeft"`
}

// CombatEndedPayload closes a combat sub-session. Reason is "elimination",
// "escape" or "abandon".
type CombatEndedPayload struct {
	WinnerID string `json:"winnerId,omitempty"`
	LoserID  string `json:"loserId,omitempty"`
	Reason   string `json:"reason"`
}

// PlayerAbandonedPayload reports a disconnection or explicit abandon.
type PlayerAbandonedPayload struct {
	PlayerID string `json:"playerId"`
}

// GameOverPayload is the terminal broadcast carrying the final report.
type GameOverPayload struct {
	WinnerID string       `json:"winnerId,omitempty"`
	Report   stats.Report `json:"report"`
}

// ErrorPayload is sent to the originating connection when a command is
// rejected.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
