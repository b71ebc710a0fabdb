package session

import "github.com/mcdev12/skirmish/internal/models"

// CommandType names are the inbound wire contract.
type CommandType string

const (
	CmdStartGame      CommandType = "startGame"
	CmdEndTurn        CommandType = "endTurn"
	CmdMoveTo         CommandType = "moveTo"
	CmdToggleDoor     CommandType = "toggleDoor"
	CmdInitiateCombat CommandType = "initiateCombat"
	CmdAttack         CommandType = "attack"
	CmdAttemptEscape  CommandType = "attemptEscape"
	CmdAbandon        CommandType = "abandon"
)

// Command is one inbound player action, already attributed to a room and a
// player by the gateway. Reply, when non-nil, receives the handling result;
// the gateway leaves it nil and relies on the error event instead.
type Command struct {
	PlayerID  string      `json:"playerId"`
	Type      CommandType `json:"type"`
	TileIndex int         `json:"tileIndex,omitempty"`
	TargetID  string      `json:"targetId,omitempty"`

	Reply chan error `json:"-"`

	// set only for the internal join command
	join *models.Player
}
