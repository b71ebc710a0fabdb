package session

import "errors"

// Command rejections. All of these surface to the originating connection as
// an error event and leave the state machine untouched.
var (
	ErrInvalidStateTransition = errors.New("command not valid in current phase")
	ErrUnknownPlayer          = errors.New("unknown player")
	ErrNotYourTurn            = errors.New("not the active player")
	ErrNotEnoughPlayers       = errors.New("not enough players to start")
	ErrNoSpawn                = errors.New("map has too few spawn points")
	ErrNotAdmin               = errors.New("only the room admin can start the game")
	ErrNoMovementLeft         = errors.New("movement budget exhausted")
	ErrNoActionsLeft          = errors.New("no action points left")
	ErrTileBlocked            = errors.New("tile is not walkable")
	ErrTileOccupied           = errors.New("tile is occupied")
	ErrNotAdjacent            = errors.New("target is not adjacent")
	ErrNotADoor               = errors.New("tile is not a door")
	ErrUnknownTarget          = errors.New("combat target not found")
	ErrNotInCombat            = errors.New("no combat in progress")
	ErrNotYourRound           = errors.New("not your combat round")
	ErrEscapeNotAllowed       = errors.New("escape is no longer possible")
)

// code maps a rejection to the wire error code sent back to the client.
func code(err error) string {
	switch {
	case errors.Is(err, ErrUnknownPlayer):
		return "unknownPlayer"
	case errors.Is(err, ErrInvalidStateTransition),
		errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrNotYourRound),
		errors.Is(err, ErrNotInCombat),
		errors.Is(err, ErrEscapeNotAllowed):
		return "invalidState"
	default:
		return "invalidCommand"
	}
}
