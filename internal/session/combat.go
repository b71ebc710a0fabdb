package session

// Combat is the sub-session created when two players engage. It owns the
// round counter and the escape window; it is destroyed, never reused, when
// the encounter ends.
type Combat struct {
	AttackerID string
	DefenderID string

	// FightTurns counts resolved rounds.
	FightTurns int

	// EscapeAllowed selects the combat timer duration: true until the
	// defender has burned the escape window, false afterwards.
	EscapeAllowed bool

	// EscapesLeft is the defender's remaining flee attempts.
	EscapesLeft int

	// actorID is whose round it is. The defender opens: their flee chance
	// comes before the first exchange, after which the escape window closes.
	actorID string
}

func newCombat(attackerID, defenderID string, escapeAttempts int) *Combat {
	return &Combat{
		AttackerID:    attackerID,
		DefenderID:    defenderID,
		EscapeAllowed: true,
		EscapesLeft:   escapeAttempts,
		actorID:       defenderID,
	}
}

// ActorID returns the player whose combat round it is.
func (c *Combat) ActorID() string {
	return c.actorID
}

// OpponentOf returns the other combatant's id.
func (c *Combat) OpponentOf(playerID string) string {
	if playerID == c.AttackerID {
		return c.DefenderID
	}
	return c.AttackerID
}

// Involves reports whether the player is one of the two combatants.
func (c *Combat) Involves(playerID string) bool {
	return playerID == c.AttackerID || playerID == c.DefenderID
}

// advance closes the current round and hands the next one to the opponent.
func (c *Combat) advance() {
	c.FightTurns++
	c.actorID = c.OpponentOf(c.actorID)
}

// closeEscapeWindow flips the defender into no-escape rounds.
func (c *Combat) closeEscapeWindow() {
	c.EscapeAllowed = false
}
