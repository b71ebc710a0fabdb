package session

// Config carries the gameplay tunables. Durations are in whole seconds
// because that is the granularity of the wire countdown.
type Config struct {
	TurnSeconds           int `yaml:"turn_seconds"`
	CombatEscapeSeconds   int `yaml:"combat_escape_seconds"`
	CombatNoEscapeSeconds int `yaml:"combat_no_escape_seconds"`
	EscapeChancePercent   int `yaml:"escape_chance_percent"`
	EscapeAttempts        int `yaml:"escape_attempts"`
	WinsToVictory         int `yaml:"wins_to_victory"`
}

// DefaultConfig returns the tuning the browser client was balanced against.
func DefaultConfig() Config {
	return Config{
		TurnSeconds:           30,
		CombatEscapeSeconds:   5,
		CombatNoEscapeSeconds: 3,
		EscapeChancePercent:   30,
		EscapeAttempts:        2,
		WinsToVictory:         3,
	}
}
