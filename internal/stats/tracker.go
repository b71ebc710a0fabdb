package stats

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// PercentScale is the scale of the report percentages.
const PercentScale = 100.0

// Tracker passively aggregates room activity: distinct tiles visited,
// distinct doors toggled, distinct players who have held the flag, turn
// count and elapsed match time. Recorders are idempotent by set membership,
// so replaying the same action never inflates a percentage.
type Tracker struct {
	clock clockwork.Clock

	mu          sync.Mutex
	maxTiles    int
	maxDoors    int
	visited     map[int]struct{}
	doors       map[int]struct{}
	flagHolders map[string]struct{}
	turns       int
	startedAt   time.Time
	elapsed     time.Duration
	running     bool
}

// Report is the immutable final snapshot. Field names are the wire contract.
type Report struct {
	MatchLength         int     `json:"matchLength"`
	NbTurns             int     `json:"nbTurns"`
	VisitedTilesPercent float64 `json:"visitedTilesPercent"`
	UsedDoorsPercent    float64 `json:"usedDoorsPercent"`
	NbPlayersHeldFlag   int     `json:"nbPlayersHeldFlag"`
}

// NewTracker creates a tracker for a map with the given denominators. Both
// are fixed for the lifetime of the room.
func NewTracker(clock clockwork.Clock, maxTiles, maxDoors int) *Tracker {
	return &Tracker{
		clock:       clock,
		maxTiles:    maxTiles,
		maxDoors:    maxDoors,
		visited:     make(map[int]struct{}),
		doors:       make(map[int]struct{}),
		flagHolders: make(map[string]struct{}),
	}
}

// Start begins the elapsed-time accumulator. Starting twice does not reset
// an already running accumulator.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.startedAt = t.clock.Now()
}

// RecordTileVisited marks a tile index as visited by any player.
func (t *Tracker) RecordTileVisited(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visited[index] = struct{}{}
}

// RecordDoorUsed marks a door index as toggled at least once.
func (t *Tracker) RecordDoorUsed(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.doors[index] = struct{}{}
}

// RecordFlagHolder marks a player as having held the capture objective.
func (t *Tracker) RecordFlagHolder(playerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.flagHolders[playerID] = struct{}{}
}

// RecordTurnStarted counts one turn.
func (t *Tracker) RecordTurnStarted() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns++
}

// VisitedPercent returns the visited-tiles percentage so far.
func (t *Tracker) VisitedPercent() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return percent(len(t.visited), t.maxTiles)
}

// UsedDoorsPercent returns the used-doors percentage so far.
func (t *Tracker) UsedDoorsPercent() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return percent(len(t.doors), t.maxDoors)
}

// ComputeFinal stops the elapsed-time accumulator and freezes the report.
// It is idempotent: the accumulator stops exactly once and a second call
// returns the same match length.
func (t *Tracker) ComputeFinal() Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		t.elapsed += t.clock.Now().Sub(t.startedAt)
		t.running = false
	}

	return Report{
		MatchLength:         int(t.elapsed / time.Second),
		NbTurns:             t.turns,
		VisitedTilesPercent: percent(len(t.visited), t.maxTiles),
		UsedDoorsPercent:    percent(len(t.doors), t.maxDoors),
		NbPlayersHeldFlag:   len(t.flagHolders),
	}
}

// percent guards the zero denominator: a map with no doors reports 0, not
// NaN.
func percent(count, max int) float64 {
	if max == 0 {
		return 0
	}
	return PercentScale * float64(count) / float64(max)
}
