package session

import (
	"context"
	"math/rand"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/skirmish/internal/events"
	"github.com/mcdev12/skirmish/internal/models"
	"github.com/mcdev12/skirmish/internal/stats"
	"github.com/mcdev12/skirmish/internal/timer"
)

// Phase is the session's position in the turn/combat state machine.
type Phase string

const (
	PhaseWaiting    Phase = "waiting"
	PhaseTurnMove   Phase = "turnMove"
	PhaseTurnAction Phase = "turnAction"
	PhaseCombat     Phase = "combat"
	PhaseGameOver   Phase = "gameOver"
)

// timerEvent is a timer callback handed into the room loop. The epoch is
// the one the expiring countdown was started with; the loop drops events
// whose epoch no longer matches the countdown it last started, so an expiry
// queued behind a command that already ended the turn or round cannot
// advance the next one a second time.
type timerEvent struct {
	kind  timerEventKind
	epoch uint64
}

type timerEventKind int

const (
	turnExpired timerEventKind = iota
	combatRoundOver
)

// Session is the aggregate root of one room: roster, map, turn pointer,
// per-turn budgets, the two timers and the stats tracker. All state is
// confined to the Run loop; timers and connections only enqueue.
type Session struct {
	roomID  string
	cfg     Config
	gameMap *models.GameMap
	logger  zerolog.Logger

	mu           sync.RWMutex
	phase        Phase
	players      []*models.Player
	turnIndex    int
	turnNumber   int
	movementLeft int
	actionsLeft  int
	combat       *Combat

	turnTimer   *timer.TurnTimer
	combatTimer *timer.CombatTimer
	tracker     *stats.Tracker
	broadcaster Broadcaster
	rng         *rand.Rand

	// Epochs of the countdowns last started, used to reject stale queued
	// expiries. Guarded by mu like the rest of the turn state.
	turnTimerEpoch   uint64
	combatTimerEpoch uint64

	inbox      chan Command
	timerCh    chan timerEvent
	onGameOver func(roomID string)
}

// New creates a session in the WAITING phase. The rng drives combat rolls;
// inject a seeded source for reproducible games.
func New(roomID string, gameMap *models.GameMap, cfg Config, broadcaster Broadcaster, clock clockwork.Clock, rng *rand.Rand) *Session {
	s := &Session{
		roomID:      roomID,
		cfg:         cfg,
		gameMap:     gameMap,
		logger:      log.With().Str("room_id", roomID).Logger(),
		phase:       PhaseWaiting,
		broadcaster: broadcaster,
		rng:         rng,
		tracker:     stats.NewTracker(clock, gameMap.TileCount(), gameMap.DoorCount()),
		inbox:       make(chan Command, 64),
		timerCh:     make(chan timerEvent, 4),
	}

	// Ticks carry no state change and broadcast straight from the timer
	// goroutine; expiries re-enter through the loop so they serialize with
	// player commands.
	s.turnTimer = timer.NewTurnTimer(clock,
		func(remaining int) {
			broadcaster.ToRoom(roomID, events.New(roomID, events.TypeTurnTimerUpdate, remaining))
		},
		func(epoch uint64) { s.timerCh <- timerEvent{kind: turnExpired, epoch: epoch} },
	)
	s.combatTimer = timer.NewCombatTimer(clock, cfg.CombatEscapeSeconds, cfg.CombatNoEscapeSeconds,
		func(remaining int) {
			broadcaster.ToRoom(roomID, events.New(roomID, events.TypeCombatTimerUpdate, remaining))
		},
		func(epoch uint64) { s.timerCh <- timerEvent{kind: combatRoundOver, epoch: epoch} },
	)
	return s
}

// SetOnGameOver registers a hook invoked once when the session reaches
// GAME_OVER, after cleanup and the final broadcast.
func (s *Session) SetOnGameOver(fn func(roomID string)) {
	s.onGameOver = fn
}

// RoomID returns the room this session drives.
func (s *Session) RoomID() string {
	return s.roomID
}

// Run consumes commands and timer events until ctx is cancelled. It is the
// room's single writer; no two callbacks for the same room ever run
// concurrently.
func (s *Session) Run(ctx context.Context) {
	s.logger.Info().Msg("room session started")
	for {
		select {
		case <-ctx.Done():
			s.teardown()
			return
		case cmd := <-s.inbox:
			s.handleCommand(cmd)
		case ev := <-s.timerCh:
			s.handleTimerEvent(ev)
		}
	}
}

// teardown releases the timer goroutines on external cancellation. Terminal
// game-over paths have already done this.
func (s *Session) teardown() {
	s.turnTimer.Halt()
	s.combatTimer.Halt()
	s.logger.Info().Msg("room session stopped")
}

// Join adds a player to the roster while the session is still waiting.
func (s *Session) Join(ctx context.Context, p *models.Player) error {
	return s.Do(ctx, Command{join: p})
}

// Do submits a command and waits for the handling result.
func (s *Session) Do(ctx context.Context, cmd Command) error {
	reply := make(chan error, 1)
	cmd.Reply = reply
	select {
	case s.inbox <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send submits a command without waiting; rejections surface only as error
// events to the sender.
func (s *Session) Send(ctx context.Context, cmd Command) error {
	select {
	case s.inbox <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) handleCommand(cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.dispatch(cmd)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("player_id", cmd.PlayerID).
			Str("command", string(cmd.Type)).
			Msg("command rejected")
		s.broadcaster.ToPlayer(s.roomID, cmd.PlayerID, events.New(s.roomID, events.TypeError, events.ErrorPayload{
			Code:    code(err),
			Message: err.Error(),
		}))
	}
	if cmd.Reply != nil {
		cmd.Reply <- err
	}
}

func (s *Session) dispatch(cmd Command) error {
	if cmd.join != nil {
		return s.handleJoin(cmd.join)
	}

	p := s.playerByID(cmd.PlayerID)
	if p == nil {
		return ErrUnknownPlayer
	}

	switch cmd.Type {
	case CmdStartGame:
		return s.handleStartGame(p)
	case CmdEndTurn:
		return s.handleEndTurn(p)
	case CmdMoveTo:
		return s.handleMoveTo(p, cmd.TileIndex)
	case CmdToggleDoor:
		return s.handleToggleDoor(p, cmd.TileIndex)
	case CmdInitiateCombat:
		return s.handleInitiateCombat(p, cmd.TargetID)
	case CmdAttack:
		return s.handleAttack(p)
	case CmdAttemptEscape:
		return s.handleAttemptEscape(p)
	case CmdAbandon:
		return s.handleAbandon(p)
	default:
		return ErrInvalidStateTransition
	}
}

func (s *Session) handleTimerEvent(ev timerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.kind {
	case turnExpired:
		// A command may have ended the turn while this event was queued;
		// the phase filter alone cannot tell, since the next turn re-enters
		// the same phase. The epoch pins the expiry to the countdown it
		// came from.
		if ev.epoch != s.turnTimerEpoch {
			return
		}
		if s.phase != PhaseTurnMove && s.phase != PhaseTurnAction {
			return
		}
		s.broadcaster.ToRoom(s.roomID, events.New(s.roomID, events.TypeEndTurnTimer, nil))
		s.advanceTurn()
	case combatRoundOver:
		if ev.epoch != s.combatTimerEpoch {
			return
		}
		if s.phase != PhaseCombat || s.combat == nil {
			return
		}
		// Stop-then-decide: reset before resolving so a racing attack
		// command cannot trigger a second round advance.
		s.combatTimer.Reset()
		s.broadcaster.ToRoom(s.roomID, events.New(s.roomID, events.TypeEndCombatTimer, nil))
		actor := s.playerByID(s.combat.ActorID())
		if actor == nil {
			return
		}
		s.resolveAttack(actor)
	}
}

// ----- lobby -----

func (s *Session) handleJoin(p *models.Player) error {
	if s.phase != PhaseWaiting {
		return ErrInvalidStateTransition
	}
	s.players = append(s.players, p)
	s.logger.Info().Str("player_id", p.ID).Str("name", p.Name).Msg("player joined")
	return nil
}

func (s *Session) handleStartGame(p *models.Player) error {
	if s.phase != PhaseWaiting {
		return ErrInvalidStateTransition
	}
	if !p.IsAdmin {
		return ErrNotAdmin
	}
	if s.inGameCount() < 2 {
		return ErrNotEnoughPlayers
	}

	spawns := s.gameMap.SpawnPoints()
	if len(spawns) < len(s.players) {
		return ErrNoSpawn
	}

	// Turn order is decided by speed, fastest first; roster order breaks
	// ties.
	s.sortBySpeed()
	order := make([]string, 0, len(s.players))
	for i, pl := range s.players {
		pl.Position = spawns[i]
		pl.Stats.RecordTile(pl.Position)
		s.tracker.RecordTileVisited(pl.Position)
		order = append(order, pl.ID)
	}

	s.tracker.Start()
	s.broadcaster.ToRoom(s.roomID, events.New(s.roomID, events.TypeGameStarted, events.GameStartedPayload{
		TurnOrder:   order,
		TurnSeconds: s.cfg.TurnSeconds,
	}))
	s.logger.Info().Int("players", len(s.players)).Msg("game started")

	s.turnIndex = -1
	s.advanceTurn()
	return nil
}

// ----- turn flow -----

func (s *Session) beginTurn(idx int) {
	s.turnIndex = idx
	s.turnNumber++
	p := s.players[idx]
	p.IsActive = true
	s.movementLeft = p.Speed.Current
	s.actionsLeft = 1
	s.phase = PhaseTurnMove
	s.tracker.RecordTurnStarted()

	s.broadcaster.ToRoom(s.roomID, events.New(s.roomID, events.TypeTurnStarted, events.TurnStartedPayload{
		PlayerID:     p.ID,
		TurnNumber:   s.turnNumber,
		MovementLeft: s.movementLeft,
		ActionsLeft:  s.actionsLeft,
	}))
	s.turnTimerEpoch = s.turnTimer.Start(s.cfg.TurnSeconds)
}

// advanceTurn hands the turn to the next non-abandoned player, wrapping
// after the last. With one player left standing the game ends instead.
func (s *Session) advanceTurn() {
	if cur := s.activePlayer(); cur != nil {
		cur.IsActive = false
	}

	if s.inGameCount() <= 1 {
		s.endGame(s.lastInGameID())
		return
	}

	n := len(s.players)
	for i := 1; i <= n; i++ {
		idx := (s.turnIndex + i) % n
		if s.players[idx].InGame() {
			s.beginTurn(idx)
			return
		}
	}
	// No eligible player at all; nothing to hand the turn to.
	s.endGame("")
}

func (s *Session) handleEndTurn(p *models.Player) error {
	if s.phase != PhaseTurnMove && s.phase != PhaseTurnAction {
		return ErrInvalidStateTransition
	}
	if !s.isActive(p) {
		return ErrNotYourTurn
	}
	s.turnTimer.Stop()
	s.advanceTurn()
	return nil
}

func (s *Session) handleMoveTo(p *models.Player, tile int) error {
	if s.phase != PhaseTurnMove {
		return ErrInvalidStateTransition
	}
	if !s.isActive(p) {
		return ErrNotYourTurn
	}
	if s.movementLeft <= 0 {
		return ErrNoMovementLeft
	}
	if !s.gameMap.Adjacent(p.Position, tile) {
		return ErrNotAdjacent
	}
	if !s.gameMap.Walkable(tile) {
		return ErrTileBlocked
	}
	if s.playerAt(tile) != nil {
		return ErrTileOccupied
	}

	from := p.Position
	p.Position = tile
	s.movementLeft--
	p.Stats.RecordTile(tile)
	s.tracker.RecordTileVisited(tile)

	s.broadcaster.ToRoom(s.roomID, events.New(s.roomID, events.TypePlayerMoved, events.PlayerMovedPayload{
		PlayerID:     p.ID,
		From:         from,
		To:           tile,
		MovementLeft: s.movementLeft,
	}))

	s.pickUpItem(p, tile)

	if s.movementLeft == 0 {
		s.phase = PhaseTurnAction
	}
	return nil
}

func (s *Session) pickUpItem(p *models.Player, tile int) {
	item := s.gameMap.Tiles[tile].Item
	if item == "" {
		return
	}
	s.gameMap.Tiles[tile].Item = ""
	p.Inventory = append(p.Inventory, item)
	p.Stats.RecordItem(item)
	if item == models.ItemFlag {
		s.tracker.RecordFlagHolder(p.ID)
	}
	s.broadcaster.ToRoom(s.roomID, events.New(s.roomID, events.TypeItemPicked, events.ItemPickedPayload{
		PlayerID:  p.ID,
		Item:      item,
		TileIndex: tile,
	}))
}

func (s *Session) handleToggleDoor(p *models.Player, tile int) error {
	if s.phase != PhaseTurnMove && s.phase != PhaseTurnAction {
		return ErrInvalidStateTransition
	}
	if !s.isActive(p) {
		return ErrNotYourTurn
	}
	if s.actionsLeft <= 0 {
		return ErrNoActionsLeft
	}
	if tile < 0 || tile >= s.gameMap.TileCount() || s.gameMap.Tiles[tile].Terrain != models.TerrainDoor {
		return ErrNotADoor
	}
	if !s.gameMap.Adjacent(p.Position, tile) {
		return ErrNotAdjacent
	}
	if s.playerAt(tile) != nil {
		return ErrTileOccupied
	}

	s.actionsLeft--
	t := &s.gameMap.Tiles[tile]
	if t.Door == models.DoorOpen {
		t.Door = models.DoorClosed
	} else {
		t.Door = models.DoorOpen
	}
	s.tracker.RecordDoorUsed(tile)

	s.broadcaster.ToRoom(s.roomID, events.New(s.roomID, events.TypeDoorToggled, events.DoorToggledPayload{
		TileIndex: tile,
		State:     string(t.Door),
	}))
	return nil
}

// ----- combat -----

func (s *Session) handleInitiateCombat(p *models.Player, targetID string) error {
	if s.phase != PhaseTurnMove && s.phase != PhaseTurnAction {
		return ErrInvalidStateTransition
	}
	if !s.isActive(p) {
		return ErrNotYourTurn
	}
	if s.actionsLeft <= 0 {
		return ErrNoActionsLeft
	}
	target := s.playerByID(targetID)
	if target == nil || !target.InGame() || target.ID == p.ID {
		return ErrUnknownTarget
	}
	if !s.gameMap.Adjacent(p.Position, target.Position) {
		return ErrNotAdjacent
	}

	s.actionsLeft--
	// Suspend, not destroy: remaining time is preserved on the timer for
	// when the turn resumes.
	s.turnTimer.Stop()

	s.combat = newCombat(p.ID, target.ID, s.cfg.EscapeAttempts)
	s.phase = PhaseCombat
	p.Stats.Combats++
	target.Stats.Combats++

	s.broadcaster.ToRoom(s.roomID, events.New(s.roomID, events.TypeCombatStarted, events.CombatStartedPayload{
		AttackerID: p.ID,
		DefenderID: target.ID,
	}))
	s.logger.Info().
		Str("attacker_id", p.ID).
		Str("defender_id", target.ID).
		Msg("combat started")

	s.combatTimerEpoch = s.combatTimer.Start(true)
	return nil
}

func (s *Session) handleAttack(p *models.Player) error {
	if s.phase != PhaseCombat || s.combat == nil {
		return ErrNotInCombat
	}
	if !s.combat.Involves(p.ID) {
		return ErrInvalidStateTransition
	}
	if s.combat.ActorID() != p.ID {
		return ErrNotYourRound
	}
	// Stop-then-decide: the round is over the moment the attack lands,
	// before any outcome is applied.
	s.combatTimer.Reset()
	s.resolveAttack(p)
	return nil
}

func (s *Session) handleAttemptEscape(p *models.Player) error {
	if s.phase != PhaseCombat || s.combat == nil {
		return ErrNotInCombat
	}
	if p.ID != s.combat.DefenderID {
		return ErrInvalidStateTransition
	}
	if s.combat.ActorID() != p.ID {
		return ErrNotYourRound
	}
	if !s.combat.EscapeAllowed || s.combat.EscapesLeft <= 0 {
		return ErrEscapeNotAllowed
	}

	s.combatTimer.Reset()
	s.combat.EscapesLeft--
	success := s.rng.Intn(100) < s.cfg.EscapeChancePercent

	s.broadcaster.ToRoom(s.roomID, events.New(s.roomID, events.TypeEscapeResult, events.EscapeResultPayload{
		PlayerID:    p.ID,
		Success:     success,
		EscapesLeft: s.combat.EscapesLeft,
	}))

	if success {
		p.Stats.Escapes++
		s.finishCombat("escape", "", "")
		s.resumeTurn()
		return nil
	}

	// A failed attempt closes the escape window; the remaining rounds run
	// on the shorter duration.
	s.combat.closeEscapeWindow()
	s.combat.advance()
	s.combatTimerEpoch = s.combatTimer.Start(false)
	return nil
}

// resolveAttack settles one exchange. The combat timer must already be
// reset; this runs from both the command path and the expiry path.
func (s *Session) resolveAttack(actor *models.Player) {
	defender := s.playerByID(s.combat.OpponentOf(actor.ID))
	if defender == nil {
		return
	}

	attackRoll := actor.Attack.Current + s.roll(actor.AttackDie)
	defenseRoll := defender.Defense.Current + s.roll(defender.DefenseDie)
	hit := attackRoll > defenseRoll
	if hit {
		defender.Health.Current--
		actor.Stats.HealthInflicted++
		defender.Stats.HealthLost++
	}

	s.combat.advance()
	s.broadcaster.ToRoom(s.roomID, events.New(s.roomID, events.TypeAttackResult, events.AttackResultPayload{
		AttackerID:     actor.ID,
		DefenderID:     defender.ID,
		AttackRoll:     attackRoll,
		DefenseRoll:    defenseRoll,
		Hit:            hit,
		DefenderHealth: defender.Health.Current,
		FightTurns:     s.combat.FightTurns,
	}))

	if defender.Health.Current <= 0 {
		s.concludeCombat(actor, defender, "elimination")
		return
	}

	// Any exchange closes the escape window for the rest of the encounter.
	s.combat.closeEscapeWindow()
	s.combatTimerEpoch = s.combatTimer.Start(false)
}

// concludeCombat settles a decisive end: elimination or abandon.
func (s *Session) concludeCombat(winner, loser *models.Player, reason string) {
	winner.Stats.Wins++
	loser.Stats.Losses++

	activeID := ""
	if cur := s.activePlayer(); cur != nil {
		activeID = cur.ID
	}

	s.finishCombat(reason, winner.ID, loser.ID)
	if reason == "elimination" {
		s.respawn(loser)
	}

	if winner.Stats.Wins >= s.cfg.WinsToVictory {
		s.endGame(winner.ID)
		return
	}
	active := s.playerByID(activeID)
	if active == nil || !active.InGame() || loser.ID == activeID {
		s.advanceTurn()
		return
	}
	s.resumeTurn()
}

// finishCombat destroys the sub-session: both combatants regenerate, the
// encounter is announced, and the combat pointer clears.
func (s *Session) finishCombat(reason, winnerID, loserID string) {
	attacker := s.playerByID(s.combat.AttackerID)
	defender := s.playerByID(s.combat.DefenderID)
	if attacker != nil {
		attacker.Regenerate()
	}
	if defender != nil {
		defender.Regenerate()
	}
	s.combat = nil

	s.broadcaster.ToRoom(s.roomID, events.New(s.roomID, events.TypeCombatEnded, events.CombatEndedPayload{
		WinnerID: winnerID,
		LoserID:  loserID,
		Reason:   reason,
	}))
	s.logger.Info().
		Str("winner_id", winnerID).
		Str("loser_id", loserID).
		Str("reason", reason).
		Msg("combat ended")
}

// resumeTurn returns to the suspended turn of the active player with the
// remaining time restored.
func (s *Session) resumeTurn() {
	if s.movementLeft > 0 {
		s.phase = PhaseTurnMove
	} else {
		s.phase = PhaseTurnAction
	}
	s.turnTimerEpoch = s.turnTimer.Resume()
}

// respawn puts an eliminated player back on a free spawn point.
func (s *Session) respawn(p *models.Player) {
	for _, idx := range s.gameMap.SpawnPoints() {
		if s.playerAt(idx) == nil {
			p.Position = idx
			return
		}
	}
}

// ----- abandon / game over -----

func (s *Session) handleAbandon(p *models.Player) error {
	if p.HasAbandoned {
		return nil
	}
	p.HasAbandoned = true
	wasActive := p.IsActive
	p.IsActive = false

	s.broadcaster.ToRoom(s.roomID, events.New(s.roomID, events.TypePlayerAbandoned, events.PlayerAbandonedPayload{
		PlayerID: p.ID,
	}))
	s.logger.Info().Str("player_id", p.ID).Msg("player abandoned")

	switch s.phase {
	case PhaseWaiting, PhaseGameOver:
		return nil
	case PhaseCombat:
		if s.combat != nil && s.combat.Involves(p.ID) {
			s.combatTimer.Reset()
			if winner := s.playerByID(s.combat.OpponentOf(p.ID)); winner != nil {
				s.concludeCombat(winner, p, "abandon")
			}
		}
	default:
		if wasActive {
			// The active player leaving ends the turn as if the timer
			// expired.
			s.turnTimer.Stop()
			s.advanceTurn()
		}
	}

	if s.phase != PhaseGameOver && s.inGameCount() <= 1 {
		s.haltTimers()
		s.endGame(s.lastInGameID())
	}
	return nil
}

// endGame is the single terminal path: both timers and the stats
// accumulator stop synchronously before the final broadcast.
func (s *Session) endGame(winnerID string) {
	s.haltTimers()
	report := s.tracker.ComputeFinal()
	s.phase = PhaseGameOver

	s.broadcaster.ToRoom(s.roomID, events.New(s.roomID, events.TypeGameOver, events.GameOverPayload{
		WinnerID: winnerID,
		Report:   report,
	}))
	s.logger.Info().
		Str("winner_id", winnerID).
		Int("turns", report.NbTurns).
		Int("match_length", report.MatchLength).
		Msg("game over")

	if s.onGameOver != nil {
		s.onGameOver(s.roomID)
	}
}

func (s *Session) haltTimers() {
	s.turnTimer.Halt()
	s.combatTimer.Halt()
}

// ----- helpers -----

func (s *Session) roll(die int) int {
	if die <= 0 {
		return 0
	}
	return s.rng.Intn(die) + 1
}

func (s *Session) playerByID(id string) *models.Player {
	for _, p := range s.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Session) playerAt(tile int) *models.Player {
	for _, p := range s.players {
		if p.InGame() && p.Position == tile {
			return p
		}
	}
	return nil
}

func (s *Session) activePlayer() *models.Player {
	if s.turnIndex < 0 || s.turnIndex >= len(s.players) {
		return nil
	}
	return s.players[s.turnIndex]
}

func (s *Session) isActive(p *models.Player) bool {
	cur := s.activePlayer()
	return cur != nil && cur.ID == p.ID && (s.phase == PhaseTurnMove || s.phase == PhaseTurnAction)
}

func (s *Session) inGameCount() int {
	n := 0
	for _, p := range s.players {
		if p.InGame() {
			n++
		}
	}
	return n
}

func (s *Session) lastInGameID() string {
	for _, p := range s.players {
		if p.InGame() {
			return p.ID
		}
	}
	return ""
}

func (s *Session) sortBySpeed() {
	// Insertion sort keeps roster order between equals.
	for i := 1; i < len(s.players); i++ {
		for j := i; j > 0 && s.players[j].Speed.Current > s.players[j-1].Speed.Current; j-- {
			s.players[j], s.players[j-1] = s.players[j-1], s.players[j]
		}
	}
}

// ----- read-side accessors (loop-external observers and tests) -----

// Phase returns the current state machine phase.
func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// ActivePlayerID returns the id of the player whose turn it is, empty when
// no turn is in progress.
func (s *Session) ActivePlayerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.activePlayer(); p != nil && s.phase != PhaseWaiting && s.phase != PhaseGameOver {
		return p.ID
	}
	return ""
}

// MovementLeft returns the active player's remaining movement budget.
func (s *Session) MovementLeft() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.movementLeft
}

// ActionsLeft returns the active player's remaining action points.
func (s *Session) ActionsLeft() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actionsLeft
}

// TimersRunning reports the run state of (turn timer, combat timer). At most
// one may ever be true.
func (s *Session) TimersRunning() (bool, bool) {
	return s.turnTimer.Running(), s.combatTimer.Running()
}

// InCombat reports whether a combat sub-session is live.
func (s *Session) InCombat() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.combat != nil
}
