package rooms

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/skirmish/internal/board"
	"github.com/mcdev12/skirmish/internal/models"
	"github.com/mcdev12/skirmish/internal/session"
)

// ErrUnknownRoom is returned for commands referencing a room that does not
// exist (or no longer exists). Such commands are dropped; other rooms are
// never affected.
var ErrUnknownRoom = errors.New("unknown room")

// Manager owns the registry of live rooms. Each room gets its own session
// goroutine; the manager only routes.
type Manager struct {
	cfg         session.Config
	repo        board.Repository
	broadcaster session.Broadcaster
	clock       clockwork.Clock

	mu    sync.RWMutex
	rooms map[string]*room
}

type room struct {
	sess    *session.Session
	cancel  context.CancelFunc
	members int
}

// NewManager creates an empty registry.
func NewManager(cfg session.Config, repo board.Repository, broadcaster session.Broadcaster, clock clockwork.Clock) *Manager {
	return &Manager{
		cfg:         cfg,
		repo:        repo,
		broadcaster: broadcaster,
		clock:       clock,
		rooms:       make(map[string]*room),
	}
}

// CreateRoom starts a session on a copy of the requested map and returns the
// new room id.
func (m *Manager) CreateRoom(ctx context.Context, mapID string) (string, error) {
	gameMap, err := m.repo.GetMap(ctx, mapID)
	if err != nil {
		return "", fmt.Errorf("load map: %w", err)
	}

	roomID := uuid.New().String()
	rng := rand.New(rand.NewSource(m.clock.Now().UnixNano()))
	sess := session.New(roomID, cloneMap(gameMap), m.cfg, m.broadcaster, m.clock, rng)
	sess.SetOnGameOver(m.Remove)

	runCtx, cancel := context.WithCancel(context.Background())
	go sess.Run(runCtx)

	m.mu.Lock()
	m.rooms[roomID] = &room{sess: sess, cancel: cancel}
	m.mu.Unlock()

	log.Info().Str("room_id", roomID).Str("map_id", mapID).Msg("room created")
	return roomID, nil
}

// Join adds a new player to a waiting room. The first player in becomes the
// room admin.
func (m *Manager) Join(ctx context.Context, roomID, name, avatar string) (*models.Player, error) {
	m.mu.Lock()
	r, ok := m.rooms[roomID]
	if !ok {
		m.mu.Unlock()
		return nil, ErrUnknownRoom
	}
	admin := r.members == 0
	r.members++
	m.mu.Unlock()

	p := models.NewPlayer(uuid.New().String(), name, avatar)
	p.IsAdmin = admin
	if err := r.sess.Join(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Dispatch routes a player command into its room loop and returns the
// handling result. Unknown rooms reject immediately.
func (m *Manager) Dispatch(ctx context.Context, roomID string, cmd session.Command) error {
	m.mu.RLock()
	r, ok := m.rooms[roomID]
	m.mu.RUnlock()
	if !ok {
		return ErrUnknownRoom
	}
	return r.sess.Do(ctx, cmd)
}

// Session returns a room's session for read-side access.
func (m *Manager) Session(roomID string) (*session.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, false
	}
	return r.sess, true
}

// Remove drops a room from the registry and stops its loop. Safe to call
// from the session's own game-over hook.
func (m *Manager) Remove(roomID string) {
	m.mu.Lock()
	r, ok := m.rooms[roomID]
	if ok {
		delete(m.rooms, roomID)
	}
	m.mu.Unlock()
	if ok {
		r.cancel()
		log.Info().Str("room_id", roomID).Msg("room removed")
	}
}

// Stop tears every room down.
func (m *Manager) Stop() {
	m.mu.Lock()
	rooms := m.rooms
	m.rooms = make(map[string]*room)
	m.mu.Unlock()
	for id, r := range rooms {
		r.cancel()
		log.Info().Str("room_id", id).Msg("room stopped")
	}
}

// cloneMap copies a map definition so room mutations (doors, picked items)
// never write back into the shared repository copy.
func cloneMap(m *models.GameMap) *models.GameMap {
	out := *m
	out.Tiles = make([]models.Tile, len(m.Tiles))
	copy(out.Tiles, m.Tiles)
	return &out
}
