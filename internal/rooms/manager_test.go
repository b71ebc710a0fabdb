package rooms

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/skirmish/internal/board"
	"github.com/mcdev12/skirmish/internal/session"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	repo := board.NewMemoryRepository(board.DefaultMap("default", 10))
	m := NewManager(session.DefaultConfig(), repo, session.NopBroadcaster{}, clockwork.NewRealClock())
	t.Cleanup(m.Stop)
	return m
}

func TestManager_CreateAndJoin(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	roomID, err := m.CreateRoom(ctx, "default")
	require.NoError(t, err)
	require.NotEmpty(t, roomID)

	first, err := m.Join(ctx, roomID, "alice", "a1")
	require.NoError(t, err)
	second, err := m.Join(ctx, roomID, "bob", "a2")
	require.NoError(t, err)

	// The first joiner runs the room.
	assert.True(t, first.IsAdmin)
	assert.False(t, second.IsAdmin)
	assert.NotEqual(t, first.ID, second.ID)

	sess, ok := m.Session(roomID)
	require.True(t, ok)
	assert.Equal(t, session.PhaseWaiting, sess.Phase())
}

func TestManager_UnknownMapRejectsCreate(t *testing.T) {
	m := newTestManager(t)

	_, err := m.CreateRoom(context.Background(), "missing")
	require.ErrorIs(t, err, board.ErrMapNotFound)
}

func TestManager_UnknownRoomIsRejected(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Join(ctx, "nope", "alice", "a1")
	require.ErrorIs(t, err, ErrUnknownRoom)

	err = m.Dispatch(ctx, "nope", session.Command{PlayerID: "p", Type: session.CmdEndTurn})
	require.ErrorIs(t, err, ErrUnknownRoom)

	_, ok := m.Session("nope")
	assert.False(t, ok)
}

func TestManager_RemoveDropsRoom(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	roomID, err := m.CreateRoom(ctx, "default")
	require.NoError(t, err)

	m.Remove(roomID)
	_, ok := m.Session(roomID)
	assert.False(t, ok)

	// Removing twice is safe; commands for the dead room are dropped.
	m.Remove(roomID)
	err = m.Dispatch(ctx, roomID, session.Command{PlayerID: "p", Type: session.CmdEndTurn})
	require.ErrorIs(t, err, ErrUnknownRoom)
}

func TestManager_RoomsGetIndependentMapCopies(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	roomA, err := m.CreateRoom(ctx, "default")
	require.NoError(t, err)
	roomB, err := m.CreateRoom(ctx, "default")
	require.NoError(t, err)

	sessA, ok := m.Session(roomA)
	require.True(t, ok)
	sessB, ok := m.Session(roomB)
	require.True(t, ok)
	assert.NotEqual(t, sessA.RoomID(), sessB.RoomID())
}
