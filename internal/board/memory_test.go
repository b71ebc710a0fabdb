package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/skirmish/internal/models"
)

func TestMemoryRepository_GetAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(
		&models.GameMap{ID: "b", Name: "beta"},
		&models.GameMap{ID: "a", Name: "alpha"},
	)

	m, err := repo.GetMap(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "alpha", m.Name)

	_, err = repo.GetMap(ctx, "missing")
	require.ErrorIs(t, err, ErrMapNotFound)

	all, err := repo.ListMaps(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].Name)
	assert.Equal(t, "beta", all[1].Name)
}

func TestDefaultMap_Shape(t *testing.T) {
	m := DefaultMap("dev", 10)

	assert.Equal(t, 100, m.TileCount())
	assert.Equal(t, 2, m.DoorCount())
	assert.Len(t, m.SpawnPoints(), 4)

	// Bordered: corners are walls, spawn corners inside them walkable.
	assert.False(t, m.Walkable(0))
	for _, idx := range m.SpawnPoints() {
		assert.True(t, m.Walkable(idx))
	}

	// The objective sits in the middle.
	mid := (10/2)*10 + 10/2
	assert.Equal(t, models.ItemFlag, m.Tiles[mid].Item)
}
