package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func grid(size int) *GameMap {
	tiles := make([]Tile, size*size)
	for i := range tiles {
		tiles[i] = Tile{Terrain: TerrainFloor}
	}
	return &GameMap{ID: "g", Size: size, Tiles: tiles}
}

func TestGameMap_NeighborsStayOnTheBoard(t *testing.T) {
	m := grid(3)

	assert.ElementsMatch(t, []int{1, 3}, m.Neighbors(0))
	assert.ElementsMatch(t, []int{1, 3, 5, 7}, m.Neighbors(4))
	assert.ElementsMatch(t, []int{5, 7}, m.Neighbors(8))
	assert.Nil(t, m.Neighbors(-1))
	assert.Nil(t, m.Neighbors(9))
}

func TestGameMap_AdjacentIsOrthogonalOnly(t *testing.T) {
	m := grid(3)

	assert.True(t, m.Adjacent(4, 1))
	assert.True(t, m.Adjacent(4, 5))
	// Diagonals and self do not count.
	assert.False(t, m.Adjacent(4, 0))
	assert.False(t, m.Adjacent(4, 4))
	// No wrap-around between row ends.
	assert.False(t, m.Adjacent(2, 3))
}

func TestGameMap_Walkable(t *testing.T) {
	m := grid(3)
	m.Tiles[1] = Tile{Terrain: TerrainWall}
	m.Tiles[3] = Tile{Terrain: TerrainDoor, Door: DoorClosed}
	m.Tiles[5] = Tile{Terrain: TerrainDoor, Door: DoorOpen}
	m.Tiles[7] = Tile{Terrain: TerrainWater}

	assert.True(t, m.Walkable(0))
	assert.False(t, m.Walkable(1))
	assert.False(t, m.Walkable(3), "closed doors block")
	assert.True(t, m.Walkable(5), "open doors pass")
	assert.True(t, m.Walkable(7))
	assert.False(t, m.Walkable(-1))
	assert.False(t, m.Walkable(9))
}

func TestGameMap_SpawnPointsFallBackToWalkable(t *testing.T) {
	m := grid(3)
	m.Tiles[0] = Tile{Terrain: TerrainWall}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, m.SpawnPoints())

	m.Tiles[4].Spawn = true
	m.Tiles[8].Spawn = true
	assert.Equal(t, []int{4, 8}, m.SpawnPoints())
}

func TestPlayer_RegenerateRestoresBase(t *testing.T) {
	p := NewPlayer("p1", "alice", "a")
	p.Health.Current = 1
	p.Attack.Current = 2

	p.Regenerate()
	assert.Equal(t, p.Health.Base, p.Health.Current)
	assert.Equal(t, p.Attack.Base, p.Attack.Current)
}

func TestPlayerStats_SetsAreIdempotent(t *testing.T) {
	var s PlayerStats
	s.RecordItem("flag")
	s.RecordItem("flag")
	s.RecordTile(3)
	s.RecordTile(3)
	s.RecordTile(4)

	assert.Equal(t, 1, s.UniqueItems())
	assert.InDelta(t, 20.0, s.VisitedPercent(10), 1e-9)
	assert.Zero(t, s.VisitedPercent(0))
}
