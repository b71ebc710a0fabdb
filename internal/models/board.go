package models

// Terrain is the ground type of a tile.
type Terrain string

const (
	TerrainFloor Terrain = "floor"
	TerrainWall  Terrain = "wall"
	TerrainWater Terrain = "water"
	TerrainIce   Terrain = "ice"
	TerrainDoor  Terrain = "door"
)

// DoorState is the open/closed state of a door tile.
type DoorState string

const (
	DoorOpen   DoorState = "open"
	DoorClosed DoorState = "closed"
)

// GameMode selects the victory condition of a map.
type GameMode string

const (
	ModeClassic        GameMode = "classic"
	ModeCaptureTheFlag GameMode = "ctf"
)

// ItemFlag is the capture objective tracked by the flag-holders statistic.
const ItemFlag = "flag"

// Tile is one cell of a square map.
type Tile struct {
	Terrain Terrain   `json:"terrain"`
	Door    DoorState `json:"door,omitempty"`
	Item    string    `json:"item,omitempty"`
	Spawn   bool      `json:"spawn,omitempty"`
}

// GameMap is a square board of Size*Size tiles in row-major order.
type GameMap struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Size  int      `json:"size"`
	Mode  GameMode `json:"mode"`
	Tiles []Tile   `json:"tiles"`
}

// TileCount returns the total number of tiles.
func (m *GameMap) TileCount() int {
	return len(m.Tiles)
}

// DoorCount returns the number of door tiles.
func (m *GameMap) DoorCount() int {
	n := 0
	for _, t := range m.Tiles {
		if t.Terrain == TerrainDoor {
			n++
		}
	}
	return n
}

// Walkable reports whether a player may stand on the tile at index.
func (m *GameMap) Walkable(index int) bool {
	if index < 0 || index >= len(m.Tiles) {
		return false
	}
	t := m.Tiles[index]
	if t.Terrain == TerrainWall {
		return false
	}
	if t.Terrain == TerrainDoor && t.Door == DoorClosed {
		return false
	}
	return true
}

// Neighbors returns the orthogonally adjacent tile indices of index.
func (m *GameMap) Neighbors(index int) []int {
	if m.Size == 0 || index < 0 || index >= len(m.Tiles) {
		return nil
	}
	row, col := index/m.Size, index%m.Size
	out := make([]int, 0, 4)
	if row > 0 {
		out = append(out, index-m.Size)
	}
	if row < m.Size-1 {
		out = append(out, index+m.Size)
	}
	if col > 0 {
		out = append(out, index-1)
	}
	if col < m.Size-1 {
		out = append(out, index+1)
	}
	return out
}

// Adjacent reports whether two tile indices touch orthogonally.
func (m *GameMap) Adjacent(a, b int) bool {
	for _, n := range m.Neighbors(a) {
		if n == b {
			return true
		}
	}
	return false
}

// SpawnPoints returns the indices of spawn tiles, falling back to walkable
// tiles for maps authored without explicit spawns.
func (m *GameMap) SpawnPoints() []int {
	var spawns []int
	for i, t := range m.Tiles {
		if t.Spawn {
			spawns = append(spawns, i)
		}
	}
	if len(spawns) > 0 {
		return spawns
	}
	for i := range m.Tiles {
		if m.Walkable(i) {
			spawns = append(spawns, i)
		}
	}
	return spawns
}
