package board

import (
	"context"
	"sort"
	"sync"

	"github.com/mcdev12/skirmish/internal/models"
)

// MemoryRepository serves maps from memory. It backs tests and the
// single-binary development setup where no maps database is configured.
type MemoryRepository struct {
	mu   sync.RWMutex
	maps map[string]*models.GameMap
}

// NewMemoryRepository creates a repository seeded with the given maps.
func NewMemoryRepository(maps ...*models.GameMap) *MemoryRepository {
	r := &MemoryRepository{maps: make(map[string]*models.GameMap)}
	for _, m := range maps {
		r.maps[m.ID] = m
	}
	return r
}

// Put adds or replaces a map.
func (r *MemoryRepository) Put(m *models.GameMap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maps[m.ID] = m
}

// GetMap returns the map with the given id.
func (r *MemoryRepository) GetMap(_ context.Context, id string) (*models.GameMap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.maps[id]
	if !ok {
		return nil, ErrMapNotFound
	}
	return m, nil
}

// ListMaps returns all maps ordered by name.
func (r *MemoryRepository) ListMaps(_ context.Context) ([]*models.GameMap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.GameMap, 0, len(r.maps))
	for _, m := range r.maps {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DefaultMap builds a bordered size x size floor map with four spawn
// corners, a pair of doors and a flag in the middle. Good enough for
// development rooms and tests.
func DefaultMap(id string, size int) *models.GameMap {
	m := &models.GameMap{
		ID:    id,
		Name:  "default",
		Size:  size,
		Mode:  models.ModeCaptureTheFlag,
		Tiles: make([]models.Tile, size*size),
	}
	for i := range m.Tiles {
		row, col := i/size, i%size
		if row == 0 || col == 0 || row == size-1 || col == size-1 {
			m.Tiles[i].Terrain = models.TerrainWall
		} else {
			m.Tiles[i].Terrain = models.TerrainFloor
		}
	}
	corner := func(row, col int) int { return row*size + col }
	for _, idx := range []int{
		corner(1, 1), corner(1, size-2), corner(size-2, 1), corner(size-2, size-2),
	} {
		m.Tiles[idx].Spawn = true
	}
	mid := corner(size/2, size/2)
	m.Tiles[mid].Item = models.ItemFlag
	m.Tiles[corner(size/2, 1)] = models.Tile{Terrain: models.TerrainDoor, Door: models.DoorClosed}
	m.Tiles[corner(1, size/2)] = models.Tile{Terrain: models.TerrainDoor, Door: models.DoorOpen}
	return m
}
