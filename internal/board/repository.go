package board

import (
	"context"
	"errors"

	"github.com/mcdev12/skirmish/internal/models"
)

// ErrMapNotFound is returned when no map exists for the requested id.
var ErrMapNotFound = errors.New("map not found")

// Repository is what the room registry needs from map storage. The map
// editor and its store live outside this engine; rooms only read.
type Repository interface {
	GetMap(ctx context.Context, id string) (*models.GameMap, error)
	ListMaps(ctx context.Context) ([]*models.GameMap, error)
}
