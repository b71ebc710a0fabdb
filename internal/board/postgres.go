package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/skirmish/internal/models"
)

// PostgresRepository reads game-map definitions written by the map editor.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects a repository to the maps database.
func NewPostgresRepository(ctx context.Context, dsn string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping maps database: %w", err)
	}
	return &PostgresRepository{pool: pool}, nil
}

// GetMap loads one map definition by id.
func (r *PostgresRepository) GetMap(ctx context.Context, id string) (*models.GameMap, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, size, mode, tiles FROM game_maps WHERE id = $1`, id)
	m, err := scanMap(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMapNotFound
		}
		return nil, fmt.Errorf("get map %s: %w", id, err)
	}
	return m, nil
}

// ListMaps loads every visible map definition.
func (r *PostgresRepository) ListMaps(ctx context.Context) ([]*models.GameMap, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, size, mode, tiles FROM game_maps ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}
	defer rows.Close()

	var maps []*models.GameMap
	for rows.Next() {
		m, err := scanMap(rows)
		if err != nil {
			return nil, fmt.Errorf("scan map: %w", err)
		}
		maps = append(maps, m)
	}
	return maps, rows.Err()
}

// Close releases the connection pool.
func (r *PostgresRepository) Close() {
	r.pool.Close()
}

func scanMap(row pgx.Row) (*models.GameMap, error) {
	var m models.GameMap
	var tiles []byte
	if err := row.Scan(&m.ID, &m.Name, &m.Size, &m.Mode, &tiles); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tiles, &m.Tiles); err != nil {
		return nil, fmt.Errorf("decode tiles: %w", err)
	}
	return &m, nil
}
