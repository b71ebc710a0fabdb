package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/skirmish/internal/board"
	"github.com/mcdev12/skirmish/internal/dbconfig"
	"github.com/mcdev12/skirmish/internal/models"
)

// Seeds the game_maps table from a JSON snapshot. With no snapshot argument
// it seeds the built-in development map, so a fresh database can host rooms
// immediately.
func main() {
	var maps []*models.GameMap
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
			os.Exit(1)
		}
		if err := json.Unmarshal(data, &maps); err != nil {
			fmt.Fprintf(os.Stderr, "unmarshal JSON: %v\n", err)
			os.Exit(1)
		}
	} else {
		maps = []*models.GameMap{board.DefaultMap("default", 10)}
	}

	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(context.Background(), cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var (
		total    = len(maps)
		inserted int
		skipped  int
		errs     int
	)

	for _, m := range maps {
		tiles, err := json.Marshal(m.Tiles)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error encoding tiles for map %s: %v\n", m.ID, err)
			errs++
			continue
		}
		cmdTag, err := pool.Exec(context.Background(), `
            INSERT INTO game_maps (id, name, size, mode, tiles)
            VALUES ($1,$2,$3,$4,$5)
            ON CONFLICT (id) DO NOTHING
        `, m.ID, m.Name, m.Size, string(m.Mode), tiles)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting map %s: %v\n", m.ID, err)
			errs++
			continue
		}
		if cmdTag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}

	fmt.Printf(
		"Maps seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		total, inserted, skipped, errs,
	)
}
