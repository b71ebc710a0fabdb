package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/skirmish/internal/board"
	"github.com/mcdev12/skirmish/internal/events"
	"github.com/mcdev12/skirmish/internal/gateway"
	"github.com/mcdev12/skirmish/internal/rooms"
	"github.com/mcdev12/skirmish/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := setupMapRepository(ctx, cfg)

	// The broadcast boundary: always the websocket hub, plus the JetStream
	// relay when configured. The hub needs the room manager for command
	// dispatch and the manager needs the broadcaster, so the manager gets a
	// pointer to the fan-out and the sinks are appended right after.
	var broadcaster session.MultiBroadcaster

	roomManager := rooms.NewManager(cfg.Game, repo, &broadcaster, clockwork.NewRealClock())
	defer roomManager.Stop()

	connectionManager := gateway.NewConnectionManager(gateway.DefaultConnectionConfig(), roomManager)
	broadcaster = append(broadcaster, connectionManager)

	if cfg.NATS.Enabled {
		relayCfg := events.DefaultRelayConfig()
		relayCfg.URL = cfg.NATS.URL
		relayCfg.StreamName = cfg.NATS.Stream
		relay, err := events.NewRelay(ctx, relayCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect event relay")
		}
		defer relay.Stop()
		broadcaster = append(broadcaster, relay)
	}

	go connectionManager.Start(ctx)

	handler := gateway.NewHandler(roomManager, repo, connectionManager)
	server := setupServer(cfg.Server.Port, handler)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	if err := server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
}

func setupMapRepository(ctx context.Context, cfg *Config) board.Repository {
	if cfg.Database.DSN == "" {
		log.Info().Msg("no maps database configured, using built-in map")
		return board.NewMemoryRepository(board.DefaultMap("default", 10))
	}
	repo, err := board.NewPostgresRepository(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect maps database")
	}
	return repo
}
