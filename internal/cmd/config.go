package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/skirmish/internal/dbconfig"
	"github.com/mcdev12/skirmish/internal/session"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Game session.Config `yaml:"game"`
	NATS struct {
		Enabled bool   `yaml:"enabled"`
		URL     string `yaml:"url"`
		Stream  string `yaml:"stream"`
	} `yaml:"nats"`
	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`
}

func defaultConfig() *Config {
	cfg := &Config{Game: session.DefaultConfig()}
	cfg.Server.Port = "8080"
	cfg.NATS.URL = "nats://localhost:4222"
	cfg.NATS.Stream = "ROOM_EVENTS"
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// loadConfig reads the YAML config and applies environment overrides. A
// missing file is not an error; defaults apply.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config.Server.Port = getEnv("PORT", config.Server.Port)
	config.NATS.URL = getEnv("NATS_URL", config.NATS.URL)
	config.Database.DSN = getEnv("DATABASE_DSN", config.Database.DSN)
	if config.Database.DSN == "" && dbconfig.Configured() {
		config.Database.DSN = dbconfig.NewConfigFromEnv().DSN()
	}
	config.Game.TurnSeconds = getEnvAsInt("TURN_SECONDS", config.Game.TurnSeconds)

	return config, nil
}
