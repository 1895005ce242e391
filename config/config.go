package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Store backends the embedding application can run with.
const (
	StorePostgres = "postgres"
	StoreBolt     = "bolt"
	StoreNone     = ""
)

type Config struct {
	AppPort        int    `yaml:"app_port"`
	WikimediaToken string `yaml:"wikimedia_token"`

	StoreBackend   string `yaml:"store_backend"`
	DatabaseURL    string `yaml:"database_url"`
	MigrationsPath string `yaml:"migrations_path"`
	BoltPath       string `yaml:"bolt_path"`
}

// Load reads configuration from an optional YAML file pointed at by
// CONFIG_PATH, with environment variables taking precedence over file
// values.
func Load() (*Config, error) {
	cfg := &Config{
		AppPort:  8080,
		BoltPath: "data/wikiseek.db",
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if v := os.Getenv("APP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid APP_PORT: %w", err)
		}
		cfg.AppPort = port
	}
	if v := os.Getenv("WIKIMEDIA_TOKEN"); v != "" {
		cfg.WikimediaToken = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		cfg.StoreBackend = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("MIGRATIONS_PATH"); v != "" {
		cfg.MigrationsPath = v
	}
	if v := os.Getenv("BOLT_PATH"); v != "" {
		cfg.BoltPath = v
	}

	switch cfg.StoreBackend {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("store backend postgres requires DATABASE_URL")
		}
	case StoreBolt, StoreNone:
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	return cfg, nil
}
