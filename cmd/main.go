package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"wikiseek"
	"wikiseek/api"
	"wikiseek/config"
	"wikiseek/pkg/boltdb"
	"wikiseek/pkg/postgres"
	"wikiseek/repository"
)

func main() {
	ctx := context.Background()

	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Cache store
	// =========
	var store repository.Store
	switch cfg.StoreBackend {
	case config.StorePostgres:
		store, err = postgres.New(ctx, cfg.DatabaseURL, cfg.MigrationsPath, logger)
		if err != nil {
			log.Fatalf("Failed to connect to postgres: %v", err)
		}
	case config.StoreBolt:
		store, err = boltdb.New(cfg.BoltPath, logger)
		if err != nil {
			log.Fatalf("Failed to open bolt store: %v", err)
		}
	case config.StoreNone:
		logger.Warn("no store configured, cache disabled")
	}

	// =========
	// Searcher
	// =========
	searcher := wikiseek.NewSearcher(cfg.WikimediaToken, store, logger)
	if store != nil {
		if err := searcher.SetupStore(ctx); err != nil {
			log.Fatalf("Failed to set up store: %v", err)
		}
		defer store.Close()
	}

	// =========
	// HTTP server
	// =========
	server := api.NewServer(searcher, cfg.AppPort, logger)
	log.Fatal(server.Start())
}
