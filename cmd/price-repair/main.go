package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sandeshlamsal/eventpasal/internal/adapters/postgres"
	"github.com/sandeshlamsal/eventpasal/internal/config"
	"github.com/sandeshlamsal/eventpasal/internal/observability"
	"github.com/sandeshlamsal/eventpasal/internal/service"
)

// One-shot pass that clamps legacy out-of-band ticket prices. Safe to rerun.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := observability.NewLogger()

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	repo := postgres.NewRepository(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repaired, err := service.NewRepairService(repo, logger).RepairPrices(ctx)
	if err != nil {
		log.Fatalf("price repair failed: %v", err)
	}
	logger.WithField("repaired", repaired).Info("price repair finished")
}
