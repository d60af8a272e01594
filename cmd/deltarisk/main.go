// Command deltarisk runs the national multi-hazard risk projection.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/talgya/deltarisk/internal/api"
	"github.com/talgya/deltarisk/internal/config"
	"github.com/talgya/deltarisk/internal/persistence"
	"github.com/talgya/deltarisk/internal/region"
	"github.com/talgya/deltarisk/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config (defaults apply when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Logging.Level),
	}))
	slog.SetDefault(logger)

	slog.Info("deltarisk — multi-hazard risk projection",
		"scenarios", cfg.Run.Scenarios,
		"years", cfg.Run.EndYear-cfg.Run.StartYear+1,
		"seed", cfg.Run.Seed,
	)

	// ── Database ──────────────────────────────────────────────────────
	db, err := persistence.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.Database.Path)

	// ── Regions (deterministic from seed) ─────────────────────────────
	provider := region.NewSyntheticProvider(int64(cfg.Run.Seed))
	slog.Info("regions loaded", "count", len(provider.Names()))

	// ── Run ───────────────────────────────────────────────────────────
	runner, err := sim.NewRunner(cfg, provider, logger)
	if err != nil {
		slog.Error("invalid run configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := runner.Run(ctx)
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}

	runID, err := db.SaveRun(result, cfg)
	if err != nil {
		slog.Error("failed to archive run", "error", err)
		os.Exit(1)
	}

	// ── Summary ───────────────────────────────────────────────────────
	for _, cell := range result.Cells {
		slog.Info("projection",
			"scenario", cell.Scenario,
			"region", cell.Region,
			"deaths", cell.TotalDeaths,
			"displaced", cell.TotalDisplaced,
			"avg_annual_loss_bdt", cell.AverageAnnualLoss,
			"resilience", cell.FinalResilience,
		)
	}
	slog.Info("run complete", "run_id", runID, "cells", len(result.Cells))

	// ── Optional inspection API ───────────────────────────────────────
	if cfg.API.Enabled {
		srv := &api.Server{DB: db, Port: cfg.API.Port}
		srv.Start()
		<-ctx.Done()
		slog.Info("shutting down")
	}
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
