package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/blip-cmd/xpense/internal/alert"
	"github.com/blip-cmd/xpense/internal/category"
	"github.com/blip-cmd/xpense/internal/config"
	"github.com/blip-cmd/xpense/internal/coordinator"
	"github.com/blip-cmd/xpense/internal/expenditure"
	xpenseHttp "github.com/blip-cmd/xpense/internal/http"
	accountHandler "github.com/blip-cmd/xpense/internal/http/account"
	alertsHandler "github.com/blip-cmd/xpense/internal/http/alerts"
	categoryHandler "github.com/blip-cmd/xpense/internal/http/category"
	expenditureHandler "github.com/blip-cmd/xpense/internal/http/expenditure"
	"github.com/blip-cmd/xpense/internal/ledger"
	"github.com/blip-cmd/xpense/internal/persistence"
	"github.com/blip-cmd/xpense/internal/persistence/flatfile"
	"github.com/blip-cmd/xpense/internal/persistence/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	threshold, err := cfg.Threshold()
	if err != nil {
		slog.Error("invalid low-balance threshold", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	persister, err := newPersister(ctx, cfg)
	if err != nil {
		slog.Error("failed to set up persistence", "backend", cfg.Persistence.Backend, "error", err)
		os.Exit(1)
	}

	var (
		alerts   = alert.NewCenter(threshold)
		l        = ledger.New(alerts)
		registry = category.NewRegistry()
		store    = expenditure.NewStore(cfg.Ledger.IDPrefix)
		coord    = coordinator.New(l, registry, store, alerts, persister)
	)

	if err := coord.Load(ctx); err != nil {
		slog.Error("failed to load persisted state", "error", err)
		os.Exit(1)
	}

	router := xpenseHttp.New(
		cfg.Auth.Secret,
		expenditureHandler.NewHandler(coord),
		accountHandler.NewHandler(coord),
		categoryHandler.NewHandler(coord),
		alertsHandler.NewHandler(alerts),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "backend", cfg.Persistence.Backend)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newPersister(ctx context.Context, cfg *config.Config) (persistence.Persister, error) {
	switch cfg.Persistence.Backend {
	case "flatfile":
		return flatfile.New(cfg.Persistence.DataDir)
	case "postgres":
		db, err := postgres.Open(cfg.ConnectionString())
		if err != nil {
			return nil, err
		}

		store := postgres.New(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}

		return store, nil
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Persistence.Backend)
	}
}
