package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/johnwards/poiseed/internal/catalog"
	"github.com/johnwards/poiseed/internal/config"
	"github.com/johnwards/poiseed/internal/database"
	"github.com/johnwards/poiseed/internal/seed"
)

func main() {
	console := seed.NewConsole(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("fatal error", "error", err)
		console.Fatal(err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, console); err != nil {
		slog.Error("fatal error", "error", err)
		console.Fatal(err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, console *seed.Console) error {
	console.Start()

	dialect, err := database.DialectFor(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	slog.Debug("connecting", "dialect", dialect, "dsn", database.RedactDSN(cfg.DatabaseURL))

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	db, err := database.Open(connectCtx, cfg.DatabaseURL, database.Options{CreateIfMissing: cfg.Migrate})
	cancel()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	console.Connected()

	if cfg.Migrate {
		if err := database.Migrate(ctx, db, dialect); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	records, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	result, err := seed.Import(ctx, db, dialect, records, console)
	if err != nil {
		return err
	}
	console.Summary(result)

	return nil
}
