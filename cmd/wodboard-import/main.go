package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/claude/wodboard/internal/config"
	"github.com/claude/wodboard/internal/storage"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "wodboard-import",
	Short:         "Import WOD scores from CSV exports and workouts from TOML catalogs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorText("error:"), err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openDB loads config, applies migrations and connects.
func openDB(ctx context.Context, log *slog.Logger) (*config.Config, *storage.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	dsn := cfg.Database.DSN()
	version, err := storage.RunMigrations(dsn)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("migrations applied", "version", version)

	db, err := storage.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting database: %w", err)
	}
	log.Debug("database connected")
	return cfg, db, nil
}
