// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prombirzha/marketplace/internal/config"
	"github.com/prombirzha/marketplace/internal/core"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "marketplace",
	Short:         "B2B manufacturing marketplace API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", "config.yaml", "path to config file",
	)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// boot loads config and installs the process logger. Every command starts
// here.
func boot() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	return cfg, logger, nil
}

func bootDB(ctx context.Context) (*config.Config, *slog.Logger, *core.Database, error) {
	cfg, logger, err := boot()
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, logger, db, nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
