// Package cli provides common CLI initialization utilities for cmd/zenspend.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"zenspend/internal/app"
	"zenspend/internal/backend"
	"zenspend/internal/config"
	"zenspend/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// SetupLogger builds the logger described by cfg and makes it the default.
// Unparseable settings fall back to info/text.
func SetupLogger(cfg *config.Config) *log.Logger {
	lc := log.DefaultConfig()
	if cfg != nil {
		if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
			lc.Level = lvl
		}
		if f, err := log.ParseFormat(cfg.LogFormat); err == nil {
			lc.Format = f
		}
	}
	lc.Component = log.ComponentCLI
	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenTracker creates the configured store and loads a tracker over it,
// logging through the logger carried by ctx. The returned cleanup releases
// the store.
func OpenTracker(ctx context.Context, cfg *config.Config, opts ...app.Option) (*app.Tracker, backend.CleanupFunc, error) {
	logger := log.FromContext(ctx)
	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bc)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]app.Option{
		app.WithLogger(logger),
		app.WithViewCacheSize(cfg.ViewCacheSize),
	}, opts...)
	tracker, err := app.New(ctx, res.Store, opts...)
	if err != nil {
		res.Close()
		return nil, nil, err
	}
	return tracker, res.Close, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
