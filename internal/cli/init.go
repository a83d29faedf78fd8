// Package cli provides common initialization utilities shared by
// cmd/tally and cmd/tally-recurring.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"tally/internal/backend"
	"tally/internal/config"
	"tally/internal/ledger"
	"tally/internal/log"
	"tally/internal/session"
)

// SetupLogger initializes structured logging from the configured level and
// installs it as the process default.
func SetupLogger(level string) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(level),
		Component: log.ComponentCLI,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.New(log.Config{Component: log.ComponentCLI}).
			Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// App bundles everything a command needs: the storage medium, the restored
// ledger and the session manager.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Store   *ledger.Store
	Session *session.Manager
	cleanup backend.CleanupFunc
}

// InitApp constructs the backend from config, opens the ledger and
// restores the session. Exits the process when the storage medium cannot
// be constructed; a damaged snapshot is recovered, not fatal.
func InitApp(ctx context.Context, cfg *config.Config, logger *log.Logger) *App {
	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(ctx, backend.Config{
		Type:          backend.Type(cfg.DataBackend),
		DataDirectory: cfg.DataDirectory,
		SQLiteDBPath:  cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize storage backend",
			log.FieldBackend, cfg.DataBackend, log.FieldError, err)
		os.Exit(1)
	}

	store, loaded := ledger.Open(ctx, result.Store, logger)
	if loaded.Origin == ledger.OriginRecovered {
		logger.Warn("Snapshot was unreadable, starting from defaults",
			log.FieldError, loaded.Err)
	}

	mgr := session.NewManager(ctx, result.Store, logger, ledger.StateKey)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Session: mgr,
		cleanup: result.Cleanup,
	}
}

// Close releases the backend's resources.
func (a *App) Close() {
	if a.cleanup != nil {
		if err := a.cleanup(); err != nil {
			a.Logger.Warn("Backend cleanup failed", log.FieldError, err)
		}
	}
}
