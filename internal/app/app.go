package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hance08/bolso/internal/config"
	"github.com/hance08/bolso/internal/service"
	"github.com/hance08/bolso/internal/store"
)

type App struct {
	Service *service.Service
	Store   store.Repository
	Config  *config.Config
	Logger  *log.Logger
}

// NewApp opens the database, wires the services and starts the balance
// workers. The returned cleanup stops the workers before closing the store.
func NewApp(ctx context.Context, cfg *config.Config, migrationFS fs.FS, logger *log.Logger) (*App, func(), error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		appDir, err := AppDataDir()
		if err != nil {
			return nil, nil, err
		}
		dbPath = filepath.Join(appDir, "bolso.db")
	}

	dbStore, err := store.NewStore(dbPath, migrationFS, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	svc := service.NewService(dbStore, dbStore.Changes(), cfg, logger)
	if err := svc.Balance.Start(ctx); err != nil {
		dbStore.Close()
		return nil, nil, fmt.Errorf("failed to start balance workers: %w", err)
	}

	cleanup := func() {
		svc.Balance.Close()
		if err := dbStore.Close(); err != nil {
			logger.Error("error closing database", "err", err)
		}
	}

	return &App{
		Service: svc,
		Store:   dbStore,
		Config:  cfg,
		Logger:  logger,
	}, cleanup, nil
}

// AppDataDir is where bolso keeps its config file and default database.
func AppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".bolso"), nil
	}

	return filepath.Join(configDir, "bolso"), nil
}
