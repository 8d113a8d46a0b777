// File: cmd/scpsync/app.go
package main

import (
	"io"
	"log/slog"
	"os"

	"scpsync/internal/config"
	"scpsync/internal/service"
	"scpsync/internal/transport/factory"
	"scpsync/pkg/formatter"
)

// appContainer holds all the shared dependencies for the application
// This includes settings, the transport factory, the sync service, output and the logger
type appContainer struct {
	Settings         *config.Settings
	SettingsManager  *config.Manager
	TransportFactory *factory.Factory
	SyncService      *service.SyncService
	Status           *formatter.StatusFormatter
	Logger           *slog.Logger
	LogLevel         *slog.LevelVar
	Stdin            io.Reader
	Stdout           io.Writer
}

// Creates and initializes a new application container
func newApp(logger *slog.Logger, level *slog.LevelVar) (*appContainer, error) {
	settingsManager, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	return newAppWith(settingsManager, logger, level, os.Stdin, os.Stdout)
}

func newAppWith(settingsManager *config.Manager, logger *slog.Logger, level *slog.LevelVar, stdin io.Reader, stdout io.Writer) (*appContainer, error) {
	settings, err := settingsManager.LoadConfig()
	if err != nil {
		return nil, err
	}

	status := formatter.NewStatusFormatter(stdout)
	transportFactory := factory.NewFactory(settings, logger)
	locator := config.NewLocator(settings.ConfigName, logger)
	syncService := service.NewSyncService(locator, transportFactory, status, logger)

	return &appContainer{
		Settings:         settings,
		SettingsManager:  settingsManager,
		TransportFactory: transportFactory,
		SyncService:      syncService,
		Status:           status,
		Logger:           logger,
		LogLevel:         level,
		Stdin:            stdin,
		Stdout:           stdout,
	}, nil
}
