package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/xvierd/focus-cli/internal/adapters/notification"
	"github.com/xvierd/focus-cli/internal/adapters/storage"
	"github.com/xvierd/focus-cli/internal/config"
	"github.com/xvierd/focus-cli/internal/logging"
	"github.com/xvierd/focus-cli/internal/ports"
	"github.com/xvierd/focus-cli/internal/preset"
	"github.com/xvierd/focus-cli/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	storage  ports.Storage
	focus    *services.FocusService
	notifier *notification.Notifier
	config   *config.Config
	logger   zerolog.Logger
	presets  []preset.Preset

	// driver is the storage driver in use after --storage is applied.
	driver string
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	var err error
	app.config, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
	}

	app.logger = logging.New(app.config.Logging)
	if err != nil {
		app.logger.Warn().Err(err).Msg("using default configuration")
	}

	app.notifier = notification.New(&app.config.Notifications)

	app.presets, err = preset.FromConfig(app.config.Presets)
	if err != nil {
		app.logger.Warn().Err(err).Msg("invalid presets in config, using defaults")
		app.presets = preset.Defaults()
	}

	driver := app.config.Storage.Driver
	if storageDriver != "" {
		driver = storageDriver
	}
	app.driver = driver

	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}

	if driver == storage.DriverSQLite {
		if err := os.MkdirAll(getDir(dbPath), 0750); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	app.storage, err = storage.Open(driver, dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.focus = services.NewFocusService(
		app.config.FocusDuration(),
		services.WithStorage(app.storage),
		services.WithNotifier(app.notifier),
		services.WithLogger(app.logger),
	)

	app.logger.Debug().
		Str("driver", driver).
		Dur("duration", app.config.FocusDuration()).
		Msg("services initialized")

	return nil
}

// storageHint tells the user how to keep sessions when the archive lives
// only as long as the process.
func storageHint(driver string) string {
	if driver == storage.DriverSQLite {
		return ""
	}
	return "Sessions are kept in memory for this run only. Run with --storage sqlite to keep them between runs."
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.storage != nil {
		return app.storage.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
