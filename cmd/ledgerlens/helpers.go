package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/ledgerlens/internal/capture"
	"github.com/Veraticus/ledgerlens/internal/config"
	"github.com/Veraticus/ledgerlens/internal/ledger"
	"github.com/Veraticus/ledgerlens/internal/network"
	"github.com/Veraticus/ledgerlens/internal/storage"
	"github.com/spf13/viper"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// openLedger opens the database and loads the ledger. The returned cleanup
// closes the database.
func openLedger(ctx context.Context, logger *slog.Logger) (*ledger.Store, func(), error) {
	db, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}

	store := ledger.New(db, logger)
	if err := store.Load(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return store, cleanup, nil
}

// reportDir is where PDF reports are written by default.
func reportDir() string {
	dir := viper.GetString("report.output_dir")
	if dir == "" {
		dir = "."
	}
	return config.ExpandPath(dir)
}

// newNetworkStatus starts a connectivity monitor, or returns a fixed
// offline status when --offline is set.
func newNetworkStatus(ctx context.Context, logger *slog.Logger) (network.Status, func()) {
	if viper.GetBool("network.offline") {
		return network.Static(false), func() {}
	}

	var opts []network.Option
	if interval := viper.GetDuration("network.probe_interval"); interval > 0 {
		opts = append(opts, network.WithInterval(interval))
	}
	monitor := network.NewMonitor(viper.GetString("network.probe_address"), logger, opts...)
	monitor.Start(ctx)
	return monitor, func() { _ = monitor.Close() }
}

// newCamera builds the snapshot camera from config. It returns nil when
// neither source is configured.
func newCamera() capture.Camera {
	environment := config.ExpandPath(viper.GetString("camera.environment"))
	user := config.ExpandPath(viper.GetString("camera.user"))
	if environment == "" && user == "" {
		return nil
	}
	return capture.NewDirCamera(environment, user)
}

// openLogFile redirects the default logger to the log file while the TUI
// owns the terminal.
func openLogFile() (*os.File, error) {
	path := viper.GetString("logging.file")
	if path == "" {
		path = config.DefaultLogPath
	}
	path = config.ExpandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
