package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/intake"
	"github.com/Veraticus/ledgerlens/internal/tui"
	"github.com/Veraticus/ledgerlens/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func uiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive terminal UI.

Tabs: 1 Home, 2 Inventory, 3 Add Item, 4 Insurance, 5 Settings.
Photos are attached from a file (ctrl+p) or from the configured snapshot
camera (ctrl+k), and appraised automatically when online.`,
		RunE: runUI,
	}

	cmd.Flags().String("theme", "", "color theme (default, catppuccin-mocha)")
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Logs would corrupt the alternate screen.
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	logger, err := common.SetupLogger(logFile, viper.GetString("logging.level"), viper.GetString("logging.format"))
	if err != nil {
		return err
	}
	defer func() { _ = setupLogging() }()

	store, cleanup, err := openLedger(ctx, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	status, stop := newNetworkStatus(ctx, logger)
	defer stop()

	// The TUI still works without a key; appraisal just stays unavailable.
	var appraiser intake.Appraiser
	if a, err := createAppraiser(logger); err != nil {
		logger.Warn("AI appraisal disabled", "error", err)
	} else {
		defer a.Close()
		appraiser = a
	}
	session := intake.NewSession(store, appraiser, status, logger)

	opts := []tui.Option{
		tui.WithLedger(store),
		tui.WithSession(session),
		tui.WithNetwork(status),
		tui.WithReportDir(reportDir()),
		tui.WithTheme(themes.GetTheme(viper.GetString("ui.theme"))),
		tui.WithLogger(logger),
	}
	if camera := newCamera(); camera != nil {
		opts = append(opts, tui.WithCamera(camera))
	}

	slog.Info("starting TUI", "items", store.Len(), "online", status.Online())
	if err := tui.Run(ctx, opts...); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
