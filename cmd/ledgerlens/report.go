package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/ledgerlens/internal/cli"
	"github.com/Veraticus/ledgerlens/internal/config"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/report"
	"github.com/Veraticus/ledgerlens/internal/service"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "report <insurance|real-estate>",
		Short:     "Export a PDF report",
		ValidArgs: []string{"insurance", "real-estate"},
		Long: `Export a PDF report.

  insurance    every item with value, receipt status and coverage summary
  real-estate  fixtures that convey with the home and excluded personal property`,
		Example: `  ledgerlens report insurance
  ledgerlens report real-estate -o ~/Documents/schedule.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := report.ParseKind(args[0])
			if err != nil {
				return err
			}

			store, cleanup, err := openLedger(cmd.Context(), slog.Default())
			if err != nil {
				return err
			}
			defer cleanup()

			path := output
			if path == "" {
				path = filepath.Join(reportDir(), report.FileName(kind))
			}

			if err := writeReportFile(report.NewRenderer(), store.Items(), store.PolicyLimit(), kind, config.ExpandPath(path)); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s Saved %s (%d items)", cli.FileIcon, path, store.Len())))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <report.output_dir>/<report name>.pdf)")

	return cmd
}

// writeReportFile renders kind into path, removing the partial file on failure.
func writeReportFile(renderer service.ReportRenderer, items []model.InventoryItem, limit float64, kind service.ReportKind, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := renderer.Render(f, items, limit, kind); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	return nil
}
