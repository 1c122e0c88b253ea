package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/ledgerlens/internal/cli"
	"github.com/Veraticus/ledgerlens/internal/config"
	"github.com/Veraticus/ledgerlens/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the inventory to external services",
	}

	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "Export the insurance schedule to Google Sheets",
		Long: `Write a coverage summary and one row per item to a Google spreadsheet.

Authenticate first with 'ledgerlens auth sheets', or configure a service
account with sheets.service_account_path.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sheetsConfig, err := config.LoadSheetsConfig()
			if err != nil {
				return fmt.Errorf("google sheets not configured: %w", err)
			}

			store, cleanup, err := openLedger(ctx, slog.Default())
			if err != nil {
				return err
			}
			defer cleanup()

			writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
			if err != nil {
				return fmt.Errorf("failed to create sheets writer: %w", err)
			}

			result, err := writer.Export(ctx, store.Items(), store.PolicyLimit())
			if err != nil {
				return fmt.Errorf("failed to export to sheets: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Exported %d items", result.Rows)))
			_, err = fmt.Fprintln(out, cli.FormatInfo(result.URL))
			return err
		},
	}
}
