package main

import (
	"log/slog"

	"github.com/Veraticus/ledgerlens/internal/analysis"
	"github.com/Veraticus/ledgerlens/internal/cli"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals, coverage and value breakdowns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openLedger(cmd.Context(), slog.Default())
			if err != nil {
				return err
			}
			defer cleanup()

			return cli.RenderSummary(cmd.OutOrStdout(), analysis.Summarize(store.Items(), store.PolicyLimit()))
		},
	}
}
