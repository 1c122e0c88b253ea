package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/ledgerlens/internal/cli"
	"github.com/spf13/cobra"
)

func clearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every item",
		Long: `Delete every item in the inventory. The policy limit is kept.

This cannot be undone.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, cleanup, err := openLedger(ctx, slog.Default())
			if err != nil {
				return err
			}
			defer cleanup()

			count := store.Len()
			if count == 0 {
				_, err := fmt.Fprintln(out, cli.FormatInfo("No items found. Nothing to clear."))
				return err
			}

			if !force {
				prompter := cli.NewPrompter(cmd.InOrStdin(), out)
				ok, err := prompter.Confirm(ctx, fmt.Sprintf("Delete all %d items? This cannot be undone.", count))
				if err != nil && !errors.Is(err, cli.ErrInputTerminated) {
					return fmt.Errorf("failed to read confirmation: %w", err)
				}
				if !ok {
					_, err := fmt.Fprintln(out, cli.FormatInfo("Clear canceled."))
					return err
				}
			}

			if err := store.ClearAll(ctx); err != nil {
				return fmt.Errorf("failed to clear items: %w", err)
			}
			_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted %d items", count)))
			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
