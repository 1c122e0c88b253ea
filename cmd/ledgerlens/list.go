package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/ledgerlens/internal/analysis"
	"github.com/Veraticus/ledgerlens/internal/cli"
	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var (
		query    string
		typeFlag string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List inventory items",
		Long:    `List items, newest first. Filter by a search query and by item type.`,
		Example: `  ledgerlens list
  ledgerlens list --query kitchen
  ledgerlens list --type fixture`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, ok := analysis.ParseTypeFilter(typeFlag)
			if !ok {
				return fmt.Errorf("%w: --type must be all, fixture or personal", common.ErrInvalidInput)
			}

			store, cleanup, err := openLedger(cmd.Context(), slog.Default())
			if err != nil {
				return err
			}
			defer cleanup()

			return writeListing(cmd.OutOrStdout(), store.Items(), query, filter)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "search name, room, category and description")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "all", "all, fixture or personal")

	return cmd
}

func writeListing(out io.Writer, items []model.InventoryItem, query string, filter analysis.TypeFilter) error {
	visible := analysis.FilterItems(items, query, filter)
	if err := cli.RenderItems(out, visible); err != nil {
		return err
	}
	if len(visible) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("\n%d of %d items · %s",
		len(visible), len(items), common.FormatCurrency(analysis.TotalValue(visible)))))
	return err
}
