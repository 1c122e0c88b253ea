package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/ledgerlens/internal/analysis"
	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const maxCellWidth = 32

// RenderItems writes the item listing as a bordered table.
func RenderItems(out io.Writer, items []model.InventoryItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(out, SubtleStyle.Render("No items found."))
		return err
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(BorderColor)).
		Headers("Item", "Category", "Room", "Type", "Value", "Condition", "Receipt").
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle.Padding(0, 1)
			case col == 4:
				return style.Align(lipgloss.Right)
			}
			return style
		})

	for _, item := range items {
		itemType := "Personal"
		if item.Type == model.ItemTypeFixture {
			itemType = "Fixture"
		}
		receipt := ""
		if item.HasReceipt() {
			receipt = SuccessIcon
		}
		t.Row(
			truncate(item.Name),
			item.Category.String(),
			truncate(item.Room),
			itemType,
			common.FormatCurrency(item.Value),
			item.Condition.String(),
			receipt,
		)
	}

	_, err := fmt.Fprintln(out, t.Render())
	return err
}

// RenderSummary writes the dashboard and insurance figures.
func RenderSummary(out io.Writer, s analysis.Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Items:          %d (%d fixtures, %d personal)\n", s.ItemCount, s.FixtureCount, s.PersonalCount)
	fmt.Fprintf(&b, "Total value:    %s\n", BoldStyle.Render(common.FormatCurrency(s.TotalValue)))
	fmt.Fprintf(&b, "Policy limit:   %s\n", common.FormatCurrency(s.PolicyLimit))
	fmt.Fprintf(&b, "Coverage:       %.0f%%\n", s.CoveragePercent)
	fmt.Fprintf(&b, "With receipts:  %d of %d\n", s.ReceiptCount, s.ItemCount)

	if s.IsUnderInsured {
		b.WriteString("\n" + FormatWarning(fmt.Sprintf("Under-insured by %s", common.FormatCurrency(s.TotalValue-s.PolicyLimit))) + "\n")
	}

	if len(s.Rooms) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Rooms") + "\n")
		for _, room := range s.Rooms {
			fmt.Fprintf(&b, "  %-20s %d\n", room.Room, room.Count)
		}
	}

	if len(s.CategoryValues) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Value by category") + "\n")
		for _, cv := range s.CategoryValues {
			fmt.Fprintf(&b, "  %-20s %s\n", cv.Category, common.FormatCurrency(cv.Value))
		}
	}

	if len(s.Recent) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Recently added") + "\n")
		for _, item := range s.Recent {
			fmt.Fprintf(&b, "  %-20s %s\n", truncate(item.Name), common.FormatCurrency(item.Value))
		}
	}

	_, err := fmt.Fprintln(out, RenderBox(ChartIcon+" Inventory Summary", strings.TrimRight(b.String(), "\n")))
	return err
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-1]) + "…"
}
