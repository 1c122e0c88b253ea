package sheets

import (
	"fmt"
	"time"

	"github.com/Veraticus/ledgerlens/internal/analysis"
	"github.com/Veraticus/ledgerlens/internal/model"
)

// ItemHeader is the column layout of the item table.
var ItemHeader = []any{"Item", "Category", "Location", "Type", "Value", "Condition", "Purchase Date", "Receipt"}

// Layout records where the parts of the exported grid start (zero-based rows).
type Layout struct {
	SummaryStart int
	HeaderRow    int
	TotalRows    int
}

// BuildValues lays out the summary block followed by one row per item.
func BuildValues(items []model.InventoryItem, policyLimit float64, now time.Time) ([][]any, Layout) {
	summary := analysis.Summarize(items, policyLimit)

	underInsured := "No"
	if summary.IsUnderInsured {
		underInsured = "Yes"
	}

	values := make([][]any, 0, 10+len(items))
	values = append(values,
		[]any{"LedgerLens Inventory", "Generated " + now.Format(model.DateLayout)},
		[]any{},
		[]any{"Summary"},
		[]any{"Total Value", summary.TotalValue},
		[]any{"Policy Limit", summary.PolicyLimit},
		[]any{"Coverage", fmt.Sprintf("%.0f%%", summary.CoveragePercent)},
		[]any{"Under-insured", underInsured},
		[]any{"Items", summary.ItemCount},
		[]any{},
		ItemHeader,
	)

	layout := Layout{SummaryStart: 3, HeaderRow: len(values) - 1}

	for _, item := range items {
		receipt := "No"
		if item.HasReceipt() {
			receipt = "Yes"
		}
		values = append(values, []any{
			item.Name,
			item.Category.String(),
			item.Room,
			item.Type.Label(),
			item.Value,
			item.Condition.String(),
			item.PurchaseDate,
			receipt,
		})
	}

	layout.TotalRows = len(values)
	return values, layout
}
