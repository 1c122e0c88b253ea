// Package report lays out the insurance and real-estate documents and
// renders them as PDF.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/ledgerlens/internal/analysis"
	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/service"
)

// Document titles.
const (
	InsuranceTitle  = "LedgerLens Insurance Report"
	RealEstateTitle = "Real Estate Conveyance Schedule"
)

// Section headings of the conveyance schedule.
const (
	FixturesHeading = "Section A: Fixtures (Staying with Property)"
	PersonalHeading = "Section B: Excluded Personal Property"
	conveyanceNote  = "This document lists fixtures conveying with property and excluded personal items."
	excludedStatus  = "Excluded"
)

// Color is an RGB triple.
type Color struct {
	R, G, B int
}

// Palette.
var (
	Blue    = Color{37, 99, 235}
	Emerald = Color{16, 185, 129}
	Slate   = Color{100, 116, 139}
	Red     = Color{220, 38, 38}
)

// Column describes one table column. Width is in millimeters.
type Column struct {
	Header string
	Align  string
	Width  float64
}

// Section is one titled table.
type Section struct {
	Heading string
	Empty   string
	Columns []Column
	Rows    [][]string
	Fill    Color
}

// Document is a renderer-independent description of a report.
type Document struct {
	Kind       service.ReportKind
	Title      string
	Lines      []string
	Warning    string
	Sections   []Section
	TitleColor Color
}

// ParseKind accepts "insurance" and "real-estate" in any case, with
// underscores or dashes.
func ParseKind(s string) (service.ReportKind, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	switch service.ReportKind(norm) {
	case service.ReportInsurance:
		return service.ReportInsurance, nil
	case service.ReportRealEstate, "REALESTATE":
		return service.ReportRealEstate, nil
	default:
		return "", fmt.Errorf("%w: unknown report kind %q", common.ErrInvalidInput, s)
	}
}

// FileName is the default download name for a report kind.
func FileName(kind service.ReportKind) string {
	if kind == service.ReportRealEstate {
		return "Real_Estate_Schedule.pdf"
	}
	return "Insurance_Report.pdf"
}

// Build lays out the document for kind. Items keep their ledger order.
func Build(items []model.InventoryItem, policyLimit float64, kind service.ReportKind, now time.Time) (Document, error) {
	generated := "Generated: " + now.Format(model.DateLayout)

	switch kind {
	case service.ReportInsurance:
		return buildInsurance(items, policyLimit, generated), nil
	case service.ReportRealEstate:
		return buildRealEstate(items, generated), nil
	default:
		return Document{}, fmt.Errorf("%w: unknown report kind %q", common.ErrInvalidInput, kind)
	}
}

func buildInsurance(items []model.InventoryItem, policyLimit float64, generated string) Document {
	total := analysis.TotalValue(items)
	coverage := analysis.CoveragePercent(total, policyLimit)

	doc := Document{
		Kind:       service.ReportInsurance,
		Title:      InsuranceTitle,
		TitleColor: Blue,
		Lines: []string{
			generated,
			"Total Value: " + common.FormatCurrency(total),
			fmt.Sprintf("Policy Limit: %s (%.0f%% covered)", common.FormatCurrency(policyLimit), coverage),
		},
	}
	if analysis.IsUnderInsured(total, policyLimit) {
		doc.Warning = fmt.Sprintf("Under-insured: documented value exceeds the policy limit by %s.",
			common.FormatCurrency(total-policyLimit))
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		receipt := "No"
		if item.HasReceipt() {
			receipt = "Yes"
		}
		rows = append(rows, []string{
			item.Name,
			item.Category.String(),
			item.Room,
			common.FormatCurrency(item.Value),
			item.Condition.String(),
			receipt,
		})
	}

	doc.Sections = []Section{{
		Columns: []Column{
			{Header: "Item", Width: 55},
			{Header: "Category", Width: 35},
			{Header: "Location", Width: 30},
			{Header: "Value", Width: 25, Align: "R"},
			{Header: "Cond", Width: 25},
			{Header: "Receipt", Width: 20, Align: "C"},
		},
		Rows:  rows,
		Fill:  Blue,
		Empty: "No items recorded.",
	}}
	return doc
}

func buildRealEstate(items []model.InventoryItem, generated string) Document {
	split := analysis.PartitionByType(items)

	fixtures := make([][]string, 0, len(split.Fixtures))
	for _, item := range split.Fixtures {
		fixtures = append(fixtures, []string{
			item.Name,
			item.Room,
			item.Condition.String(),
			item.Description,
		})
	}

	personal := make([][]string, 0, len(split.Personal))
	for _, item := range split.Personal {
		personal = append(personal, []string{item.Name, item.Room, excludedStatus})
	}

	return Document{
		Kind:       service.ReportRealEstate,
		Title:      RealEstateTitle,
		TitleColor: Emerald,
		Lines:      []string{generated, conveyanceNote},
		Sections: []Section{
			{
				Heading: FixturesHeading,
				Columns: []Column{
					{Header: "Item", Width: 50},
					{Header: "Location", Width: 35},
					{Header: "Condition", Width: 30},
					{Header: "Description/Serial", Width: 75},
				},
				Rows:  fixtures,
				Fill:  Emerald,
				Empty: "No fixtures recorded.",
			},
			{
				Heading: PersonalHeading,
				Columns: []Column{
					{Header: "Item", Width: 80},
					{Header: "Location", Width: 60},
					{Header: "Status", Width: 50},
				},
				Rows:  personal,
				Fill:  Slate,
				Empty: "No personal items recorded.",
			},
		},
	}
}
