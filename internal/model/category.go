package model

import (
	"encoding/json"
	"strings"
)

// Category is one of the known inventory categories, or an unrecognized
// label carried verbatim. Appraisals may return labels outside the known set.
type Category struct {
	label string
	known bool
}

// Known categories, in display order.
var (
	CategoryElectronics = Category{label: "Electronics", known: true}
	CategoryFurniture   = Category{label: "Furniture", known: true}
	CategoryClothing    = Category{label: "Clothing", known: true}
	CategoryKitchen     = Category{label: "Kitchen", known: true}
	CategoryBooks       = Category{label: "Books", known: true}
	CategoryTools       = Category{label: "Tools", known: true}
	CategoryArt         = Category{label: "Art/Decor", known: true}
	CategoryAppliances  = Category{label: "Appliances", known: true}
	CategoryFixtures    = Category{label: "Fixtures/Lighting", known: true}
	CategoryHVAC        = Category{label: "HVAC/Systems", known: true}
	CategoryOther       = Category{label: "Other", known: true}
)

var knownCategories = []Category{
	CategoryElectronics,
	CategoryFurniture,
	CategoryClothing,
	CategoryKitchen,
	CategoryBooks,
	CategoryTools,
	CategoryArt,
	CategoryAppliances,
	CategoryFixtures,
	CategoryHVAC,
	CategoryOther,
}

// Categories returns the known categories in display order.
func Categories() []Category {
	out := make([]Category, len(knownCategories))
	copy(out, knownCategories)
	return out
}

// CategoryLabels returns the display labels of the known categories.
func CategoryLabels() []string {
	labels := make([]string, len(knownCategories))
	for i, c := range knownCategories {
		labels[i] = c.label
	}
	return labels
}

// ParseCategory maps a label onto a known category (case-insensitive).
// Anything else becomes an unrecognized category holding the raw string.
func ParseCategory(s string) Category {
	trimmed := strings.TrimSpace(s)
	for _, c := range knownCategories {
		if strings.EqualFold(c.label, trimmed) {
			return c
		}
	}
	return Category{label: s}
}

// String returns the display label.
func (c Category) String() string {
	return c.label
}

// Known reports whether c is part of the fixed enumeration.
func (c Category) Known() bool {
	return c.known
}

// IsZero reports whether no category was set.
func (c Category) IsZero() bool {
	return c.label == "" && !c.known
}

// MarshalJSON encodes the category as its label.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.label)
}

// UnmarshalJSON decodes a label, keeping unknown labels verbatim.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = ParseCategory(s)
	return nil
}
