// Package model defines the core domain types for the inventory ledger.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for purchase dates.
const DateLayout = "2006-01-02"

// DefaultPolicyLimit is the insurance coverage ceiling used until the user sets one.
const DefaultPolicyLimit = 100000.0

// Room labels used as fallbacks.
const (
	// DefaultRoom is applied at save time when no room was given.
	DefaultRoom = "General"
	// FormRoom pre-fills the room field of a fresh draft.
	FormRoom = "Living Room"
	// UnknownRoom is used when an appraisal omits the room.
	UnknownRoom = "Unknown Room"
	// UngroupedRoom labels items without a room in analytics.
	UngroupedRoom = "Other"
)

// ItemType partitions items by whether they convey with the property.
type ItemType string

const (
	// ItemTypePersonal moves with the owner.
	ItemTypePersonal ItemType = "PERSONAL"
	// ItemTypeFixture stays with the home.
	ItemTypeFixture ItemType = "FIXTURE"
)

// Label returns the human-readable description of the type.
func (t ItemType) Label() string {
	switch t {
	case ItemTypePersonal:
		return "Personal Property (Moves)"
	case ItemTypeFixture:
		return "Fixture (Stays with Home)"
	default:
		return string(t)
	}
}

// Valid reports whether t is one of the two variants.
func (t ItemType) Valid() bool {
	return t == ItemTypePersonal || t == ItemTypeFixture
}

// ParseItemType accepts the canonical names, their display labels and the
// short forms "personal"/"fixture".
func ParseItemType(s string) (ItemType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch {
	case norm == "personal", norm == "personal_property", norm == strings.ToLower(ItemTypePersonal.Label()),
		strings.HasPrefix(norm, "personal property"):
		return ItemTypePersonal, nil
	case norm == "fixture", norm == strings.ToLower(ItemTypeFixture.Label()),
		strings.HasPrefix(norm, "fixture"):
		return ItemTypeFixture, nil
	default:
		return "", fmt.Errorf("invalid item type %q", s)
	}
}

// UnmarshalJSON rejects anything that is not one of the two variants.
func (t *ItemType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseItemType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// InventoryItem is one cataloged possession.
type InventoryItem struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     Category  `json:"category"`
	Room         string    `json:"room"`
	Type         ItemType  `json:"type"`
	PurchaseDate string    `json:"purchaseDate"`
	Description  string    `json:"description"`
	Condition    Condition `json:"condition"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	ReceiptURL   string    `json:"receiptUrl,omitempty"`
	Value        float64   `json:"value"`
	CreatedAt    int64     `json:"createdAt"` // Unix milliseconds
}

// HasReceipt reports whether a proof of purchase was captured.
func (i InventoryItem) HasReceipt() bool {
	return i.ReceiptURL != ""
}

// DemoItems returns the seed collection shown on first launch.
func DemoItems(now time.Time) []InventoryItem {
	ms := now.UnixMilli()
	return []InventoryItem{
		{
			ID:           "1",
			Name:         "MacBook Pro M1",
			Category:     CategoryElectronics,
			Room:         "Office",
			Type:         ItemTypePersonal,
			Value:        1200,
			PurchaseDate: "2022-05-15",
			Description:  "14 inch silver laptop",
			Condition:    ConditionGood,
			CreatedAt:    ms,
		},
		{
			ID:           "2",
			Name:         "Viking Gas Range",
			Category:     CategoryAppliances,
			Room:         "Kitchen",
			Type:         ItemTypeFixture,
			Value:        4500,
			PurchaseDate: "2020-11-20",
			Description:  "6-burner gas stove, stainless steel",
			Condition:    ConditionGood,
			CreatedAt:    ms - 10000,
		},
	}
}
