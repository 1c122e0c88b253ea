package model

import (
	"strings"
	"time"

	"github.com/Veraticus/ledgerlens/internal/common"
)

// Draft is the transient, unpersisted state of the add-item form.
type Draft struct {
	Value        *float64
	Name         string
	Room         string
	PurchaseDate string
	Description  string
	ImageURL     string
	ReceiptURL   string
	Type         ItemType
	Category     Category
	Condition    Condition
}

// NewDraft returns a draft pre-filled with the form defaults.
func NewDraft(now time.Time) Draft {
	return Draft{
		Category:     CategoryOther,
		Condition:    ConditionGood,
		Type:         ItemTypePersonal,
		Room:         FormRoom,
		PurchaseDate: now.Format(DateLayout),
	}
}

// SetValue stores a copy of v as the draft's value.
func (d *Draft) SetValue(v float64) {
	d.Value = &v
}

// Validate reports the required fields that are missing. A zero value
// counts as missing.
func (d Draft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if d.Value == nil || *d.Value == 0 {
		missing = append(missing, "value")
	} else if *d.Value < 0 {
		missing = append(missing, "value (must not be negative)")
	}
	if len(missing) > 0 {
		return common.NewValidationError(missing...)
	}
	return nil
}

// NormalizeDraft fills every optional field with its default and returns
// the item to persist. ID and CreatedAt are left for the caller to assign.
func NormalizeDraft(d Draft, now time.Time) InventoryItem {
	item := InventoryItem{
		Name:         strings.TrimSpace(d.Name),
		Category:     d.Category,
		Room:         strings.TrimSpace(d.Room),
		Type:         d.Type,
		PurchaseDate: strings.TrimSpace(d.PurchaseDate),
		Description:  d.Description,
		Condition:    d.Condition,
		ImageURL:     d.ImageURL,
		ReceiptURL:   d.ReceiptURL,
	}
	if d.Value != nil {
		item.Value = *d.Value
	}

	if item.Category.IsZero() || strings.TrimSpace(item.Category.String()) == "" {
		item.Category = CategoryOther
	}
	if item.Room == "" {
		item.Room = DefaultRoom
	}
	if !item.Type.Valid() {
		item.Type = ItemTypePersonal
	}
	if item.PurchaseDate == "" {
		item.PurchaseDate = now.Format(DateLayout)
	}
	if item.Condition.IsZero() || strings.TrimSpace(item.Condition.String()) == "" {
		item.Condition = ConditionGood
	}

	return item
}
