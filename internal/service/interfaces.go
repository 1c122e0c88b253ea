// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"io"

	"github.com/Veraticus/ledgerlens/internal/model"
)

// Storage keys for the two durable records. These names are stable across
// releases so a restart reconstructs identical state.
const (
	KeyItems       = "ledger_items"
	KeyPolicyLimit = "policy_limit"

	// KeyItemsUnreadable keeps a copy of an items record that failed to
	// decode, so the first save over it does not lose the data.
	KeyItemsUnreadable = "ledger_items_unreadable"
)

// Storage defines the contract for our persistence layer: a durable
// key-value store holding serialized records.
type Storage interface {
	// Get returns the value stored under key, or an error wrapping
	// common.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ReportKind selects the layout of an exported document.
type ReportKind string

// Report kinds.
const (
	ReportInsurance  ReportKind = "INSURANCE"
	ReportRealEstate ReportKind = "REAL_ESTATE"
)

// ReportRenderer turns the item collection into a downloadable document.
type ReportRenderer interface {
	Render(w io.Writer, items []model.InventoryItem, policyLimit float64, kind ReportKind) error
}
