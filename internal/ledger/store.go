// Package ledger owns the inventory collection and the insurance policy
// limit. Store is the single mutation point; every change is written through
// to durable storage before the call returns.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/service"
	"github.com/google/uuid"
)

// Store holds the ledger state for the lifetime of the process.
type Store struct {
	storage     service.Storage
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
	items       []model.InventoryItem
	policyLimit float64
	mu          sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides how item ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// New creates a store backed by storage. Call Load before use.
func New(storage service.Storage, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		storage:     storage,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
		items:       []model.InventoryItem{},
		policyLimit: model.DefaultPolicyLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads both records. Missing or unreadable items fall back to the demo
// set and a missing or non-numeric limit falls back to the default. Only a
// missing record is seeded in storage; an unreadable one is left in place
// and copied aside until the next mutation replaces it.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, seeded, err := s.loadItems(ctx)
	if err != nil {
		return err
	}
	limit, err := s.loadPolicyLimit(ctx)
	if err != nil {
		return err
	}

	if seeded {
		if err := s.persistItems(ctx, items); err != nil {
			return err
		}
	}

	s.items = items
	s.policyLimit = limit

	s.logger.Debug("ledger loaded",
		"items", len(items),
		"policy_limit", limit,
		"seeded", seeded)
	return nil
}

func (s *Store) loadItems(ctx context.Context) ([]model.InventoryItem, bool, error) {
	raw, err := s.storage.Get(ctx, service.KeyItems)
	if errors.Is(err, common.ErrNotFound) {
		return model.DemoItems(s.now()), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read items: %w", err)
	}

	var items []model.InventoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warn("stored items unreadable, showing defaults",
			"error", err,
			"backup_key", service.KeyItemsUnreadable,
			"bytes", len(raw))
		if err := s.storage.Put(ctx, service.KeyItemsUnreadable, raw); err != nil {
			return nil, false, fmt.Errorf("failed to back up unreadable items: %w", err)
		}
		return model.DemoItems(s.now()), false, nil
	}
	if items == nil {
		items = []model.InventoryItem{}
	}
	return items, false, nil
}

func (s *Store) loadPolicyLimit(ctx context.Context) (float64, error) {
	raw, err := s.storage.Get(ctx, service.KeyPolicyLimit)
	if errors.Is(err, common.ErrNotFound) {
		return model.DefaultPolicyLimit, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read policy limit: %w", err)
	}

	limit, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(limit) || math.IsInf(limit, 0) {
		s.logger.Warn("stored policy limit unreadable, using default", "value", raw)
		return model.DefaultPolicyLimit, nil
	}
	return limit, nil
}

// Items returns a snapshot of the collection, most recently added first.
func (s *Store) Items() []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.InventoryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// PolicyLimit returns the insurance coverage ceiling.
func (s *Store) PolicyLimit() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policyLimit
}

// AddItem validates and normalizes draft, then prepends the new item.
// A missing name or value yields a *common.ValidationError and leaves the
// ledger untouched.
func (s *Store) AddItem(ctx context.Context, draft model.Draft) (model.InventoryItem, error) {
	if err := draft.Validate(); err != nil {
		return model.InventoryItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	item := model.NormalizeDraft(draft, now)
	item.ID = s.uniqueID()
	item.CreatedAt = now.UnixMilli()

	next := make([]model.InventoryItem, 0, len(s.items)+1)
	next = append(next, item)
	next = append(next, s.items...)

	if err := s.persistItems(ctx, next); err != nil {
		return model.InventoryItem{}, err
	}
	s.items = next

	s.logger.Info("item added",
		"id", item.ID,
		"name", item.Name,
		"type", item.Type,
		"value", item.Value)
	return item, nil
}

// uniqueID mints an id not already present in the collection.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		taken := false
		for _, existing := range s.items {
			if existing.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

// ClearAll empties the collection. It is irreversible; callers confirm first.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	empty := []model.InventoryItem{}
	if err := s.persistItems(ctx, empty); err != nil {
		return err
	}
	removed := len(s.items)
	s.items = empty

	s.logger.Info("ledger cleared", "removed", removed)
	return nil
}

// SetPolicyLimit replaces the coverage ceiling.
func (s *Store) SetPolicyLimit(ctx context.Context, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: policy limit must be a number", common.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Put(ctx, service.KeyPolicyLimit, strconv.FormatFloat(amount, 'f', -1, 64)); err != nil {
		return fmt.Errorf("failed to persist policy limit: %w", err)
	}
	s.policyLimit = amount

	s.logger.Info("policy limit updated", "policy_limit", amount)
	return nil
}

// ResetPolicyLimit drops the stored limit so the default applies again.
func (s *Store) ResetPolicyLimit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(ctx, service.KeyPolicyLimit); err != nil {
		return fmt.Errorf("failed to reset policy limit: %w", err)
	}
	s.policyLimit = model.DefaultPolicyLimit
	return nil
}

func (s *Store) persistItems(ctx context.Context, items []model.InventoryItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	if err := s.storage.Put(ctx, service.KeyItems, string(data)); err != nil {
		return fmt.Errorf("failed to persist items: %w", err)
	}
	return nil
}
