// Package testutil provides test utilities shared across packages.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/ledgerlens/internal/storage"
)

// SetupTestStorage creates a migrated in-memory database that is closed
// when the test ends.
func SetupTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
