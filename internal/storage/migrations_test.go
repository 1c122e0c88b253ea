package storage

import (
	"context"
	"testing"
)

func TestMigrate_SchemaVersion(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	var version int
	if err := store.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("failed to read user_version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, ExpectedSchemaVersion)
	}

	var tableCount int
	err := store.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='kv'
	`).Scan(&tableCount)
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	if tableCount != 1 {
		t.Errorf("kv table count = %d, want 1", tableCount)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Put(ctx, "policy_limit", "1000"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	got, err := store.Get(ctx, "policy_limit")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "1000" {
		t.Errorf("data lost across migrate: got %q", got)
	}
}
