package library

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// openTestStore opens a store backed by a temp-file database.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "library.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreGetMissing(t *testing.T) {
	store := openTestStore(t)

	value, ok, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || value != "" {
		t.Errorf("Get = %q, %v; want empty, false", value, ok)
	}
}

func TestStoreSetGetDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	value, ok, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || value != "v2" {
		t.Errorf("Get = %q, %v; want v2, true", value, ok)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Error("key should be gone after Delete")
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.sqlite")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Set(ctx, SongsKey, "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if reopened.Path() != path {
		t.Errorf("Path = %q, want %q", reopened.Path(), path)
	}
	value, ok, err := reopened.Get(ctx, SongsKey)
	if err != nil || !ok || value != "[]" {
		t.Errorf("Get after reopen = %q, %v, %v", value, ok, err)
	}
}

func TestStoreSchemaColumns(t *testing.T) {
	store := openTestStore(t)
	if err := store.Set(context.Background(), SongsKey, "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var updated float64
	err := store.db.QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, SongsKey).Scan(&updated)
	if err != nil {
		t.Fatalf("select updated_at: %v", err)
	}
	if updated <= 0 {
		t.Errorf("updated_at = %v, want a timestamp", updated)
	}
}

func TestStoreRenamesLegacyColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.sqlite")
	ctx := context.Background()

	legacy, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open legacy: %v", err)
	}
	stmts := []string{
		`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL, updatedAt REAL NOT NULL)`,
		`INSERT INTO kv (key, value, updatedAt) VALUES ('songs', '[]', 1)`,
	}
	for _, stmt := range stmts {
		if _, err := legacy.Exec(stmt); err != nil {
			t.Fatalf("legacy schema: %v", err)
		}
	}
	legacy.Close()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	value, ok, err := store.Get(ctx, SongsKey)
	if err != nil || !ok || value != "[]" {
		t.Fatalf("Get = %q, %v, %v", value, ok, err)
	}
	if err := store.Set(ctx, SongsKey, `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set after rename: %v", err)
	}
}

func TestStoreUpdateHoldsLock(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.Update(ctx, func() error {
		if !store.lock.Locked() {
			t.Error("expected exclusive lock to be held inside Update")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if store.lock.Locked() {
		t.Error("lock should be released after Update")
	}
}

func TestStoreUpdateCancelled(t *testing.T) {
	store := openTestStore(t)
	other, err := Open(store.Path())
	if err != nil {
		t.Fatalf("open second handle: %v", err)
	}
	defer other.Close()

	if err := other.lock.Lock(); err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer other.lock.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = store.Update(ctx, func() error {
		t.Error("fn should not run without the lock")
		return nil
	})
	if err == nil {
		t.Fatal("expected error when lock is held elsewhere and context is cancelled")
	}
}
