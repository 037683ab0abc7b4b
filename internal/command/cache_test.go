package command

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestCache(t *testing.T, dir string, opts ...CacheOption) *Cache {
	t.Helper()
	rootsFn := func() []Root {
		return []Root{{Dir: dir, Scope: ScopeProject}}
	}
	return NewCache(NewRepository(), rootsFn, opts...)
}

func TestCacheGet(t *testing.T) {
	dir := t.TempDir()
	writeCommand(t, dir, "deploy.md", "Deploy it.")

	cache := newTestCache(t, dir)
	def, err := cache.Get(context.Background(), "deploy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Body != "Deploy it." {
		t.Errorf("unexpected body: %q", def.Body)
	}
}

func TestCacheGetNotFound(t *testing.T) {
	cache := newTestCache(t, t.TempDir())
	_, err := cache.Get(context.Background(), "missing")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if notFound.Name != "missing" {
		t.Errorf("unexpected name in error: %s", notFound.Name)
	}
}

func TestCacheServesWithinStalenessWindow(t *testing.T) {
	dir := t.TempDir()
	writeCommand(t, dir, "deploy.md", "Deploy it.")

	cache := newTestCache(t, dir, WithStaleness(time.Hour))
	if _, err := cache.Get(context.Background(), "deploy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A file added after the first pass is invisible to the cached listing
	// until invalidation.
	writeCommand(t, dir, "audit.md", "Audit it.")
	defs, err := cache.Definitions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := defs["audit"]; ok {
		t.Fatal("expected listing to stay cached inside the staleness window")
	}

	cache.Invalidate()
	defs, err = cache.Definitions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := defs["audit"]; !ok {
		t.Error("expected refresh after invalidation")
	}
}

func TestCacheGetMissFallsBackToReload(t *testing.T) {
	dir := t.TempDir()
	writeCommand(t, dir, "deploy.md", "Deploy it.")

	cache := newTestCache(t, dir, WithStaleness(time.Hour))
	if _, err := cache.Get(context.Background(), "deploy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A lookup by name for a just-created file resolves through the
	// single-command reload even though the window has not elapsed.
	writeCommand(t, dir, "audit.md", "Audit it.")
	def, err := cache.Get(context.Background(), "audit")
	if err != nil {
		t.Fatalf("expected single-command reload to find the file: %v", err)
	}
	if def.Body != "Audit it." {
		t.Errorf("unexpected body: %q", def.Body)
	}
}

func TestCacheRefreshesWhenStale(t *testing.T) {
	dir := t.TempDir()
	writeCommand(t, dir, "deploy.md", "Deploy it.")

	// Zero staleness: every read re-walks.
	cache := newTestCache(t, dir, WithStaleness(0))
	if _, err := cache.Get(context.Background(), "deploy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeCommand(t, dir, "audit.md", "Audit it.")
	if _, err := cache.Get(context.Background(), "audit"); err != nil {
		t.Errorf("expected stale cache to refresh: %v", err)
	}
}

func TestCacheDefinitionsSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeCommand(t, dir, "a.md", "A.")
	writeCommand(t, dir, "b.md", "B.")

	cache := newTestCache(t, dir)
	defs, err := cache.Definitions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}

	// Mutating the snapshot must not affect the cache.
	delete(defs, "a")
	if _, err := cache.Get(context.Background(), "a"); err != nil {
		t.Errorf("cache must be unaffected by snapshot mutation: %v", err)
	}
}

func TestCacheWatchInvalidates(t *testing.T) {
	dir := t.TempDir()
	writeCommand(t, dir, "deploy.md", "Deploy it.")

	cache := newTestCache(t, dir, WithStaleness(time.Hour))
	if _, err := cache.Get(context.Background(), "deploy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cache.Watch(); err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	defer cache.Close()

	writeCommand(t, dir, "audit.md", "Audit it.")

	// The watcher event arrives asynchronously; poll the cached listing,
	// which only refreshes after invalidation.
	deadline := time.Now().Add(2 * time.Second)
	for {
		defs, err := cache.Definitions(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := defs["audit"]; ok {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("watcher did not invalidate the cache in time")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestCacheWatchWithNoRoots(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	cache := newTestCache(t, missing)
	if err := cache.Watch(); err != nil {
		t.Fatalf("watch over missing roots must be a no-op: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}
