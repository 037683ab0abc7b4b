package security

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreLoadCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	policy, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if policy.Level != LevelEnforce {
		t.Errorf("expected enforce by default, got %s", policy.Level)
	}
	if len(policy.IgnoredPatterns) != 0 {
		t.Errorf("expected no exemptions, got %v", policy.IgnoredPatterns)
	}

	// The defaults must have been persisted.
	if _, err := os.Stat(store.Path()); err != nil {
		t.Errorf("expected policy file to be created: %v", err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	saved := Policy{Level: LevelWarn, IgnoredPatterns: []string{"rm -rf", "shared"}}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Level != LevelWarn {
		t.Errorf("expected warn, got %s", loaded.Level)
	}
	if len(loaded.IgnoredPatterns) != 2 || loaded.IgnoredPatterns[0] != "rm -rf" {
		t.Errorf("unexpected exemptions: %v", loaded.IgnoredPatterns)
	}
}

func TestStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := os.WriteFile(filepath.Join(dir, policyFileName), []byte("level = [broken"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := store.Load()
	if err == nil {
		t.Fatal("expected error for corrupt policy file")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %T", err)
	}
}

func TestStoreUnknownLevelRejected(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := os.WriteFile(filepath.Join(dir, policyFileName), []byte(`level = "paranoid"`), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := store.Load(); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestStoreSetLevel(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Disable(); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	policy, _ := store.Load()
	if policy.Level != LevelOff {
		t.Errorf("expected off, got %s", policy.Level)
	}

	if err := store.SetWarn(); err != nil {
		t.Fatalf("set warn failed: %v", err)
	}
	policy, _ = store.Load()
	if policy.Level != LevelWarn {
		t.Errorf("expected warn, got %s", policy.Level)
	}

	if err := store.Enable(); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	policy, _ = store.Load()
	if policy.Level != LevelEnforce {
		t.Errorf("expected enforce, got %s", policy.Level)
	}
}

func TestStoreIgnoredPatterns(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.AddIgnoredPattern("rm -rf"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// Adding again is a no-op, not a duplicate.
	if err := store.AddIgnoredPattern("rm -rf"); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	policy, _ := store.Load()
	if len(policy.IgnoredPatterns) != 1 {
		t.Errorf("expected 1 exemption, got %v", policy.IgnoredPatterns)
	}

	if err := store.RemoveIgnoredPattern("rm -rf"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	policy, _ = store.Load()
	if len(policy.IgnoredPatterns) != 0 {
		t.Errorf("expected no exemptions, got %v", policy.IgnoredPatterns)
	}
}

func TestStoreStatus(t *testing.T) {
	store := NewStore(t.TempDir())

	status, err := store.Status()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "Security validation: Enabled (enforce)" {
		t.Errorf("unexpected status: %q", status)
	}

	store.AddIgnoredPattern("rm -rf")
	store.SetWarn()
	status, _ = store.Status()
	if status != "Security validation: Warning only\nIgnored patterns: rm -rf" {
		t.Errorf("unexpected status: %q", status)
	}
}

func TestLevelTextRoundTrip(t *testing.T) {
	for _, level := range []Level{LevelOff, LevelWarn, LevelEnforce} {
		text, err := level.MarshalText()
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		var parsed Level
		if err := parsed.UnmarshalText(text); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if parsed != level {
			t.Errorf("round trip changed %s to %s", level, parsed)
		}
	}

	var l Level
	if err := l.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for unknown level text")
	}
}
