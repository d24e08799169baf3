package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))

	if _, ok := store.Get("theme"); ok {
		t.Fatal("Get on fresh store should report absent")
	}

	if err := store.Set("theme", "dark"); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	if err := store.Set("resolvedTheme", "dark"); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}

	got, ok := store.Get("theme")
	if !ok || got != "dark" {
		t.Fatalf("Get(theme) = (%q, %t), want (dark, true)", got, ok)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs.json")
	first := NewFileStore(path)
	if err := first.Set("theme", "light"); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}

	second := NewFileStore(path)
	got, ok := second.Get("theme")
	if !ok || got != "light" {
		t.Fatalf("Get after reopen = (%q, %t), want (light, true)", got, ok)
	}
}

func TestFileStoreCreatesParentDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs", "guest.json")
	store := NewFileStore(path)
	if err := store.Set("theme", "system"); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("preference file missing after Set: %v", err)
	}
}

func TestFileStoreCorruptFileReadsAbsent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	store := NewFileStore(path)
	if _, ok := store.Get("theme"); ok {
		t.Fatal("Get on corrupt file should report absent")
	}

	// A write replaces the corrupt file rather than failing forever.
	if err := store.Set("theme", "dark"); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	got, ok := store.Get("theme")
	if !ok || got != "dark" {
		t.Fatalf("Get after rewrite = (%q, %t), want (dark, true)", got, ok)
	}
}

func TestFileStoreEmptyFileReadsAbsent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("seed empty file: %v", err)
	}

	store := NewFileStore(path)
	if _, ok := store.Get("theme"); ok {
		t.Fatal("Get on empty file should report absent")
	}
}

func TestFileStorePermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs.json")
	store := NewFileStore(path)
	if err := store.Set("theme", "dark"); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("file mode = %o, want 600", perm)
	}
}

func TestMemStore(t *testing.T) {
	t.Parallel()

	store := NewMemStore()
	if _, ok := store.Get("theme"); ok {
		t.Fatal("Get on fresh store should report absent")
	}
	if err := store.Set("theme", "dark"); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	got, ok := store.Get("theme")
	if !ok || got != "dark" {
		t.Fatalf("Get = (%q, %t), want (dark, true)", got, ok)
	}
}
