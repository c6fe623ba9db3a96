package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCreateUsesLayout(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "dist")
	mgr := NewManager(dist, "")

	dir, err := mgr.Create(time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if want := filepath.Join(dist, "20240301_101500"); dir != want {
		t.Fatalf("expected %s, got %s", want, dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("build directory missing: %v", err)
	}
}

func TestCreateCollisionGetsSuffix(t *testing.T) {
	mgr := NewManager(t.TempDir(), "2006")
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first, err := mgr.Create(at)
	if err != nil {
		t.Fatalf("first Create() failed: %v", err)
	}
	second, err := mgr.Create(at)
	if err != nil {
		t.Fatalf("second Create() failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct directories, both %s", first)
	}
	if filepath.Base(second) != "2024_2" {
		t.Errorf("unexpected suffix directory %s", second)
	}
}

func TestLatest(t *testing.T) {
	dist := t.TempDir()
	mgr := NewManager(dist, "")

	if _, err := mgr.Latest(); !errors.Is(err, ErrNoBuilds) {
		t.Fatalf("expected ErrNoBuilds, got %v", err)
	}

	older, _ := mgr.Create(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	newer, _ := mgr.Create(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dist, "20240103_000000.zip"), []byte("zip"), 0o600); err != nil {
		t.Fatalf("write zip: %v", err)
	}

	got, err := mgr.Latest()
	if err != nil {
		t.Fatalf("Latest() failed: %v", err)
	}
	if got != newer {
		t.Errorf("expected %s, got %s", newer, got)
	}
}

func TestLatestMissingDist(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "nope"), "")
	if _, err := mgr.Latest(); !errors.Is(err, ErrNoBuilds) {
		t.Fatalf("expected ErrNoBuilds, got %v", err)
	}
}
