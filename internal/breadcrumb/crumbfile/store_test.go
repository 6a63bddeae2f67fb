package crumbfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/fsnotify/fsnotify"
)

const twoCrumbs = "crumbs:\n  home:\n    text: Home\n  about:\n    text: About\n    parent: home\n"

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestStoreReloadKeepsPreviousOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crumbs.yaml")
	writeFile(t, path, "crumbs:\n  home:\n    text: Home\n")

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	first := store.Registry()
	if first.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", first.Len())
	}

	writeFile(t, path, twoCrumbs)
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	second := store.Registry()
	if second.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 after reload", second.Len())
	}
	if first.Len() != 1 {
		t.Fatal("previous registry must not change")
	}

	writeFile(t, path, "crumbs: [")
	if err := store.Reload(); err == nil {
		t.Fatal("expected reload error for malformed file")
	}
	if store.Registry() != second {
		t.Fatal("failed reload must keep the current registry")
	}
}

func TestNewStoreFailsOnMissingFile(t *testing.T) {
	if _, err := NewStore(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewStoreFSIsNotWatchable(t *testing.T) {
	store, err := NewStoreFS(fstest.MapFS{"c.yaml": {Data: []byte(twoCrumbs)}}, "c.yaml")
	if err != nil {
		t.Fatalf("NewStoreFS() error = %v", err)
	}
	if err := store.Watch(context.Background(), 0); err == nil {
		t.Fatal("expected watch error for fs-backed store")
	}
}

func TestStoreWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crumbs.yaml")
	writeFile(t, path, "crumbs:\n  home:\n    text: Home\n")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := store.Watch(ctx, 20*time.Millisecond); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	writeFile(t, path, twoCrumbs)
	deadline := time.Now().Add(3 * time.Second)
	for store.Registry().Len() != 2 {
		if time.Now().After(deadline) {
			t.Fatalf("Len() = %d, want 2 after file change", store.Registry().Len())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(WatcherConfig{Path: filepath.Join(dir, "crumbs.yaml")})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer func() { _ = w.Stop() }()

	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{event: fsnotify.Event{Name: filepath.Join(dir, "crumbs.yaml"), Op: fsnotify.Write}, want: true},
		{event: fsnotify.Event{Name: filepath.Join(dir, "crumbs.yaml"), Op: fsnotify.Create}, want: true},
		{event: fsnotify.Event{Name: filepath.Join(dir, "crumbs.yaml"), Op: fsnotify.Chmod}, want: false},
		{event: fsnotify.Event{Name: filepath.Join(dir, "other.yaml"), Op: fsnotify.Write}, want: false},
	}
	for _, tc := range tests {
		if got := w.isRelevantEvent(tc.event); got != tc.want {
			t.Fatalf("isRelevantEvent(%v) = %t, want %t", tc.event, got, tc.want)
		}
	}
}
