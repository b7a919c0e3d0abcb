package session

import (
	"errors"
	"reflect"
	"testing"
)

func newPersistentManager(t *testing.T, dir string) *Manager {
	t.Helper()
	fp, err := NewFilePersistence(dir)
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}
	return NewManagerWithPersistence(fp)
}

func TestManagerPersistsOnCreate(t *testing.T) {
	dir := t.TempDir()
	manager := newPersistentManager(t, dir)

	sess, err := manager.Create("abcd", "first", testSeats)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A second manager over the same directory sees the session
	other := newPersistentManager(t, dir)
	loaded, err := other.Get("abcd")
	if err != nil {
		t.Fatalf("Get from fresh manager failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.Game.Snapshot(), sess.Game.Snapshot()) {
		t.Error("Expected persisted game state to round-trip")
	}
}

func TestManagerReloadsAfterMemoryEviction(t *testing.T) {
	manager := newPersistentManager(t, t.TempDir())

	if _, err := manager.Create("abcd", "first", testSeats); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := manager.DeleteFromMemory("abcd"); err != nil {
		t.Fatalf("DeleteFromMemory failed: %v", err)
	}
	if manager.Count() != 0 {
		t.Errorf("Expected empty memory cache, got %d", manager.Count())
	}

	if _, err := manager.Get("abcd"); err != nil {
		t.Errorf("Expected Get to reload from persistence, got %v", err)
	}
	if manager.Count() != 1 {
		t.Errorf("Expected session back in memory, got %d", manager.Count())
	}
}

func TestManagerDeleteRemovesPersisted(t *testing.T) {
	dir := t.TempDir()
	manager := newPersistentManager(t, dir)

	if _, err := manager.Create("abcd", "first", testSeats); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := manager.Delete("abcd"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	other := newPersistentManager(t, dir)
	if _, err := other.Get("abcd"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected deleted session to be gone from disk, got %v", err)
	}
}
