package session

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/wricardo/durango/game/engine"
)

func newTestSqlite(t *testing.T) *SqlitePersistence {
	t.Helper()
	sp, err := NewSqlitePersistence(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("NewSqlitePersistence failed: %v", err)
	}
	t.Cleanup(func() { sp.Close() })
	return sp
}

func TestSqlitePersistenceSaveLoad(t *testing.T) {
	sp := newTestSqlite(t)

	sess := newTestSession(t, "game1")
	if _, err := sess.Game.ProcessAction(engine.FinishTurn{}, sess.Rng); err != nil {
		t.Fatalf("ProcessAction failed: %v", err)
	}

	if err := sp.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !sp.Exists("game1") {
		t.Error("Expected session to exist after save")
	}

	loaded, err := sp.Load("game1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Preset != "first" {
		t.Errorf("Expected preset first, got %q", loaded.Preset)
	}
	if !reflect.DeepEqual(loaded.Game.Snapshot(), sess.Game.Snapshot()) {
		t.Error("Expected loaded game state to match saved game state")
	}
}

func TestSqlitePersistenceUpsert(t *testing.T) {
	sp := newTestSqlite(t)

	sess := newTestSession(t, "game1")
	if err := sp.Save(sess); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	if _, err := sess.Game.ProcessAction(engine.FinishTurn{}, sess.Rng); err != nil {
		t.Fatalf("ProcessAction failed: %v", err)
	}
	if err := sp.Save(sess); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := sp.Load("game1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Game.CurrPlayer() != 1 {
		t.Errorf("Expected upsert to keep latest state, current player %d", loaded.Game.CurrPlayer())
	}

	ids, err := sp.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("Expected a single row after upsert, got %v", ids)
	}
}

func TestSqlitePersistenceDelete(t *testing.T) {
	sp := newTestSqlite(t)

	if err := sp.Save(newTestSession(t, "game1")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := sp.Delete("game1"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if sp.Exists("game1") {
		t.Error("Expected session to be gone after delete")
	}
	if err := sp.Delete("game1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound for double delete, got %v", err)
	}
	if _, err := sp.Load("game1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on load, got %v", err)
	}
}

func TestManagerWithSqlitePersistence(t *testing.T) {
	sp := newTestSqlite(t)
	manager := NewManagerWithPersistence(sp)

	if _, err := manager.Create("abcd", "first", testSeats); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := manager.DeleteFromMemory("abcd"); err != nil {
		t.Fatalf("DeleteFromMemory failed: %v", err)
	}
	if _, err := manager.Get("abcd"); err != nil {
		t.Errorf("Expected Get to reload from sqlite, got %v", err)
	}
}
