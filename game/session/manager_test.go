package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

var testSeats = []string{"human", "greedy"}

func TestManagerCreate(t *testing.T) {
	manager := NewManager()

	sess, err := manager.Create("", "first", testSeats)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if sess.ID == "" {
		t.Error("Expected generated session ID, got empty string")
	}
	if len(sess.ID) != 8 {
		t.Errorf("Expected 8-character session ID, got %q", sess.ID)
	}
	if sess.Game == nil {
		t.Fatal("Expected session to carry a game")
	}
	if sess.Game.NumPlayers() != 2 {
		t.Errorf("Expected 2 players, got %d", sess.Game.NumPlayers())
	}
	if len(sess.Seats) != 2 {
		t.Errorf("Expected 2 seats, got %d", len(sess.Seats))
	}
	if sess.Seats[0].Agent != nil {
		t.Error("Expected human seat to have no agent")
	}
	if sess.Seats[1].Agent == nil {
		t.Error("Expected agent seat to have an agent")
	}
}

func TestManagerCreateDuplicate(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Create("abcd", "first", testSeats); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := manager.Create("abcd", "first", testSeats); !errors.Is(err, ErrSessionAlreadyExists) {
		t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
	}

	// IDs are case-insensitive
	if _, err := manager.Create("ABCD", "first", testSeats); !errors.Is(err, ErrSessionAlreadyExists) {
		t.Errorf("Expected ErrSessionAlreadyExists for uppercase variant, got %v", err)
	}
}

func TestManagerCreateBadInput(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Create("", "no-such-preset", testSeats); err == nil {
		t.Error("Expected error for unknown preset")
	}
	if _, err := manager.Create("", "first", []string{"human"}); err == nil {
		t.Error("Expected error for single seat")
	}
	if _, err := manager.Create("", "first", []string{"human", "no-such-agent"}); err == nil {
		t.Error("Expected error for unknown agent kind")
	}
}

func TestManagerGet(t *testing.T) {
	manager := NewManager()

	created, err := manager.Create("MyGame", "first", testSeats)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := manager.Get("mygame")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != created {
		t.Error("Expected case-insensitive Get to return the same session")
	}

	if _, err := manager.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerDelete(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Create("abcd", "first", testSeats); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := manager.Delete("abcd"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if _, err := manager.Get("abcd"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}
	if err := manager.Delete("abcd"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound for double delete, got %v", err)
	}
}

func TestManagerListAndCount(t *testing.T) {
	manager := NewManager()

	for i := 0; i < 3; i++ {
		if _, err := manager.Create(fmt.Sprintf("sess%d", i), "first", testSeats); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	if got := len(manager.List()); got != 3 {
		t.Errorf("Expected 3 sessions listed, got %d", got)
	}
	if got := manager.Count(); got != 3 {
		t.Errorf("Expected count 3, got %d", got)
	}
}

func TestManagerUpdateLastAccessed(t *testing.T) {
	manager := NewManager()

	sess, err := manager.Create("abcd", "first", testSeats)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before := sess.LastAccessedAt
	time.Sleep(10 * time.Millisecond)

	if err := manager.UpdateLastAccessed("ABCD"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if !sess.LastAccessedAt.After(before) {
		t.Error("Expected LastAccessedAt to advance")
	}

	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerCleanupExpiredSessions(t *testing.T) {
	manager := NewManager()

	stale, err := manager.Create("stale", "first", testSeats)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := manager.Create("fresh", "first", testSeats); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stale.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}
	if _, err := manager.Get("stale"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected stale session to be gone, got %v", err)
	}
	if _, err := manager.Get("fresh"); err != nil {
		t.Errorf("Expected fresh session to survive, got %v", err)
	}
}

func TestManagerConcurrentAccess(t *testing.T) {
	manager := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("conc%d", i)
			if _, err := manager.Create(id, "first", testSeats); err != nil {
				t.Errorf("Create %s failed: %v", id, err)
				return
			}
			if _, err := manager.Get(id); err != nil {
				t.Errorf("Get %s failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	if got := manager.Count(); got != 8 {
		t.Errorf("Expected 8 sessions, got %d", got)
	}
}
