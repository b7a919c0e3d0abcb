package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/wricardo/durango/game/engine"
	"github.com/wricardo/durango/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	saves    int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id, preset string, seats []string) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	// Fixed seed keeps the tests deterministic
	session, err := service.NewSession(id, preset, seats, 42)
	if err != nil {
		return nil, err
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	return nil
}

func (m *MockSessionManager) Save(id string) error {
	m.saves++
	return nil
}

func newTestService(t *testing.T) (service.GameService, *MockSessionManager) {
	t.Helper()
	mgr := NewMockSessionManager()
	return service.NewGameService(mgr), mgr
}

func finishTurnJSON(t *testing.T) json.RawMessage {
	t.Helper()
	data, err := engine.EncodeAction(engine.FinishTurn{})
	if err != nil {
		t.Fatalf("EncodeAction failed: %v", err)
	}
	return data
}

func TestCreateSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "first", []string{"human", "greedy"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if info.Preset != "first" {
		t.Errorf("Expected preset first, got %q", info.Preset)
	}
	if len(info.Seats) != 2 {
		t.Errorf("Expected 2 seats, got %v", info.Seats)
	}
	// Seat 0 is human, so no agent turns run before the first action
	if info.CurrPlayer != 0 {
		t.Errorf("Expected game to wait on player 0, got %d", info.CurrPlayer)
	}
	if info.GameOver {
		t.Error("Expected new game to not be over")
	}
}

func TestCreateSessionDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	info, err := svc.CreateSession(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if info.Preset != service.DefaultPreset {
		t.Errorf("Expected default preset %q, got %q", service.DefaultPreset, info.Preset)
	}
	if len(info.Seats) != 2 || info.Seats[0] != service.SeatHuman {
		t.Errorf("Expected a default human-vs-agent table, got %v", info.Seats)
	}
}

func TestCreateSessionBadInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateSession(ctx, "no-such-preset", []string{"human", "greedy"}); err == nil {
		t.Error("Expected error for unknown preset")
	}
	if _, err := svc.CreateSession(ctx, "first", []string{"human", "no-such-agent"}); err == nil {
		t.Error("Expected error for unknown agent kind")
	}
	if _, err := svc.CreateSession(ctx, "first", []string{"human"}); err == nil {
		t.Error("Expected error for too few seats")
	}
}

func TestCreateSessionAllAgents(t *testing.T) {
	svc, _ := newTestService(t)

	info, err := svc.CreateSession(context.Background(), "first", []string{"greedy", "greedy"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	// Agents play immediately; at least a full round must have happened
	if info.Round == 0 && !info.GameOver {
		t.Error("Expected agent seats to have played turns on creation")
	}
}

func TestViewHidesOpponentHands(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "first", []string{"human", "human"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	view, err := svc.View(ctx, info.ID, 0)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}

	if len(view.Hand) != engine.HandSize {
		t.Errorf("Expected own hand of %d cards, got %d", engine.HandSize, len(view.Hand))
	}
	if !view.YourTurn {
		t.Error("Expected player 0 to be on turn")
	}
	if len(view.Players) != 2 {
		t.Fatalf("Expected 2 public players, got %d", len(view.Players))
	}
	if view.Players[1].HandCount != engine.HandSize {
		t.Errorf("Expected opponent hand count %d, got %d", engine.HandSize, view.Players[1].HandCount)
	}
	if len(view.Shop) != engine.ShopSlots {
		t.Errorf("Expected full shop, got %d listings", len(view.Shop))
	}

	if _, err := svc.View(ctx, info.ID, 5); !errors.Is(err, service.ErrBadPlayer) {
		t.Errorf("Expected ErrBadPlayer, got %v", err)
	}
}

func TestActRunsAgents(t *testing.T) {
	svc, mgr := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "first", []string{"human", "greedy"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	savesBefore := mgr.saves

	result, err := svc.Act(ctx, info.ID, 0, finishTurnJSON(t))
	if err != nil {
		t.Fatalf("Act failed: %v", err)
	}

	if !result.Success {
		t.Error("Expected action to succeed")
	}
	if len(result.AgentSteps) == 0 {
		t.Error("Expected the agent seat to have played after the human turn")
	}
	for _, step := range result.AgentSteps {
		if step.Player != 1 {
			t.Errorf("Expected agent steps from player 1, got %d", step.Player)
		}
		if step.Agent != "greedy" {
			t.Errorf("Expected greedy agent steps, got %q", step.Agent)
		}
	}
	if !result.GameOver && result.View.CurrPlayer != 0 {
		t.Errorf("Expected game back on the human seat, got player %d", result.View.CurrPlayer)
	}
	if mgr.saves <= savesBefore {
		t.Error("Expected session to be persisted after action")
	}
}

func TestActValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "first", []string{"human", "human"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if _, err := svc.Act(ctx, info.ID, 1, finishTurnJSON(t)); !errors.Is(err, service.ErrNotYourTurn) {
		t.Errorf("Expected ErrNotYourTurn, got %v", err)
	}
	if _, err := svc.Act(ctx, info.ID, 7, finishTurnJSON(t)); !errors.Is(err, service.ErrBadPlayer) {
		t.Errorf("Expected ErrBadPlayer, got %v", err)
	}
	if _, err := svc.Act(ctx, info.ID, 0, json.RawMessage(`{"type":"nonsense"}`)); err == nil {
		t.Error("Expected error for undecodable action")
	}
	if _, err := svc.Act(ctx, "missing", 0, finishTurnJSON(t)); err == nil {
		t.Error("Expected error for missing session")
	}
}

func TestActAgentSeatRejected(t *testing.T) {
	svc, mgr := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "first", []string{"greedy", "human"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	sess, _ := mgr.Get(info.ID)
	if sess.Over {
		t.Skip("agents finished the game before a human turn came up")
	}
	if _, err := svc.Act(ctx, info.ID, 0, finishTurnJSON(t)); !errors.Is(err, service.ErrNotHuman) {
		t.Errorf("Expected ErrNotHuman, got %v", err)
	}
}

func TestLegalActions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "first", []string{"human", "human"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	actions, err := svc.LegalActions(ctx, info.ID, 0)
	if err != nil {
		t.Fatalf("LegalActions failed: %v", err)
	}
	if len(actions) == 0 {
		t.Fatal("Expected at least one legal action")
	}

	foundFinish := false
	for _, raw := range actions {
		decoded, err := engine.DecodeAction(raw)
		if err != nil {
			t.Fatalf("Returned action does not decode: %v", err)
		}
		if _, ok := decoded.(engine.FinishTurn); ok {
			foundFinish = true
		}
	}
	if !foundFinish {
		t.Error("Expected finish_turn among legal actions")
	}

	if _, err := svc.LegalActions(ctx, info.ID, 1); !errors.Is(err, service.ErrNotYourTurn) {
		t.Errorf("Expected ErrNotYourTurn, got %v", err)
	}
}

func TestScores(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "first", []string{"human", "greedy"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	board, err := svc.Scores(ctx, info.ID)
	if err != nil {
		t.Fatalf("Scores failed: %v", err)
	}
	if len(board.Scores) != 2 {
		t.Fatalf("Expected 2 score entries, got %d", len(board.Scores))
	}
	for i := 1; i < len(board.Scores); i++ {
		if board.Scores[i-1].Score < board.Scores[i].Score {
			t.Error("Expected scores sorted best-first")
		}
	}
}

func TestListSessionsAndDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "first", []string{"human", "human"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("Expected 1 session, got %d", len(sessions))
	}

	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, info.ID); err == nil {
		t.Error("Expected error getting deleted session")
	}
}

func TestListPresets(t *testing.T) {
	svc, _ := newTestService(t)

	presets, err := svc.ListPresets(context.Background())
	if err != nil {
		t.Fatalf("ListPresets failed: %v", err)
	}
	if len(presets) == 0 {
		t.Fatal("Expected at least one preset")
	}
	for _, p := range presets {
		if p.HexCount == 0 {
			t.Errorf("Preset %s reports no hexes", p.Name)
		}
		if p.MaxDist <= 0 {
			t.Errorf("Preset %s reports max distance %d", p.Name, p.MaxDist)
		}
	}
}
