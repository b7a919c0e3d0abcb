package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/wricardo/durango/game/agent"
	"github.com/wricardo/durango/game/board"
	"github.com/wricardo/durango/game/engine"
)

// DefaultPreset is used when session creation does not name a layout.
const DefaultPreset = "first"

// maxAgentActions caps how many automated actions a single request may
// trigger while fast-forwarding to the next human turn.
const maxAgentActions = 400

var (
	ErrNotYourTurn = errors.New("not this player's turn")
	ErrNotHuman    = errors.New("seat is played by an agent")
	ErrGameOver    = errors.New("game is over")
	ErrBadPlayer   = errors.New("no such player")
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions      SessionManager
	defaultPreset string
	defaultSeats  []string
	mu            sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager) GameService {
	return NewGameServiceWithDefaults(sessions, DefaultPreset, []string{SeatHuman, "greedy"})
}

// NewGameServiceWithDefaults creates a game service that fills in the given
// preset and seat lineup when session creation omits them.
func NewGameServiceWithDefaults(sessions SessionManager, preset string, seats []string) GameService {
	if preset == "" {
		preset = DefaultPreset
	}
	if len(seats) == 0 {
		seats = []string{SeatHuman, "greedy"}
	}
	return &gameServiceImpl{sessions: sessions, defaultPreset: preset, defaultSeats: seats}
}

// CreateSession creates a new game session. Agent seats play their opening
// turns immediately, so the returned session is already waiting on the first
// human seat (or finished, for all-agent tables).
func (s *gameServiceImpl) CreateSession(ctx context.Context, preset string, seats []string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if preset == "" {
		preset = s.defaultPreset
	}
	if _, err := board.Preset(preset); err != nil {
		return nil, fmt.Errorf("preset '%s' not found. Available presets: %v", preset, board.Presets())
	}
	if len(seats) == 0 {
		seats = append([]string(nil), s.defaultSeats...)
	}

	sess, err := s.sessions.Create("", preset, seats)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.runAgents(sess)

	if err := s.sessions.Save(sess.ID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s: %v\n", sess.ID, err)
	}

	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// View returns the game as seen from one seat
func (s *gameServiceImpl) View(ctx context.Context, sessionID string, player int) (*PlayerView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if player < 0 || player >= sess.Game.NumPlayers() {
		return nil, ErrBadPlayer
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return buildView(sess, player), nil
}

// Act applies one action for a human seat, then lets agent seats play until
// the game is back on a human turn or over.
func (s *gameServiceImpl) Act(ctx context.Context, sessionID string, player int, action json.RawMessage) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	if player < 0 || player >= sess.Game.NumPlayers() {
		return nil, ErrBadPlayer
	}
	if sess.Over {
		return nil, ErrGameOver
	}
	if sess.Seats[player].Agent != nil {
		return nil, ErrNotHuman
	}
	if sess.Game.CurrPlayer() != player {
		return nil, ErrNotYourTurn
	}

	decoded, err := engine.DecodeAction(action)
	if err != nil {
		return nil, fmt.Errorf("bad action: %w", err)
	}

	outcome, err := sess.Game.ProcessAction(decoded, sess.Rng)
	if err != nil {
		return nil, err
	}
	if outcome.GameOver {
		sess.Over = true
	}

	steps := s.runAgents(sess)

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after action: %v\n", sessionID, err)
	}

	return &ActionResult{
		Success:     true,
		GameOver:    sess.Over,
		IgnoredStep: outcome.IgnoredStep,
		AgentSteps:  steps,
		View:        buildView(sess, player),
	}, nil
}

// LegalActions enumerates the actions the given seat could take right now
func (s *gameServiceImpl) LegalActions(ctx context.Context, sessionID string, player int) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if player < 0 || player >= sess.Game.NumPlayers() {
		return nil, ErrBadPlayer
	}
	if sess.Over {
		return nil, ErrGameOver
	}
	if sess.Game.CurrPlayer() != player {
		return nil, ErrNotYourTurn
	}

	// Legality never depends on the randomness source, so a throwaway rng
	// keeps this read-only: the session's own stream must not advance here.
	actions := agent.LegalActions(sess.Game, rand.New(rand.NewSource(1)))
	result := make([]json.RawMessage, 0, len(actions))
	for _, a := range actions {
		data, err := engine.EncodeAction(a)
		if err != nil {
			return nil, fmt.Errorf("failed to encode action: %w", err)
		}
		result = append(result, data)
	}
	return result, nil
}

// Scores returns the standings, best first
func (s *gameServiceImpl) Scores(ctx context.Context, sessionID string) (*ScoreBoard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	scores, err := sess.Game.PlayerScores()
	if err != nil {
		return nil, fmt.Errorf("failed to score game: %w", err)
	}

	atFinish := make(map[int]bool)
	for _, idx := range sess.Game.PlayersAtFinish() {
		atFinish[idx] = true
	}

	entries := make([]ScoreEntry, len(scores))
	for i, score := range scores {
		entries[i] = ScoreEntry{
			Player:   i,
			Seat:     sess.Seats[i].Kind,
			Score:    score,
			AtFinish: atFinish[i],
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })

	return &ScoreBoard{
		SessionID: sess.ID,
		Round:     sess.Game.Round(),
		GameOver:  sess.Over,
		Scores:    entries,
	}, nil
}

// ListPresets describes the board layouts available for new sessions
func (s *gameServiceImpl) ListPresets(ctx context.Context) ([]*PresetInfo, error) {
	result := make([]*PresetInfo, 0, len(board.Presets()))
	for _, name := range board.Presets() {
		layout, err := board.Layout(name)
		if err != nil {
			return nil, fmt.Errorf("failed to assemble preset %s: %w", name, err)
		}
		hexMap, err := engine.CreateCustom(layout)
		if err != nil {
			return nil, fmt.Errorf("failed to assemble preset %s: %w", name, err)
		}
		graph := engine.NewHexGraph(hexMap)

		caves := 0
		hexMap.AllNodes(func(_ engine.AxialCoord, node engine.Node) bool {
			if node.Terrain == engine.TerrainCave {
				caves++
			}
			return true
		})

		result = append(result, &PresetInfo{
			Name:      name,
			Segments:  len(layout),
			HexCount:  hexMap.Len(),
			MaxDist:   graph.MaxDist(),
			CaveCount: caves,
		})
	}
	return result, nil
}

// runAgents plays agent seats forward until a human seat is up, the game
// ends, or the action cap is hit. An agent whose action is rejected forfeits
// the rest of its turn.
func (s *gameServiceImpl) runAgents(sess *Session) []AgentStep {
	var steps []AgentStep

	for i := 0; i < maxAgentActions; i++ {
		if sess.Over {
			break
		}
		cur := sess.Game.CurrPlayer()
		seat := sess.Seats[cur]
		if seat.Agent == nil {
			break
		}

		action := seat.Agent.ChooseAction(sess.Game, sess.Rng)
		if action == nil {
			action = engine.FinishTurn{}
		}

		outcome, err := sess.Game.ProcessAction(action, sess.Rng)
		if err != nil {
			action = engine.FinishTurn{}
			outcome, err = sess.Game.ProcessAction(action, sess.Rng)
			if err != nil {
				// FinishTurn never fails; bail out rather than spin.
				break
			}
		}

		if data, encErr := engine.EncodeAction(action); encErr == nil {
			steps = append(steps, AgentStep{Player: cur, Agent: seat.Agent.Name(), Action: data})
		}
		if outcome.GameOver {
			sess.Over = true
		}
	}

	return steps
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		Preset:         sess.Preset,
		Seats:          sess.SeatKinds(),
		CurrPlayer:     sess.Game.CurrPlayer(),
		Round:          sess.Game.Round(),
		GameOver:       sess.Over,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
	}
}

func buildView(sess *Session, player int) *PlayerView {
	game := sess.Game
	me := game.Player(player)

	players := make([]PublicPlayer, game.NumPlayers())
	for i := 0; i < game.NumPlayers(); i++ {
		p := game.Player(i)
		players[i] = PublicPlayer{
			Index:          i,
			Seat:           sess.Seats[i].Kind,
			Position:       p.Position,
			HandCount:      len(p.Hand),
			DeckCount:      len(p.Deck),
			PlayedCount:    len(p.Played),
			DiscardCount:   len(p.Discard),
			TokenCount:     len(p.Tokens),
			Trashes:        p.Trashes,
			CanBuy:         p.CanBuy,
			BrokenBarriers: append([]engine.BrokenBarrier(nil), p.BrokenBarriers...),
		}
	}

	var caves []CaveInfo
	game.Map().AllNodes(func(coord engine.AxialCoord, node engine.Node) bool {
		if node.Terrain == engine.TerrainCave {
			caves = append(caves, CaveInfo{Coord: coord, TokensLeft: len(game.BonusTokensAt(coord))})
		}
		return true
	})
	sort.Slice(caves, func(i, j int) bool { return caves[i].Coord.Less(caves[j].Coord) })

	return &PlayerView{
		SessionID:  sess.ID,
		Player:     player,
		Hand:       append([]engine.Card(nil), me.Hand...),
		Tokens:     append([]engine.BonusToken(nil), me.Tokens...),
		Trashes:    me.Trashes,
		CanBuy:     me.CanBuy,
		Players:    players,
		Shop:       append([]engine.BuyableCard(nil), game.Shop()...),
		Storage:    append([]engine.BuyableCard(nil), game.Storage()...),
		Barriers:   append([]engine.Barrier(nil), game.Barriers()...),
		Caves:      caves,
		CurrPlayer: game.CurrPlayer(),
		Round:      game.Round(),
		YourTurn:   !sess.Over && game.CurrPlayer() == player,
		GameOver:   sess.Over,
	}
}
