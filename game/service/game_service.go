package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/wricardo/durango/game/agent"
	"github.com/wricardo/durango/game/board"
	"github.com/wricardo/durango/game/engine"
)

// SeatHuman marks a seat that is driven through the API instead of an agent.
const SeatHuman = "human"

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, preset string, seats []string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	View(ctx context.Context, sessionID string, player int) (*PlayerView, error)
	Act(ctx context.Context, sessionID string, player int, action json.RawMessage) (*ActionResult, error)
	LegalActions(ctx context.Context, sessionID string, player int) ([]json.RawMessage, error)
	Scores(ctx context.Context, sessionID string) (*ScoreBoard, error)

	// Configuration
	ListPresets(ctx context.Context) ([]*PresetInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, preset string, seats []string) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// Seat binds a player index to whoever controls it. Agent is nil for human
// seats.
type Seat struct {
	Kind  string
	Agent agent.Agent
}

// Session represents an active game session
type Session struct {
	ID             string
	Preset         string
	Seats          []Seat
	Game           *engine.GameState
	Rng            *rand.Rand
	Over           bool
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// NewSession assembles the preset layout and seats a fresh game. Every seat
// kind other than SeatHuman must name a known agent.
func NewSession(id, preset string, seatKinds []string, seed int64) (*Session, error) {
	seats, err := buildSeats(seatKinds)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	game, err := board.NewGame(len(seats), preset, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	now := time.Now()
	return &Session{
		ID:             id,
		Preset:         preset,
		Seats:          seats,
		Game:           game,
		Rng:            rng,
		CreatedAt:      now,
		LastAccessedAt: now,
	}, nil
}

// RestoreSession rebuilds a session around a previously captured snapshot.
func RestoreSession(id, preset string, seatKinds []string, snap *engine.Snapshot, over bool, seed int64) (*Session, error) {
	seats, err := buildSeats(seatKinds)
	if err != nil {
		return nil, err
	}
	if len(seats) != len(snap.Players) {
		return nil, fmt.Errorf("snapshot has %d players but %d seats given", len(snap.Players), len(seats))
	}

	game, err := engine.RestoreGame(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	now := time.Now()
	return &Session{
		ID:             id,
		Preset:         preset,
		Seats:          seats,
		Game:           game,
		Rng:            rand.New(rand.NewSource(seed)),
		Over:           over,
		CreatedAt:      now,
		LastAccessedAt: now,
	}, nil
}

// SeatKinds returns the seat kinds in player order, for persistence and API
// responses.
func (s *Session) SeatKinds() []string {
	kinds := make([]string, len(s.Seats))
	for i, seat := range s.Seats {
		kinds[i] = seat.Kind
	}
	return kinds
}

func buildSeats(seatKinds []string) ([]Seat, error) {
	if len(seatKinds) < engine.MinPlayers || len(seatKinds) > engine.MaxPlayers {
		return nil, fmt.Errorf("need between %d and %d seats, got %d", engine.MinPlayers, engine.MaxPlayers, len(seatKinds))
	}

	seats := make([]Seat, len(seatKinds))
	for i, kind := range seatKinds {
		if kind == SeatHuman {
			seats[i] = Seat{Kind: SeatHuman}
			continue
		}
		ag, err := agent.New(kind)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", i, err)
		}
		seats[i] = Seat{Kind: kind, Agent: ag}
	}
	return seats, nil
}
