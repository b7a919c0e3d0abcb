package session

import (
	"time"

	"github.com/wricardo/durango/game/engine"
	"github.com/wricardo/durango/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the stored form of a session. The engine snapshot
// carries everything replayable; the randomness stream itself cannot be
// serialized, so a fresh seed is recorded at save time and a restored
// session continues on a new stream.
type PersistedSessionData struct {
	ID             string           `json:"id"`
	Preset         string           `json:"preset"`
	Seats          []string         `json:"seats"`
	GameOver       bool             `json:"game_over"`
	RngSeed        int64            `json:"rng_seed"`
	CreatedAt      time.Time        `json:"created_at"`
	LastAccessedAt time.Time        `json:"last_accessed_at"`
	Snapshot       *engine.Snapshot `json:"snapshot"`
}

// persistedData captures a live session for storage
func persistedData(session *service.Session) *PersistedSessionData {
	return &PersistedSessionData{
		ID:             session.ID,
		Preset:         session.Preset,
		Seats:          session.SeatKinds(),
		GameOver:       session.Over,
		RngSeed:        time.Now().UnixNano(),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Snapshot:       session.Game.Snapshot(),
	}
}

// restoreSession turns stored data back into a live session
func restoreSession(data *PersistedSessionData) (*service.Session, error) {
	session, err := service.RestoreSession(data.ID, data.Preset, data.Seats, data.Snapshot, data.GameOver, data.RngSeed)
	if err != nil {
		return nil, err
	}
	session.CreatedAt = data.CreatedAt
	session.LastAccessedAt = data.LastAccessedAt
	return session, nil
}
