package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/wricardo/durango/game/engine"
	"github.com/wricardo/durango/game/service"
)

// SqlitePersistence implements SessionPersistence on a SQLite database. It is
// a drop-in alternative to FilePersistence for deployments that want a single
// queryable store instead of a directory of JSON files.
type SqlitePersistence struct {
	db *sqlx.DB
}

// sessionRow mirrors the sessions table. Seats and the engine snapshot are
// stored as JSON text.
type sessionRow struct {
	ID             string    `db:"id"`
	Preset         string    `db:"preset"`
	Seats          string    `db:"seats"`
	GameOver       bool      `db:"game_over"`
	RngSeed        int64     `db:"rng_seed"`
	CreatedAt      time.Time `db:"created_at"`
	LastAccessedAt time.Time `db:"last_accessed_at"`
	Snapshot       string    `db:"snapshot"`
}

const sessionsSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	preset TEXT NOT NULL,
	seats TEXT NOT NULL,
	game_over INTEGER NOT NULL,
	rng_seed INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL,
	last_accessed_at TIMESTAMP NOT NULL,
	snapshot TEXT NOT NULL
);`

// NewSqlitePersistence opens (or creates) the database at path and ensures
// the sessions table exists.
func NewSqlitePersistence(path string) (*SqlitePersistence, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if _, err := db.Exec(sessionsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	return &SqlitePersistence{db: db}, nil
}

// Close closes the database connection
func (sp *SqlitePersistence) Close() error {
	return sp.db.Close()
}

// Save upserts a session row
func (sp *SqlitePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	data := persistedData(session)

	seatsJSON, err := json.Marshal(data.Seats)
	if err != nil {
		return fmt.Errorf("failed to marshal seats: %w", err)
	}
	snapJSON, err := json.Marshal(data.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	row := sessionRow{
		ID:             data.ID,
		Preset:         data.Preset,
		Seats:          string(seatsJSON),
		GameOver:       data.GameOver,
		RngSeed:        data.RngSeed,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
		Snapshot:       string(snapJSON),
	}

	_, err = sp.db.NamedExec(`
		INSERT INTO sessions (id, preset, seats, game_over, rng_seed, created_at, last_accessed_at, snapshot)
		VALUES (:id, :preset, :seats, :game_over, :rng_seed, :created_at, :last_accessed_at, :snapshot)
		ON CONFLICT(id) DO UPDATE SET
			preset = excluded.preset,
			seats = excluded.seats,
			game_over = excluded.game_over,
			rng_seed = excluded.rng_seed,
			last_accessed_at = excluded.last_accessed_at,
			snapshot = excluded.snapshot`, row)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Load retrieves a session by ID
func (sp *SqlitePersistence) Load(id string) (*service.Session, error) {
	var row sessionRow
	err := sp.db.Get(&row, `SELECT * FROM sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var seats []string
	if err := json.Unmarshal([]byte(row.Seats), &seats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seats: %w", err)
	}
	var snap engine.Snapshot
	if err := json.Unmarshal([]byte(row.Snapshot), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	data := &PersistedSessionData{
		ID:             row.ID,
		Preset:         row.Preset,
		Seats:          seats,
		GameOver:       row.GameOver,
		RngSeed:        row.RngSeed,
		CreatedAt:      row.CreatedAt,
		LastAccessedAt: row.LastAccessedAt,
		Snapshot:       &snap,
	}

	session, err := restoreSession(data)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session '%s': %w", id, err)
	}

	return session, nil
}

// Delete removes a session row
func (sp *SqlitePersistence) Delete(id string) error {
	res, err := sp.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll returns all persisted session IDs
func (sp *SqlitePersistence) ListAll() ([]string, error) {
	var ids []string
	if err := sp.db.Select(&ids, `SELECT id FROM sessions ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}

// Exists checks if a session row exists
func (sp *SqlitePersistence) Exists(id string) bool {
	var count int
	if err := sp.db.Get(&count, `SELECT COUNT(*) FROM sessions WHERE id = ?`, id); err != nil {
		return false
	}
	return count > 0
}
