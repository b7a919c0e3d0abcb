package service

import (
	"encoding/json"
	"time"

	"github.com/wricardo/durango/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string    `json:"id"`
	Preset         string    `json:"preset"`
	Seats          []string  `json:"seats"`
	CurrPlayer     int       `json:"curr_player"`
	Round          int       `json:"round"`
	GameOver       bool      `json:"game_over"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
}

// PublicPlayer is what every player at the table can see about an opponent:
// position, pile sizes and earned rewards, but never the cards themselves.
type PublicPlayer struct {
	Index          int                    `json:"index"`
	Seat           string                 `json:"seat"`
	Position       engine.AxialCoord      `json:"position"`
	HandCount      int                    `json:"hand_count"`
	DeckCount      int                    `json:"deck_count"`
	PlayedCount    int                    `json:"played_count"`
	DiscardCount   int                    `json:"discard_count"`
	TokenCount     int                    `json:"token_count"`
	Trashes        int                    `json:"trashes"`
	CanBuy         bool                   `json:"can_buy"`
	BrokenBarriers []engine.BrokenBarrier `json:"broken_barriers,omitempty"`
}

// CaveInfo reports how many bonus tokens a cave still holds. The tokens
// themselves stay hidden until drawn.
type CaveInfo struct {
	Coord      engine.AxialCoord `json:"coord"`
	TokensLeft int               `json:"tokens_left"`
}

// PlayerView is the game state as seen from one seat: the viewer's own hand
// and tokens in full, everyone else reduced to public information.
type PlayerView struct {
	SessionID  string               `json:"session_id"`
	Player     int                  `json:"player"`
	Hand       []engine.Card        `json:"hand"`
	Tokens     []engine.BonusToken  `json:"tokens,omitempty"`
	Trashes    int                  `json:"trashes"`
	CanBuy     bool                 `json:"can_buy"`
	Players    []PublicPlayer       `json:"players"`
	Shop       []engine.BuyableCard `json:"shop"`
	Storage    []engine.BuyableCard `json:"storage"`
	Barriers   []engine.Barrier     `json:"barriers"`
	Caves      []CaveInfo           `json:"caves"`
	CurrPlayer int                  `json:"curr_player"`
	Round      int                  `json:"round"`
	YourTurn   bool                 `json:"your_turn"`
	GameOver   bool                 `json:"game_over"`
}

// AgentStep records one action an automated seat took while the service was
// advancing the game to the next human turn.
type AgentStep struct {
	Player int             `json:"player"`
	Agent  string          `json:"agent"`
	Action json.RawMessage `json:"action"`
}

// ActionResult contains the result of applying a player action
type ActionResult struct {
	Success     bool        `json:"success"`
	GameOver    bool        `json:"game_over"`
	IgnoredStep int         `json:"ignored_step"`
	AgentSteps  []AgentStep `json:"agent_steps,omitempty"`
	View        *PlayerView `json:"view"`
}

// ScoreEntry is one player's standing
type ScoreEntry struct {
	Player   int    `json:"player"`
	Seat     string `json:"seat"`
	Score    int    `json:"score"`
	AtFinish bool   `json:"at_finish"`
}

// ScoreBoard lists standings best-first
type ScoreBoard struct {
	SessionID string       `json:"session_id"`
	Round     int          `json:"round"`
	GameOver  bool         `json:"game_over"`
	Scores    []ScoreEntry `json:"scores"`
}

// PresetInfo describes a board layout available for new sessions
type PresetInfo struct {
	Name      string `json:"name"`
	Segments  int    `json:"segments"`
	HexCount  int    `json:"hex_count"`
	MaxDist   int    `json:"max_dist"`
	CaveCount int    `json:"cave_count"`
}
