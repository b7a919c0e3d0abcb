// Command bot plays a human seat over the REST API. It connects to a running
// server, creates (or resumes) a session, and keeps submitting actions picked
// from the legal-action list until the game ends. Useful for soak-testing a
// server and for filling a table when nobody else is around.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// SessionInfo mirrors the API's session summary.
type SessionInfo struct {
	ID         string   `json:"id"`
	Preset     string   `json:"preset"`
	Seats      []string `json:"seats"`
	CurrPlayer int      `json:"curr_player"`
	Round      int      `json:"round"`
	GameOver   bool     `json:"game_over"`
}

// PlayerView mirrors the fields of the API's per-seat view that the bot needs.
type PlayerView struct {
	SessionID  string            `json:"session_id"`
	Player     int               `json:"player"`
	Hand       []json.RawMessage `json:"hand"`
	CurrPlayer int               `json:"curr_player"`
	Round      int               `json:"round"`
	YourTurn   bool              `json:"your_turn"`
	GameOver   bool              `json:"game_over"`
}

// ActionResult mirrors the API's action response.
type ActionResult struct {
	Success    bool `json:"success"`
	GameOver   bool `json:"game_over"`
	AgentSteps []struct {
		Player int    `json:"player"`
		Agent  string `json:"agent"`
	} `json:"agent_steps,omitempty"`
	View *PlayerView `json:"view"`
}

// ScoreBoard mirrors the API's standings response.
type ScoreBoard struct {
	SessionID string `json:"session_id"`
	Round     int    `json:"round"`
	GameOver  bool   `json:"game_over"`
	Scores    []struct {
		Player   int    `json:"player"`
		Seat     string `json:"seat"`
		Score    int    `json:"score"`
		AtFinish bool   `json:"at_finish"`
	} `json:"scores"`
}

// Client is a thin HTTP client for the game API.
type Client struct {
	baseURL   string
	sessionID string
	player    int
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(preset string, seats []string) (*SessionInfo, error) {
	reqBody, err := json.Marshal(map[string]interface{}{"preset": preset, "seats": seats})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionInfo
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return &session, nil
}

func (c *Client) GetSession() (*SessionInfo, error) {
	url := fmt.Sprintf("%s/api/sessions/%s", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionInfo
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &session, nil
}

func (c *Client) GetView() (*PlayerView, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/view?player=%d", c.baseURL, c.sessionID, c.player)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get view: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get view failed: %s - %s", resp.Status, string(body))
	}

	var view PlayerView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, fmt.Errorf("parse view: %w", err)
	}
	return &view, nil
}

func (c *Client) LegalActions() ([]json.RawMessage, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/actions?player=%d", c.baseURL, c.sessionID, c.player)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("legal actions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("legal actions failed: %s - %s", resp.Status, string(body))
	}

	var listing struct {
		Count   int               `json:"count"`
		Actions []json.RawMessage `json:"actions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("parse legal actions: %w", err)
	}
	return listing.Actions, nil
}

func (c *Client) Act(action json.RawMessage) (*ActionResult, error) {
	reqBody, err := json.Marshal(map[string]interface{}{"player": c.player, "action": action})
	if err != nil {
		return nil, fmt.Errorf("marshal action: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/action", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("submit action: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("action rejected: %s - %s", resp.Status, string(body))
	}

	var result ActionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse action result: %w", err)
	}
	return &result, nil
}

func (c *Client) Scores() (*ScoreBoard, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/scores", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get scores: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get scores failed: %s - %s", resp.Status, string(body))
	}

	var scores ScoreBoard
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return nil, fmt.Errorf("parse scores: %w", err)
	}
	return &scores, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	preset := flag.String("preset", "", "Board preset (empty = server default)")
	opponent := flag.String("opponent", "greedy", "Agent kind for the opposing seat (random, greedy, planner)")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	maxActions := flag.Int("max-actions", 2000, "Maximum actions before giving up")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between actions in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		// Use explicitly provided session
		savedSessionID = *continueSession
	} else {
		// Try to load saved session
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		// Resume existing session
		client.sessionID = savedSessionID
		log.Printf("Resuming session: %s", client.sessionID)
		session, err := client.GetSession()
		if err != nil {
			log.Printf("Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = "" // Force create new
		} else if session.GameOver {
			log.Printf("Saved session already finished, creating new session...")
			savedSessionID = ""
		} else {
			client.player = humanSeat(session.Seats)
			log.Printf("Session resumed - preset %s, round %d, playing seat %d",
				session.Preset, session.Round, client.player)
		}
	}

	if savedSessionID == "" {
		// Create new session
		session, err := client.CreateSession(*preset, []string{"human", *opponent})
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		client.player = humanSeat(session.Seats)
		log.Printf("Session created: %s (preset %s, seats %v)", session.ID, session.Preset, session.Seats)

		// Save session ID for next run
		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	// Play until the game ends or the action budget runs out
	actionCount := 0
	for actionCount < *maxActions {
		view, err := client.GetView()
		if err != nil {
			log.Fatalf("Failed to get view: %v", err)
		}
		if view.GameOver {
			break
		}
		if !view.YourTurn {
			// Agent seats advance automatically after our actions; a foreign
			// turn here means another client is playing. Wait it out.
			time.Sleep(500 * time.Millisecond)
			continue
		}

		actions, err := client.LegalActions()
		if err != nil {
			log.Fatalf("Failed to list legal actions: %v", err)
		}

		choice := pickAction(actions)
		if choice == nil {
			log.Printf("No legal actions available")
			break
		}

		if *verbose {
			log.Printf("Round %d: playing %s", view.Round, string(choice))
		}

		result, err := client.Act(choice)
		if err != nil {
			log.Fatalf("Action failed: %v", err)
		}
		actionCount++

		if *verbose {
			for _, step := range result.AgentSteps {
				log.Printf("  opponent seat %d (%s) acted", step.Player, step.Agent)
			}
		}
		if result.GameOver {
			break
		}

		// Add delay if specified
		if *delayMs > 0 {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
	}

	scores, err := client.Scores()
	if err != nil {
		log.Fatalf("Failed to get scores: %v", err)
	}

	log.Printf("Finished after %d actions (round %d, game over: %v)", actionCount, scores.Round, scores.GameOver)
	for _, entry := range scores.Scores {
		marker := ""
		if entry.AtFinish {
			marker = " (at finish)"
		}
		log.Printf("  seat %d (%s): %d%s", entry.Player, entry.Seat, entry.Score, marker)
	}

	if scores.GameOver && len(scores.Scores) > 0 && scores.Scores[0].Player == client.player {
		log.Printf("VICTORY! Session: %s", client.sessionID)
		os.Exit(0)
	}
	if !scores.GameOver {
		log.Printf("Ran out of action budget. Session: %s", client.sessionID)
		os.Exit(1)
	}
	log.Printf("Lost this one. Session: %s", client.sessionID)
	os.Exit(1)
}

// humanSeat returns the index of the first human seat, defaulting to 0.
func humanSeat(seats []string) int {
	for i, kind := range seats {
		if kind == "human" {
			return i
		}
	}
	return 0
}
