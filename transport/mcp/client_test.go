package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wricardo/durango/api"
	"github.com/wricardo/durango/game/service"
	"github.com/wricardo/durango/game/session"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":     "test-session",
		"preset": "first",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_createSession(t *testing.T) {
	// Mock server that responds to session creation
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.SessionInfo{
			ID:        "test-session-123",
			Preset:    "first",
			Seats:     []string{"human", "greedy"},
			CreatedAt: time.Now(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_session",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateSession(ctx, request)
	if err != nil {
		t.Fatalf("handleCreateSession failed: %v", err)
	}
	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	if !strings.Contains(resultStr.Text, "test-session-123") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}
}

// newGameStack spins up the real REST server so the MCP tools are exercised
// end-to-end.
func newGameStack(t *testing.T) *Client {
	t.Helper()
	mgr := session.NewManager()
	svc := service.NewGameService(mgr)
	server := httptest.NewServer(api.NewServer(svc, nil))
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) string {
	t.Helper()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	if result.IsError {
		text, _ := result.Content[0].(mcp.TextContent)
		t.Fatalf("%s returned tool error: %s", name, text.Text)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("%s: expected text content", name)
	}
	return text.Text
}

func TestClient_fullGameFlow(t *testing.T) {
	client := newGameStack(t)

	created := callTool(t, client.handleCreateSession, "create_session", map[string]interface{}{
		"preset": "first",
		"seats":  []interface{}{"human", "human"},
	})
	if !strings.Contains(created, "Preset: first") {
		t.Errorf("Expected preset in response, got: %s", created)
	}

	// Extract the session ID from the first line
	line := strings.SplitN(created, "\n", 2)[0]
	sessionID := strings.TrimPrefix(line, "Created session: ")
	if sessionID == line {
		t.Fatalf("Could not find session ID in: %s", created)
	}

	view := callTool(t, client.handlePlayerView, "player_view", map[string]interface{}{
		"session_id": sessionID,
		"player":     float64(0),
	})
	if !strings.Contains(view, "Your hand:") || !strings.Contains(view, "YOUR turn") {
		t.Errorf("Unexpected view output: %s", view)
	}

	legal := callTool(t, client.handleLegalActions, "legal_actions", map[string]interface{}{
		"session_id": sessionID,
		"player":     float64(0),
	})
	if !strings.Contains(legal, "finish_turn") {
		t.Errorf("Expected finish_turn among legal actions, got: %s", legal)
	}

	acted := callTool(t, client.handleDoAction, "do_action", map[string]interface{}{
		"session_id": sessionID,
		"player":     float64(0),
		"action":     map[string]interface{}{"type": "finish_turn"},
		"intent":     "end the turn to exercise the pipeline",
	})
	if !strings.Contains(acted, "Action applied") {
		t.Errorf("Unexpected action output: %s", acted)
	}

	scores := callTool(t, client.handleScores, "scores", map[string]interface{}{
		"session_id": sessionID,
	})
	if !strings.Contains(scores, "player 0") {
		t.Errorf("Unexpected scores output: %s", scores)
	}

	listed := callTool(t, client.handleListSessions, "list_sessions", nil)
	if !strings.Contains(listed, sessionID) {
		t.Errorf("Expected session in listing, got: %s", listed)
	}

	presets := callTool(t, client.handleListPresets, "list_presets", nil)
	if !strings.Contains(presets, "first") {
		t.Errorf("Expected first preset in listing, got: %s", presets)
	}

	deleted := callTool(t, client.handleDeleteSession, "delete_session", map[string]interface{}{
		"session_id": sessionID,
	})
	if !strings.Contains(deleted, "Deleted") {
		t.Errorf("Unexpected delete output: %s", deleted)
	}
}

func TestClient_doActionRejected(t *testing.T) {
	client := newGameStack(t)

	created := callTool(t, client.handleCreateSession, "create_session", map[string]interface{}{
		"preset": "first",
		"seats":  []interface{}{"human", "human"},
	})
	line := strings.SplitN(created, "\n", 2)[0]
	sessionID := strings.TrimPrefix(line, "Created session: ")

	// Player 1 acting out of turn must surface as a tool error, not a Go error
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "do_action",
			Arguments: map[string]interface{}{
				"session_id": sessionID,
				"player":     float64(1),
				"action":     map[string]interface{}{"type": "finish_turn"},
				"intent":     "acting out of turn on purpose",
			},
		},
	}

	result, err := client.handleDoAction(context.Background(), request)
	if err != nil {
		t.Fatalf("handleDoAction returned Go error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected tool error for out-of-turn action")
	}
}

func TestFormatScores(t *testing.T) {
	board := &service.ScoreBoard{
		SessionID: "game1",
		Round:     3,
		GameOver:  true,
		Scores: []service.ScoreEntry{
			{Player: 1, Seat: "greedy", Score: 1007, AtFinish: true},
			{Player: 0, Seat: "human", Score: 4},
		},
	}

	result := formatScores(board)

	for _, field := range []string{"Final standings", "player 1 (greedy): 1007 points (at finish)", "player 0 (human): 4 points"} {
		if !strings.Contains(result, field) {
			t.Errorf("Expected %q in formatted output, got: %s", field, result)
		}
	}
}

func TestGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:0")

	text := callTool(t, client.handleGameInstructions, "game_instructions", nil)
	for _, field := range []string{"GOAL", "MOVEMENT", "BARRIERS", "finish_turn"} {
		if !strings.Contains(text, field) {
			t.Errorf("Expected %q in instructions", field)
		}
	}
}
