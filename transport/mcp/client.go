package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/durango/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Durango Expedition Race",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Durango Expedition Race - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Race across a chain of hex boards toward the finish board. Pay for steps
with expedition cards, buy stronger cards from the shop, collect bonus
tokens from caves and break barriers between boards for extra points.

AVAILABLE TOOLS:
- create_session: Start a game, choosing a board preset and who sits where
- list_sessions: List all active sessions
- get_session: Get session details
- delete_session: Drop a session
- player_view: See the game from one seat (your hand, everyone's positions)
- do_action: Submit an action for a human seat - requires intent explanation
- legal_actions: Enumerate every action a seat could legally take right now
- scores: Current standings
- list_presets: Available board layouts
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on do_action serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with a board preset and seat assignment",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"preset": map[string]interface{}{
					"type":        "string",
					"description": "Board preset name (optional, see list_presets)",
				},
				"seats": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Who plays each seat: 'human', 'random', 'greedy' or 'planner' (optional, defaults to human vs greedy)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details about a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleDeleteSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "player_view",
		Description: "Get the game state as seen from one seat: your own hand and tokens, opponents' public information, shop, barriers and caves",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"player": map[string]interface{}{
					"type":        "integer",
					"description": "Seat index (0-based)",
				},
			},
			Required: []string{"session_id", "player"},
		},
	}, c.handlePlayerView)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "do_action",
		Description: "Submit an action for a human seat. The action is a type-tagged object, e.g. {\"type\":\"move\",\"action\":{\"cards\":[0],\"path\":[\"E\"]}} or {\"type\":\"finish_turn\"}. Agent seats then play automatically until it is a human's turn again.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"player": map[string]interface{}{
					"type":        "integer",
					"description": "Seat index (0-based)",
				},
				"action": map[string]interface{}{
					"type":        "object",
					"description": "Type-tagged action envelope: buy_card, move, draw, trash, discard or finish_turn",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Explain why you are taking this action (rubber duck debugging)",
				},
			},
			Required: []string{"session_id", "player", "action", "intent"},
		},
	}, c.handleDoAction)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "legal_actions",
		Description: "Enumerate every action the given seat could legally take right now, in do_action envelope form",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"player": map[string]interface{}{
					"type":        "integer",
					"description": "Seat index (0-based)",
				},
			},
			Required: []string{"session_id", "player"},
		},
	}, c.handleLegalActions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "scores",
		Description: "Get the current standings for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleScores)

	// Configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_presets",
		Description: "List the available board layouts",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
		},
	}, c.handleListPresets)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	preset, _ := args["preset"].(string)
	seatsRaw, _ := args["seats"].([]interface{})

	seats := make([]string, 0, len(seatsRaw))
	for _, s := range seatsRaw {
		if seat, ok := s.(string); ok {
			seats = append(seats, seat)
		}
	}

	body := map[string]interface{}{}
	if preset != "" {
		body["preset"] = preset
	}
	if len(seats) > 0 {
		body["seats"] = seats
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPreset: %s\nSeats: %s\nWaiting on player %d\n",
		session.ID, session.Preset, strings.Join(session.Seats, ", "), session.CurrPlayer)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Preset: %s, Seats: %s, Round: %d, Created: %s)\n",
			s.ID, s.Preset, strings.Join(s.Seats, "/"), s.Round, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	if err := c.apiCall("DELETE", fmt.Sprintf("/api/sessions/%s", sessionID), nil, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted session %s", sessionID)), nil
}

func (c *Client) handlePlayerView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	player, _ := args["player"].(float64)

	var view service.PlayerView
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/view?player=%d", sessionID, int(player)), nil, &view)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPlayerView(&view)), nil
}

func (c *Client) handleDoAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	player, _ := args["player"].(float64)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	actionRaw, err := json.Marshal(args["action"])
	if err != nil {
		return mcp.NewToolResultError("action is not valid JSON: " + err.Error()), nil
	}

	body := map[string]interface{}{
		"player": int(player),
		"action": json.RawMessage(actionRaw),
	}

	var result service.ActionResult
	err = c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/action", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleLegalActions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	player, _ := args["player"].(float64)

	var response struct {
		Count   int               `json:"count"`
		Actions []json.RawMessage `json:"actions"`
	}
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/actions?player=%d", sessionID, int(player)), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Legal actions (%d):\n", response.Count)
	for i, a := range response.Actions {
		result += fmt.Sprintf("%d. %s\n", i+1, string(a))
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var scores service.ScoreBoard
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/scores", sessionID), nil, &scores)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatScores(&scores)), nil
}

func (c *Client) handleListPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                  `json:"count"`
		Presets []service.PresetInfo `json:"presets"`
	}

	err := c.apiCall("GET", "/api/presets", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Available Presets (%d):\n\n", response.Count)
	for _, p := range response.Presets {
		result += fmt.Sprintf("- %s: %d boards, %d hexes, %d caves, start distance %d\n",
			p.Name, p.Segments, p.HexCount, p.CaveCount, p.MaxDist)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameInstructions), nil
}

// Formatting helpers

func formatSessionInfo(s *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", s.ID)
	fmt.Fprintf(&b, "Preset: %s\n", s.Preset)
	fmt.Fprintf(&b, "Seats: %s\n", strings.Join(s.Seats, ", "))
	fmt.Fprintf(&b, "Round: %d\n", s.Round)
	if s.GameOver {
		b.WriteString("Status: game over\n")
	} else {
		fmt.Fprintf(&b, "Status: waiting on player %d\n", s.CurrPlayer)
	}
	fmt.Fprintf(&b, "Created: %s\n", s.CreatedAt.Format(time.RFC3339))
	return b.String()
}

func formatPlayerView(v *service.PlayerView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s, round %d, seen from seat %d\n", v.SessionID, v.Round, v.Player)
	if v.GameOver {
		b.WriteString("GAME OVER\n")
	} else if v.YourTurn {
		b.WriteString("It is YOUR turn.\n")
	} else {
		fmt.Fprintf(&b, "Waiting on player %d.\n", v.CurrPlayer)
	}

	b.WriteString("\nYour hand:\n")
	for i, card := range v.Hand {
		fmt.Fprintf(&b, "  [%d] %s\n", i, card)
	}
	if len(v.Tokens) > 0 {
		b.WriteString("Your tokens:\n")
		for i, tok := range v.Tokens {
			if tok.Value > 0 {
				fmt.Fprintf(&b, "  [%d] %s %d\n", i, tok.Kind, tok.Value)
			} else {
				fmt.Fprintf(&b, "  [%d] %s\n", i, tok.Kind)
			}
		}
	}
	fmt.Fprintf(&b, "Trash allowance: %d, may buy: %t\n", v.Trashes, v.CanBuy)

	b.WriteString("\nPlayers:\n")
	for _, p := range v.Players {
		fmt.Fprintf(&b, "  %d (%s) at %s - hand %d, deck %d, discard %d, tokens %d, barriers broken %d\n",
			p.Index, p.Seat, p.Position, p.HandCount, p.DeckCount, p.DiscardCount, p.TokenCount, len(p.BrokenBarriers))
	}

	b.WriteString("\nShop:\n")
	for i, listing := range v.Shop {
		fmt.Fprintf(&b, "  [%d] %s - cost %d, %d left\n", i, listing.Card, listing.Cost, listing.Quantity)
	}
	if len(v.Storage) > 0 {
		fmt.Fprintf(&b, "Storage: %d listings waiting for a shop slot\n", len(v.Storage))
	}

	if len(v.Barriers) > 0 {
		b.WriteString("\nBarriers:\n")
		for _, barrier := range v.Barriers {
			fmt.Fprintf(&b, "  boards %d-%d: %s %d\n", barrier.FromBoard, barrier.ToBoard, barrier.Terrain, barrier.Cost)
		}
	}
	if len(v.Caves) > 0 {
		b.WriteString("Caves:\n")
		for _, cave := range v.Caves {
			fmt.Fprintf(&b, "  %s: %d tokens left\n", cave.Coord, cave.TokensLeft)
		}
	}

	return b.String()
}

func formatActionResult(r *service.ActionResult) string {
	var b strings.Builder
	b.WriteString("Action applied.\n")
	if r.IgnoredStep >= 0 {
		fmt.Fprintf(&b, "Path step %d held position (cave visit or barrier break).\n", r.IgnoredStep)
	}
	for _, step := range r.AgentSteps {
		fmt.Fprintf(&b, "Agent %s (player %d) played: %s\n", step.Agent, step.Player, string(step.Action))
	}
	if r.GameOver {
		b.WriteString("THE GAME IS OVER. Use the scores tool for final standings.\n")
	}
	if r.View != nil {
		b.WriteString("\n")
		b.WriteString(formatPlayerView(r.View))
	}
	return b.String()
}

func formatScores(s *service.ScoreBoard) string {
	var b strings.Builder
	if s.GameOver {
		fmt.Fprintf(&b, "Final standings for %s:\n", s.SessionID)
	} else {
		fmt.Fprintf(&b, "Standings for %s after round %d:\n", s.SessionID, s.Round)
	}
	for rank, entry := range s.Scores {
		marker := ""
		if entry.AtFinish {
			marker = " (at finish)"
		}
		fmt.Fprintf(&b, "%d. player %d (%s): %d points%s\n", rank+1, entry.Player, entry.Seat, entry.Score, marker)
	}
	return b.String()
}

const gameInstructions = `DURANGO EXPEDITION RACE - RULES

GOAL
Race your expedition across a chain of hex boards and reach the finish
board. When any player stands on the finish board at the end of a round the
game ends; score is distance covered plus 1 per broken barrier, with a big
bonus for finishing.

TURNS
On your turn you may take any number of actions, then finish_turn. Your hand
refills to 4 cards and your single-use purchases from this turn become
available again.

MOVEMENT (move)
Pay for steps with one movement card (or token). Cards carry movement for
jungle/desert/water terrain; all steps of one move must use the same
movement kind. Swamps and villages instead cost extra cards: swamp payments
are discarded, village payments are trashed permanently. Stepping toward an
adjacent cave (a path of exactly one step) grants a bonus token without
moving you; each cave pays out once per stay.

BARRIERS
Barriers block every edge between two neighboring boards. Crossing one
first requires a break: pay the barrier's terrain cost; your pawn holds
position for that step and the barrier is gone for everyone. Each broken
barrier is worth a point to the player who broke it.

BUYING (buy_card)
Pay with the gold value of hand cards and desert tokens. Each card's gold
value is twice its desert movement (minimum 1). One purchase per turn,
unless a free-buy card overrides the price. Storage listings need an open
shop slot: the storage card takes the slot you empty.

DRAW EFFECTS (draw)
Some cards and tokens draw extra cards, grant trash allowance, or replace
your whole hand. Single-use cards are trashed after use unless a double-use
token spares them.

OTHER ACTIONS
trash: permanently remove hand cards (needs trash allowance).
discard: discard hand cards freely.
finish_turn: end your turn.

TIPS
- Check legal_actions when unsure what the rules allow.
- Trashing weak starter cards makes every refill stronger.
- Cave tokens are free value: route past caves when the detour is cheap.`
