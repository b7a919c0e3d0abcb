package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/durango/game/service"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}
	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}
	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		player:    0,
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)

	if _, exists := hub.sessions["test-session"]; !exists {
		t.Error("Session was not created")
	}
	if !hub.sessions["test-session"][client] {
		t.Error("Client was not registered in session")
	}
	if len(hub.sessions["test-session"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.sessions["test-session"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		player:    0,
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Empty session was not cleaned up")
	}

	// Channel must be closed after unregister
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("Expected send channel to be closed")
		}
	default:
		t.Error("Expected send channel to be closed, but it would block")
	}
}

func TestBroadcastViewsPerSeat(t *testing.T) {
	hub := NewHub()

	seat0 := &Client{hub: hub, sessionID: "game1", player: 0, send: make(chan []byte, 4)}
	seat1 := &Client{hub: hub, sessionID: "game1", player: 1, send: make(chan []byte, 4)}
	other := &Client{hub: hub, sessionID: "game2", player: 0, send: make(chan []byte, 4)}
	hub.registerClient(seat0)
	hub.registerClient(seat1)
	hub.registerClient(other)

	hub.BroadcastViews("game1", func(player int) *service.PlayerView {
		return &service.PlayerView{SessionID: "game1", Player: player}
	})

	for _, client := range []*Client{seat0, seat1} {
		select {
		case data := <-client.send:
			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("Failed to unmarshal message: %v", err)
			}
			if msg.Event != "state_update" {
				t.Errorf("Expected state_update event, got %q", msg.Event)
			}
			if msg.View == nil || msg.View.Player != client.player {
				t.Errorf("Expected view for seat %d, got %+v", client.player, msg.View)
			}
		default:
			t.Errorf("Expected seat %d to receive a view", client.player)
		}
	}

	select {
	case <-other.send:
		t.Error("Expected other session's client to receive nothing")
	default:
	}
}

func TestBroadcastViewsDropsSlowClient(t *testing.T) {
	hub := NewHub()

	// Unbuffered channel with no reader simulates a stalled client
	slow := &Client{hub: hub, sessionID: "game1", player: 0, send: make(chan []byte)}
	hub.registerClient(slow)

	hub.BroadcastViews("game1", func(player int) *service.PlayerView {
		return &service.PlayerView{SessionID: "game1", Player: player}
	})

	if _, exists := hub.sessions["game1"]; exists {
		t.Error("Expected stalled client to be dropped")
	}
}

func TestServeWSRoundTrip(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, "game1", 0)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial WebSocket: %v", err)
	}
	defer conn.Close()

	// Wait for the register to land in the hub's loop
	deadline := time.Now().Add(2 * time.Second)
	for {
		hub.mu.Lock()
		registered := len(hub.sessions["game1"]) == 1
		hub.mu.Unlock()
		if registered {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.BroadcastEvent("game1", "game_over", map[string]int{"winner": 0})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if msg.Event != "game_over" {
		t.Errorf("Expected game_over event, got %q", msg.Event)
	}
	if msg.SessionID != "game1" {
		t.Errorf("Expected session game1, got %q", msg.SessionID)
	}
}
