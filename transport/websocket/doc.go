// Package websocket provides WebSocket transport for the Durango expedition
// race game.
//
// The websocket package implements:
//   - Real-time per-seat game state push
//   - Session-scoped client management
//   - Connection lifecycle with ping/pong keepalives
//
// Clients subscribe to one seat of one session. After every processed action
// the server calls BroadcastViews, which builds a PlayerView per subscribed
// seat and sends each client only the view its seat is allowed to see; hands
// and undrawn tokens of other players are never sent over the wire.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// In an HTTP handler, after resolving session and seat:
//	hub.ServeWS(w, r, sessionID, player)
//
//	// After an action mutates a game:
//	hub.BroadcastViews(sessionID, func(player int) *service.PlayerView {
//		view, err := gameService.View(ctx, sessionID, player)
//		if err != nil {
//			return nil
//		}
//		return view
//	})
package websocket
