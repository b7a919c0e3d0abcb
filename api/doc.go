// Package api provides HTTP REST API handlers for the Durango expedition
// race game.
//
// The api package implements:
//   - Session management endpoints (create, get, list, delete)
//   - Per-seat game views and action submission
//   - Legal-action enumeration and score boards
//   - Preset discovery and health checks
//   - WebSocket upgrade with per-seat state push
//
// Endpoints:
//
//	POST   /api/sessions              create a session {preset, seats}
//	GET    /api/sessions              list sessions (sort, order, limit)
//	GET    /api/sessions/{id}         session info
//	DELETE /api/sessions/{id}         drop a session
//	GET    /api/sessions/{id}/view    view for ?player=N
//	POST   /api/sessions/{id}/action  apply {player, action}
//	GET    /api/sessions/{id}/actions legal actions for ?player=N
//	GET    /api/sessions/{id}/scores  standings
//	GET    /api/presets               available board layouts
//	GET    /api/health                liveness probe
//	GET    /ws                        WebSocket (?session=ID&player=N)
//
// Actions use the engine's JSON envelope, e.g.:
//
//	{"player": 0, "action": {"type": "move", "action": {"cards": [0], "path": ["E"]}}}
//
// Status codes: 404 for unknown sessions, 409 for out-of-turn or agent-seat
// submissions, 422 for actions the rules reject, 400 for malformed requests.
package api
