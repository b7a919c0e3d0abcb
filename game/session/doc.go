// Package session provides session management for the Durango expedition
// race game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Pluggable persistence backends (JSON files or SQLite)
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// SessionPersistence is the storage interface, implemented by FilePersistence
// (one JSON file per session) and SqlitePersistence (a single database).
//
// Session Identifiers:
//
// Sessions use short alphanumeric IDs for easy reference, generated from
// UUIDs. Lookups are case-insensitive.
//
// Persistence:
//
// A persisted session stores the full engine snapshot plus the seat
// assignment and preset name. The randomness stream cannot be serialized, so
// each save records a fresh seed and a restored session continues on a new
// stream; the game state itself round-trips exactly.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions")
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//
//	sess, err := manager.Create("", "first", []string{"human", "greedy"})
//	if err != nil {
//		log.Fatal(err)
//	}
package session
