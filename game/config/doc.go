// Package config provides server configuration for the Durango expedition
// race game.
//
// Configuration is a single YAML file covering the HTTP listener, the
// session storage backend (in-memory, JSON files or SQLite), defaults for
// newly created games and the optional ngrok tunnel. Every key has a
// sensible default; a missing file is not an error when loaded through
// LoadOrDefault, so the server runs with zero configuration.
//
// Example:
//
//	server:
//	  host: 0.0.0.0
//	  port: 8080
//	sessions:
//	  backend: sqlite
//	  sqlite_path: sessions.db
//	game:
//	  default_preset: first
//	  default_seats: [human, greedy]
//	ngrok:
//	  enabled: false
package config
