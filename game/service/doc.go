// Package service provides the business logic layer for the Durango
// expedition race game.
//
// The service package implements:
//   - Multi-session game management
//   - Seat assignment, mixing human players with automated agents
//   - Action processing with per-player view projection
//   - Session lifecycle management
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles session creation, retrieval, and
// lifecycle.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation and turn orchestration. Each
// session maintains its own engine state and randomness stream. Whenever an
// action hands the turn to an agent seat, the service plays agents forward
// until the game is back on a human seat or over, so callers only ever see
// the game waiting on them.
//
// Hidden information:
//
// Hands, deck order and undrawn cave tokens are private. PlayerView projects
// the full state down to what one seat may see: the viewer's own hand and
// tokens in full, opponents reduced to pile counts and public rewards.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	gameService := service.NewGameService(sessionMgr)
//
//	// Create a session: a human in seat 0 against a greedy agent
//	info, err := gameService.CreateSession(ctx, "first", []string{"human", "greedy"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Apply an action for seat 0
//	result, err := gameService.Act(ctx, info.ID, 0, actionJSON)
package service
