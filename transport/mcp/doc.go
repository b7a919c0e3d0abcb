// Package mcp provides a Model Context Protocol server for the Durango
// expedition race game.
//
// The mcp package implements:
//   - A thin MCP client that proxies every tool call to the REST API
//   - Tools for session management, per-seat views, action submission,
//     legal-action enumeration, standings and rules
//   - Human-readable rendering of views and results for LLM consumption
//
// The client deliberately holds no game state: it formats REST responses as
// text so any MCP host (stdio or SSE) can drive a human seat of a running
// game server. Seat privacy is enforced by the API layer; the MCP tools only
// ever see what the requested seat may see.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
