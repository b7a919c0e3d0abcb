// Package engine provides the core game logic for the Durango expedition
// race game.
//
// The engine package implements the game mechanics including:
//   - Hex-map assembly from rotated board segments
//   - Movement over typed terrain, paid with cards and bonus tokens
//   - Barriers between segments, broken once by paying their cost
//   - A shop/storage card economy and per-cave bonus-token stacks
//   - Snapshot-based persistence and clone-based lookahead
//
// Core Types:
//
// GameState is the root of the engine and the single source of truth for
// legality and effects: ProcessAction is the only mutator, and every other
// method is a pure query. HexMap and HexGraph hold the immutable topology,
// Player holds one player's resources, and PlayerAction is the tagged set of
// the six actions a player can take.
//
// Usage:
//
//	rng := rand.New(rand.NewSource(seed))
//	game, err := engine.NewGame(2, layout, rng)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome, err := game.ProcessAction(engine.Move{
//		Cards: []int{0},
//		Path:  []engine.HexDirection{engine.East},
//	}, rng)
//
// Game Rules:
//
// Players race from the segment farthest from the finish toward the finish
// segment, drawing a four-card hand each turn. Cards move over jungle,
// desert and water, buy better cards from the shop, and pay the discard and
// trash costs of swamps and villages. Caves next to the path grant one-shot
// bonus tokens. The game ends when a player stands on the finish segment and
// every player has had an equal number of turns.
package engine
