// Package agent provides computer players for the game: strategy
// implementations behind a single capability interface, kept entirely
// outside the engine. Agents never mutate the game they are shown; they
// explore futures on clones and return the action they picked.
package agent

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/wricardo/durango/game/engine"
)

// Agent chooses the next action for the current player of a game.
type Agent interface {
	ChooseAction(g *engine.GameState, rng *rand.Rand) engine.PlayerAction
	Name() string
}

// New creates an agent by strategy name: "random", "greedy" or "planner".
func New(kind string) (Agent, error) {
	switch strings.ToLower(kind) {
	case "random":
		return &Random{}, nil
	case "greedy":
		return &Greedy{}, nil
	case "planner":
		return &Planner{Depth: 2}, nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", kind)
}

// Random picks uniformly among the legal actions. Turns still terminate:
// every action either consumes a resource or ends the turn, and FinishTurn
// is always on the menu.
type Random struct{}

// Name implements Agent.
func (*Random) Name() string { return "random" }

// ChooseAction implements Agent.
func (*Random) ChooseAction(g *engine.GameState, rng *rand.Rand) engine.PlayerAction {
	legal := LegalActions(g, rng)
	if len(legal) == 0 {
		return engine.FinishTurn{}
	}
	return legal[rng.Intn(len(legal))]
}
