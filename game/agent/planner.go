package agent

import (
	"math/rand"

	"github.com/wricardo/durango/game/engine"
)

// Planner searches action sequences within the current turn on cloned games
// and plays the first action of the best sequence found. Depth bounds the
// sequence length; the search never shares state with the real game.
type Planner struct {
	Depth int
}

// Name implements Agent.
func (*Planner) Name() string { return "planner" }

// ChooseAction implements Agent.
func (p *Planner) ChooseAction(g *engine.GameState, rng *rand.Rand) engine.PlayerAction {
	depth := p.Depth
	if depth < 1 {
		depth = 1
	}
	me := g.CurrPlayer()
	base := scoreOf(g, me)

	var best engine.PlayerAction
	bestValue := base
	for _, a := range LegalActions(g, rng) {
		if _, done := a.(engine.FinishTurn); done {
			continue
		}
		next := apply(g, a, rng)
		if next == nil {
			continue
		}
		if v := p.search(next, me, depth-1, rng); v > bestValue {
			best, bestValue = a, v
		}
	}
	if best != nil {
		return best
	}
	// Nothing in reach improves the position this turn.
	return (&Greedy{}).ChooseAction(g, rng)
}

// search returns the best own score reachable within depth further actions.
func (p *Planner) search(g *engine.GameState, me, depth int, rng *rand.Rand) int {
	best := scoreOf(g, me)
	if depth == 0 || g.CurrPlayer() != me {
		return best
	}
	for _, a := range LegalActions(g, rng) {
		if _, done := a.(engine.FinishTurn); done {
			continue
		}
		next := apply(g, a, rng)
		if next == nil {
			continue
		}
		if v := p.search(next, me, depth-1, rng); v > best {
			best = v
		}
	}
	return best
}
