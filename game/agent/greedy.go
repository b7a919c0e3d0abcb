package agent

import (
	"math/rand"

	"github.com/wricardo/durango/game/engine"
)

// Greedy takes the single action with the best immediate score gain. When no
// action gains ground it buys, then draws, then ends the turn.
type Greedy struct{}

// Name implements Agent.
func (*Greedy) Name() string { return "greedy" }

// ChooseAction implements Agent.
func (*Greedy) ChooseAction(g *engine.GameState, rng *rand.Rand) engine.PlayerAction {
	me := g.CurrPlayer()
	base := scoreOf(g, me)
	legal := LegalActions(g, rng)

	var best engine.PlayerAction
	bestGain := 0
	for _, a := range legal {
		if _, done := a.(engine.FinishTurn); done {
			continue
		}
		next := apply(g, a, rng)
		if next == nil {
			continue
		}
		if gain := scoreOf(next, me) - base; gain > bestGain {
			best, bestGain = a, gain
		}
	}
	if best != nil {
		return best
	}

	// No ground to gain: invest in the deck instead.
	for _, a := range legal {
		if buy, ok := a.(engine.BuyCard); ok {
			return buy
		}
	}
	for _, a := range legal {
		if draw, ok := a.(engine.Draw); ok {
			return draw
		}
	}
	return engine.FinishTurn{}
}
