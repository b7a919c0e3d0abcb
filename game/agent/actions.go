package agent

import (
	"math/rand"

	"github.com/wricardo/durango/game/engine"
)

// CandidateActions proposes plausible actions for the current player without
// validating them. The engine re-validates everything, so over-generating is
// harmless; LegalActions filters the list through cloned games.
func CandidateActions(g *engine.GameState) []engine.PlayerAction {
	p := g.Player(g.CurrPlayer())
	var out []engine.PlayerAction

	for _, d := range engine.AllDirections {
		// A bare step is a cave visit.
		out = append(out, engine.Move{Path: []engine.HexDirection{d}})
		for ci, c := range p.Hand {
			out = append(out, engine.Move{Cards: []int{ci}, Path: []engine.HexDirection{d}})
			if c.MaxMovement() >= 2 {
				for _, d2 := range engine.AllDirections {
					out = append(out, engine.Move{Cards: []int{ci}, Path: []engine.HexDirection{d, d2}})
				}
			}
		}
		for ti := range p.Tokens {
			out = append(out, engine.Move{Tokens: []int{ti}, Path: []engine.HexDirection{d}})
		}
	}

	// Purchases paid with the whole hand. Overpaying is legal, so this finds
	// every listing the hand can afford at all.
	if len(p.Hand) > 0 {
		allCards := make([]int, len(p.Hand))
		for i := range allCards {
			allCards[i] = i
		}
		for i := range g.Shop() {
			out = append(out, engine.BuyCard{Cards: allCards, Source: engine.BuyFromShop, Index: i})
		}
		for i := range g.Storage() {
			out = append(out, engine.BuyCard{Cards: allCards, Source: engine.BuyFromStorage, Index: i})
		}
	}

	for ci, c := range p.Hand {
		if c.HasDraw() {
			idx := ci
			out = append(out, engine.Draw{Card: &idx})
		}
	}
	for ti, tok := range p.Tokens {
		switch tok.Kind {
		case engine.TokenDrawCard, engine.TokenTrashCard, engine.TokenReplaceHand:
			idx := ti
			out = append(out, engine.Draw{Token: &idx})
		}
	}

	if p.Trashes > 0 && len(p.Hand) > 0 {
		out = append(out, engine.Trash{Cards: []int{0}})
	}
	for ci := range p.Hand {
		out = append(out, engine.Discard{Cards: []int{ci}})
	}

	out = append(out, engine.FinishTurn{})
	return out
}

// LegalActions returns the candidates the engine accepts, each verified on a
// throwaway clone.
func LegalActions(g *engine.GameState, rng *rand.Rand) []engine.PlayerAction {
	var legal []engine.PlayerAction
	for _, a := range CandidateActions(g) {
		if _, err := g.Clone().ProcessAction(a, rand.New(rand.NewSource(rng.Int63()))); err == nil {
			legal = append(legal, a)
		}
	}
	return legal
}

// apply runs an action on a clone and returns it, or nil when illegal.
func apply(g *engine.GameState, a engine.PlayerAction, rng *rand.Rand) *engine.GameState {
	c := g.Clone()
	if _, err := c.ProcessAction(a, rand.New(rand.NewSource(rng.Int63()))); err != nil {
		return nil
	}
	return c
}

// scoreOf returns a player's current score, or a large negative value when
// the game cannot be scored.
func scoreOf(g *engine.GameState, player int) int {
	scores, err := g.PlayerScores()
	if err != nil {
		return -1 << 30
	}
	return scores[player]
}
