package engine

import (
	"math/rand"
	"sort"
)

// HandSize is the hand a player refills to at the end of every turn.
const HandSize = 4

// Player is one player's full resource state. Cards cycle deck -> hand ->
// played/discard -> deck; the total count only drops on a permanent trash.
type Player struct {
	Position AxialCoord `json:"position"`

	Deck    []Card `json:"deck"`
	Hand    []Card `json:"hand"`
	Played  []Card `json:"played"`
	Discard []Card `json:"discard"`

	Tokens []BonusToken `json:"tokens,omitempty"`

	// Per-turn counters, reset by FinishTurn.
	Trashes int  `json:"trashes"`
	CanBuy  bool `json:"can_buy"`

	// VisitedCaves remembers caves rewarded during the current stay next to
	// them; entries are dropped once the player is no longer adjacent.
	VisitedCaves []AxialCoord `json:"visited_caves,omitempty"`

	BrokenBarriers []BrokenBarrier `json:"broken_barriers,omitempty"`
}

// starterDeck is the eight-card deck every player begins with.
func starterDeck() []Card {
	deck := make([]Card, 0, 8)
	for i := 0; i < 3; i++ {
		deck = append(deck, ExplorerCard())
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, TravelerCard())
	}
	deck = append(deck, SailorCard())
	return deck
}

// newPlayer deals a shuffled starter deck and draws the opening hand.
func newPlayer(position AxialCoord, rng *rand.Rand) *Player {
	p := &Player{
		Position: position,
		Deck:     starterDeck(),
		CanBuy:   true,
	}
	rng.Shuffle(len(p.Deck), func(i, j int) { p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i] })
	p.fillHand(rng)
	return p
}

// CardCount returns the player's total card count across all four piles.
func (p *Player) CardCount() int {
	return len(p.Deck) + len(p.Hand) + len(p.Played) + len(p.Discard)
}

// takeHandCards removes the given hand indices (which must be strictly
// increasing) and returns the removed cards in the order referenced.
func (p *Player) takeHandCards(indices []int) []Card {
	taken := make([]Card, len(indices))
	for i, idx := range indices {
		taken[i] = p.Hand[idx]
	}
	for i := len(indices) - 1; i >= 0; i-- {
		idx := indices[i]
		p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	}
	return taken
}

// takeTokens removes the given token indices (strictly increasing) and
// returns the removed tokens in the order referenced.
func (p *Player) takeTokens(indices []int) []BonusToken {
	taken := make([]BonusToken, len(indices))
	for i, idx := range indices {
		taken[i] = p.Tokens[idx]
	}
	for i := len(indices) - 1; i >= 0; i-- {
		idx := indices[i]
		p.Tokens = append(p.Tokens[:idx], p.Tokens[idx+1:]...)
	}
	return taken
}

// drawCards moves up to n cards from the deck to the hand, reshuffling the
// discard pile into the deck when the deck runs dry. A drained deck and
// discard end the draw short.
func (p *Player) drawCards(n int, rng *rand.Rand) {
	for i := 0; i < n; i++ {
		if len(p.Deck) == 0 {
			if len(p.Discard) == 0 {
				return
			}
			p.Deck = p.Discard
			p.Discard = nil
			rng.Shuffle(len(p.Deck), func(i, j int) { p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i] })
		}
		p.Hand = append(p.Hand, p.Deck[len(p.Deck)-1])
		p.Deck = p.Deck[:len(p.Deck)-1]
	}
}

// fillHand draws until the hand holds HandSize cards.
func (p *Player) fillHand(rng *rand.Rand) {
	if len(p.Hand) < HandSize {
		p.drawCards(HandSize-len(p.Hand), rng)
	}
}

// finishTurn flushes played cards to the discard pile, refills the hand, and
// resets the per-turn counters.
func (p *Player) finishTurn(rng *rand.Rand) {
	p.Discard = append(p.Discard, p.Played...)
	p.Played = nil
	p.fillHand(rng)
	p.Trashes = 0
	p.CanBuy = true
}

// hasVisitedCave reports whether the player already collected the cave at
// coord during the current stay.
func (p *Player) hasVisitedCave(coord AxialCoord) bool {
	for _, c := range p.VisitedCaves {
		if c == coord {
			return true
		}
	}
	return false
}

// dropStaleCaves forgets visited caves the player is no longer adjacent to,
// re-arming them for a later return.
func (p *Player) dropStaleCaves() {
	kept := p.VisitedCaves[:0]
	for _, c := range p.VisitedCaves {
		if p.Position.IsAdjacent(c) {
			kept = append(kept, c)
		}
	}
	p.VisitedCaves = kept
	if len(p.VisitedCaves) == 0 {
		p.VisitedCaves = nil
	}
}

// clone returns a fully independent copy of the player.
func (p *Player) clone() *Player {
	c := &Player{
		Position: p.Position,
		Trashes:  p.Trashes,
		CanBuy:   p.CanBuy,
	}
	c.Deck = append([]Card(nil), p.Deck...)
	c.Hand = append([]Card(nil), p.Hand...)
	c.Played = append([]Card(nil), p.Played...)
	c.Discard = append([]Card(nil), p.Discard...)
	c.Tokens = append([]BonusToken(nil), p.Tokens...)
	c.VisitedCaves = append([]AxialCoord(nil), p.VisitedCaves...)
	c.BrokenBarriers = append([]BrokenBarrier(nil), p.BrokenBarriers...)
	return c
}

// validIndices reports whether indices are strictly increasing, deduplicated
// and within [0, length).
func validIndices(indices []int, length int) bool {
	if !sort.IntsAreSorted(indices) {
		return false
	}
	for i, idx := range indices {
		if idx < 0 || idx >= length {
			return false
		}
		if i > 0 && indices[i-1] == idx {
			return false
		}
	}
	return true
}
