package engine

import (
	"fmt"
	"strings"
)

// CardAction is a special ability printed on a card instead of, or in
// addition to, movement pips.
type CardAction string

const (
	ActionNone         CardAction = ""
	ActionFreeBuy      CardAction = "free_buy"
	ActionFreeMove     CardAction = "free_move"
	ActionDraw         CardAction = "draw"
	ActionDrawAndTrash CardAction = "draw_and_trash"
)

// Card is a movement card. Movement is a capacity triple in
// [jungle, desert, water] order.
type Card struct {
	Movement  [3]int     `json:"movement"`
	SingleUse bool       `json:"single_use,omitempty"`
	Action    CardAction `json:"action,omitempty"`
	// ActionCount qualifies Draw / DrawAndTrash actions.
	ActionCount int `json:"action_count,omitempty"`
}

// GoldValue is the card's purchasing power: twice its desert movement,
// never less than one.
func (c Card) GoldValue() int {
	if v := 2 * c.Movement[1]; v > 1 {
		return v
	}
	return 1
}

// MaxMovement returns the card's largest movement capacity.
func (c Card) MaxMovement() int {
	m := c.Movement[0]
	if c.Movement[1] > m {
		m = c.Movement[1]
	}
	if c.Movement[2] > m {
		m = c.Movement[2]
	}
	return m
}

// HasDraw reports whether playing the card draws new cards.
func (c Card) HasDraw() bool {
	return c.Action == ActionDraw || c.Action == ActionDrawAndTrash
}

func (c Card) String() string {
	var b strings.Builder
	labels := [3]string{"J", "D", "W"}
	for i, v := range c.Movement {
		if v > 0 {
			fmt.Fprintf(&b, "%s%d", labels[i], v)
		}
	}
	if c.SingleUse {
		b.WriteString(" (1x)")
	}
	if c.Action != ActionNone {
		fmt.Fprintf(&b, " %s", c.Action)
		if c.ActionCount > 0 {
			fmt.Fprintf(&b, "(%d)", c.ActionCount)
		}
	}
	if b.Len() == 0 {
		return "blank"
	}
	return strings.TrimSpace(b.String())
}

// Starter cards dealt to every player.

// ExplorerCard moves one jungle hex.
func ExplorerCard() Card { return Card{Movement: [3]int{1, 0, 0}} }

// TravelerCard moves one desert hex.
func TravelerCard() Card { return Card{Movement: [3]int{0, 1, 0}} }

// SailorCard moves one water hex.
func SailorCard() Card { return Card{Movement: [3]int{0, 0, 1}} }

// BuyableCard is a shop or storage listing: a card with a cost and a
// remaining stock count.
type BuyableCard struct {
	Card     Card `json:"card"`
	Cost     int  `json:"cost"`
	Quantity int  `json:"quantity"`
}

func regularListing(cost int, movement [3]int) BuyableCard {
	return BuyableCard{Card: Card{Movement: movement}, Cost: cost, Quantity: 3}
}

func singleUseListing(cost int, movement [3]int) BuyableCard {
	return BuyableCard{Card: Card{Movement: movement, SingleUse: true}, Cost: cost, Quantity: 3}
}

func actionListing(cost int, action CardAction, count int, singleUse bool) BuyableCard {
	return BuyableCard{
		Card:     Card{Action: action, ActionCount: count, SingleUse: singleUse},
		Cost:     cost,
		Quantity: 3,
	}
}

// ShopSlots is the number of cards offered in the shop at once.
const ShopSlots = 6

// initialShop returns the six starting shop listings, cheapest first.
func initialShop() []BuyableCard {
	return []BuyableCard{
		regularListing(2, [3]int{2, 0, 0}),       // Scout
		regularListing(4, [3]int{1, 1, 1}),       // Jack of all trades
		regularListing(4, [3]int{0, 2, 0}),       // Photographer
		regularListing(6, [3]int{3, 0, 0}),       // Trailblazer
		singleUseListing(6, [3]int{0, 4, 0}),     // Treasure chest
		actionListing(8, ActionFreeBuy, 0, true), // Transmitter
	}
}

// initialStorage returns the storage listings, purchasable only while the
// shop has an open slot.
func initialStorage() []BuyableCard {
	return []BuyableCard{
		regularListing(6, [3]int{0, 3, 0}),             // Journalist
		regularListing(10, [3]int{0, 4, 0}),            // Millionaire
		regularListing(4, [3]int{0, 0, 3}),             // Captain
		regularListing(10, [3]int{5, 0, 0}),            // Pioneer
		singleUseListing(6, [3]int{6, 0, 0}),           // Giant machete
		regularListing(8, [3]int{2, 2, 2}),             // Adventurer
		singleUseListing(8, [3]int{4, 4, 4}),           // Propeller plane
		actionListing(4, ActionDraw, 3, true),          // Compass
		actionListing(8, ActionDraw, 2, false),         // Cartographer
		actionListing(8, ActionDrawAndTrash, 1, false), // Scientist
		actionListing(6, ActionDrawAndTrash, 2, true),  // Travel log
		actionListing(10, ActionFreeMove, 0, false),    // Native
	}
}
