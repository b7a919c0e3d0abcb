package engine

// BonusTokenKind identifies the effect of a cave bonus token.
type BonusTokenKind string

const (
	TokenJungle      BonusTokenKind = "jungle"       // typed movement boost
	TokenDesert      BonusTokenKind = "desert"       // typed movement boost, doubles as gold
	TokenWater       BonusTokenKind = "water"        // typed movement boost
	TokenDrawCard    BonusTokenKind = "draw_card"    // draw one card
	TokenTrashCard   BonusTokenKind = "trash_card"   // +1 trash allowance
	TokenReplaceHand BonusTokenKind = "replace_hand" // discard hand, draw replacements
	TokenDoubleUse   BonusTokenKind = "double_use"   // spare a single-use card from the trash
	TokenShareHex    BonusTokenKind = "share_hex"    // end a move on an occupied hex
	TokenFreeMove    BonusTokenKind = "free_move"    // one step at no movement cost
	TokenSwapSymbol  BonusTokenKind = "swap_symbol"  // card's best capacity counts for any type
)

// BonusToken is a one-shot reward drawn by visiting a cave. Value qualifies
// the typed movement tokens and is zero otherwise.
type BonusToken struct {
	Kind  BonusTokenKind `json:"kind"`
	Value int            `json:"value,omitempty"`
}

// GoldValue is the token's purchasing power. Only the desert token is worth
// gold, at twice its movement value.
func (t BonusToken) GoldValue() int {
	if t.Kind == TokenDesert {
		return 2 * t.Value
	}
	return 0
}

// movement returns the token's capacity triple and whether it is a typed
// movement token at all.
func (t BonusToken) movement() ([3]int, bool) {
	var m [3]int
	switch t.Kind {
	case TokenJungle:
		m[0] = t.Value
	case TokenDesert:
		m[1] = t.Value
	case TokenWater:
		m[2] = t.Value
	default:
		return m, false
	}
	return m, true
}

// TokensPerCave is how many bonus tokens each cave is stocked with, pool
// permitting.
const TokensPerCave = 4

// bonusTokenPool returns the fixed 36-token pool dealt across caves at game
// creation.
func bonusTokenPool() []BonusToken {
	pool := make([]BonusToken, 0, 36)
	add := func(n int, t BonusToken) {
		for i := 0; i < n; i++ {
			pool = append(pool, t)
		}
	}
	add(2, BonusToken{Kind: TokenJungle, Value: 1})
	add(3, BonusToken{Kind: TokenJungle, Value: 2})
	add(2, BonusToken{Kind: TokenJungle, Value: 3})
	add(2, BonusToken{Kind: TokenDesert, Value: 1})
	add(3, BonusToken{Kind: TokenDesert, Value: 2})
	add(2, BonusToken{Kind: TokenWater, Value: 1})
	add(3, BonusToken{Kind: TokenWater, Value: 2})
	add(4, BonusToken{Kind: TokenDrawCard})
	add(4, BonusToken{Kind: TokenTrashCard})
	add(3, BonusToken{Kind: TokenReplaceHand})
	add(2, BonusToken{Kind: TokenDoubleUse})
	add(2, BonusToken{Kind: TokenShareHex})
	add(2, BonusToken{Kind: TokenFreeMove})
	add(2, BonusToken{Kind: TokenSwapSymbol})
	return pool
}
