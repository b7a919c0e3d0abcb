package engine

import (
	"encoding/json"
	"fmt"
)

// BuySource says which marketplace a BuyCard index refers to.
type BuySource string

const (
	BuyFromShop    BuySource = "shop"
	BuyFromStorage BuySource = "storage"
)

// PlayerAction is one of the six player actions. Exactly one ProcessAction
// call resolves one action; every index slice must be strictly increasing.
type PlayerAction interface {
	actionType() string
}

// BuyCard purchases the listing at Index from Source, paying with the gold
// value of the referenced hand cards and tokens.
type BuyCard struct {
	Cards  []int     `json:"cards"`
	Tokens []int     `json:"tokens,omitempty"`
	Source BuySource `json:"source"`
	Index  int       `json:"index"`
}

// Move walks a path of hex-direction steps, paying with one movement card or
// token (or, for swamp/village, the required number of cards).
type Move struct {
	Cards  []int          `json:"cards"`
	Tokens []int          `json:"tokens,omitempty"`
	Path   []HexDirection `json:"path"`
}

// Draw triggers the draw effect of a hand card (Card) or a token (Token);
// exactly one of the two must be set. Tokens may additionally carry a
// DoubleUse index to spare a single-use draw card from the trash.
type Draw struct {
	Card   *int  `json:"card,omitempty"`
	Token  *int  `json:"token,omitempty"`
	Tokens []int `json:"tokens,omitempty"`
}

// Trash permanently removes hand cards, limited by the trash allowance.
type Trash struct {
	Cards []int `json:"cards"`
}

// Discard moves hand cards to the discard pile unconditionally.
type Discard struct {
	Cards []int `json:"cards"`
}

// FinishTurn ends the current player's turn.
type FinishTurn struct{}

func (BuyCard) actionType() string    { return "buy_card" }
func (Move) actionType() string       { return "move" }
func (Draw) actionType() string       { return "draw" }
func (Trash) actionType() string      { return "trash" }
func (Discard) actionType() string    { return "discard" }
func (FinishTurn) actionType() string { return "finish_turn" }

// ActionOutcome reports what a successful ProcessAction did beyond mutating
// state. IgnoredStep is the index of a path step that held position (a cave
// visit or barrier break) and must be excluded from position-history replay;
// it is NoIgnoredStep when every step moved.
type ActionOutcome struct {
	GameOver    bool `json:"game_over"`
	IgnoredStep int  `json:"ignored_step"`
}

// NoIgnoredStep is the IgnoredStep value when no path step was excluded.
const NoIgnoredStep = -1

func outcomeOk() ActionOutcome              { return ActionOutcome{IgnoredStep: NoIgnoredStep} }
func outcomeIgnoreStep(i int) ActionOutcome { return ActionOutcome{IgnoredStep: i} }
func outcomeGameOver() ActionOutcome {
	return ActionOutcome{GameOver: true, IgnoredStep: NoIgnoredStep}
}

// actionEnvelope is the wire form of a PlayerAction: a type tag plus the
// action's own fields.
type actionEnvelope struct {
	Type   string          `json:"type"`
	Action json.RawMessage `json:"action,omitempty"`
}

// EncodeAction wraps an action in its type-tagged JSON envelope.
func EncodeAction(action PlayerAction) ([]byte, error) {
	raw, err := json.Marshal(action)
	if err != nil {
		return nil, err
	}
	return json.Marshal(actionEnvelope{Type: action.actionType(), Action: raw})
}

// DecodeAction parses a type-tagged JSON envelope back into an action.
func DecodeAction(data []byte) (PlayerAction, error) {
	var env actionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}
	var action PlayerAction
	switch env.Type {
	case "buy_card":
		action = &BuyCard{}
	case "move":
		action = &Move{}
	case "draw":
		action = &Draw{}
	case "trash":
		action = &Trash{}
	case "discard":
		action = &Discard{}
	case "finish_turn":
		return FinishTurn{}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", env.Type)
	}
	if len(env.Action) > 0 {
		if err := json.Unmarshal(env.Action, action); err != nil {
			return nil, fmt.Errorf("decode %s action: %w", env.Type, err)
		}
	}
	switch a := action.(type) {
	case *BuyCard:
		return *a, nil
	case *Move:
		return *a, nil
	case *Draw:
		return *a, nil
	case *Trash:
		return *a, nil
	case *Discard:
		return *a, nil
	}
	return nil, fmt.Errorf("unknown action type %q", env.Type)
}
