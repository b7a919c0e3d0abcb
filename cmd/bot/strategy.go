package main

import "encoding/json"

// actionEnvelope is the wire shape of one legal action as returned by the API.
type actionEnvelope struct {
	Type   string `json:"type"`
	Action struct {
		Cards []int    `json:"cards,omitempty"`
		Path  []string `json:"path,omitempty"`
		Index int      `json:"index,omitempty"`
	} `json:"action"`
}

// pickAction ranks the legal actions and returns the most promising one.
// The ranking mirrors how a decent player spends a turn: cover distance
// first, improve the deck when movement is exhausted, and only then burn
// the turn on hand maintenance.
func pickAction(actions []json.RawMessage) json.RawMessage {
	var best json.RawMessage
	bestScore := -1

	for _, raw := range actions {
		var env actionEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}

		score := rankAction(env)
		if score > bestScore {
			bestScore = score
			best = raw
		}
	}

	return best
}

// rankAction scores one action. Longer moves beat shorter ones; cheap card
// spend breaks ties so expensive hands are kept for big moves.
func rankAction(env actionEnvelope) int {
	switch env.Type {
	case "move":
		// Distance dominates; fewer cards for the same path is better.
		return 1000 + len(env.Action.Path)*10 - len(env.Action.Cards)
	case "buy_card":
		return 500
	case "draw":
		return 300
	case "trash":
		return 200
	case "discard":
		return 100
	case "finish_turn":
		return 1
	default:
		return 0
	}
}
