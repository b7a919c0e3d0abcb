package main

import (
	"math/rand"
	"testing"

	"github.com/wricardo/durango/game/agent"
)

func TestPlayGame(t *testing.T) {
	agents := []agent.Agent{mustAgent(t, "greedy"), mustAgent(t, "random")}
	rng := rand.New(rand.NewSource(7))

	result, err := playGame("first", agents, rng)
	if err != nil {
		t.Fatalf("Failed to play game: %v", err)
	}

	if len(result.scores) != len(agents) {
		t.Errorf("Expected %d scores, got %d", len(agents), len(result.scores))
	}
	if result.actions == 0 {
		t.Error("Expected at least one action to be played")
	}
	if result.winner >= 0 {
		best := result.scores[result.winner]
		for _, score := range result.scores {
			if score > best {
				t.Errorf("Winner score %d is not the best (saw %d)", best, score)
			}
		}
	}
}

func TestPlayGameBadPreset(t *testing.T) {
	agents := []agent.Agent{mustAgent(t, "greedy"), mustAgent(t, "greedy")}
	rng := rand.New(rand.NewSource(1))

	if _, err := playGame("no_such_preset", agents, rng); err == nil {
		t.Error("Expected error for unknown preset")
	}
}

func TestPlayGameDeterministicWithSeed(t *testing.T) {
	agents := []agent.Agent{mustAgent(t, "greedy"), mustAgent(t, "greedy")}

	first, err := playGame("easy1", agents, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Failed to play game: %v", err)
	}
	second, err := playGame("easy1", agents, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Failed to play game: %v", err)
	}

	if first.winner != second.winner || first.rounds != second.rounds || first.actions != second.actions {
		t.Errorf("Expected identical replays for the same seed, got %+v vs %+v", first, second)
	}
}

func mustAgent(t *testing.T, kind string) agent.Agent {
	t.Helper()
	a, err := agent.New(kind)
	if err != nil {
		t.Fatalf("Failed to create %s agent: %v", kind, err)
	}
	return a
}
