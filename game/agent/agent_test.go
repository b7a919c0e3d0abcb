package agent

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/durango/game/board"
	"github.com/wricardo/durango/game/engine"
)

func newTestGame(t *testing.T, seed int64) (*engine.GameState, *rand.Rand) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g, err := board.NewGame(2, "first", rng)
	require.NoError(t, err)
	return g, rng
}

func TestNew(t *testing.T) {
	for _, kind := range []string{"random", "greedy", "planner"} {
		a, err := New(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, a.Name())
	}
	_, err := New("psychic")
	assert.Error(t, err)
}

func TestLegalActions(t *testing.T) {
	g, rng := newTestGame(t, 11)
	legal := LegalActions(g, rng)
	require.NotEmpty(t, legal)

	finishSeen := false
	for _, a := range legal {
		if _, ok := a.(engine.FinishTurn); ok {
			finishSeen = true
		}
		_, err := g.Clone().ProcessAction(a, rand.New(rand.NewSource(1)))
		assert.NoError(t, err, "legal action %#v must apply cleanly", a)
	}
	assert.True(t, finishSeen, "finishing the turn is always legal")
}

func TestLegalActions_DoNotMutate(t *testing.T) {
	g, rng := newTestGame(t, 11)
	before := g.Snapshot()
	LegalActions(g, rng)
	assert.Equal(t, before, g.Snapshot())
}

func TestRandom(t *testing.T) {
	g, rng := newTestGame(t, 5)
	a := &Random{}
	for i := 0; i < 40; i++ {
		action := a.ChooseAction(g, rng)
		_, err := g.ProcessAction(action, rng)
		require.NoError(t, err, "random agent picked an illegal action %#v", action)
	}
}

func TestGreedy_MakesProgress(t *testing.T) {
	g, rng := newTestGame(t, 9)
	a := &Greedy{}

	movesChosen := 0
	for i := 0; i < 200; i++ {
		action := a.ChooseAction(g, rng)
		if _, ok := action.(engine.Move); ok {
			movesChosen++
		}
		outcome, err := g.ProcessAction(action, rng)
		require.NoError(t, err)
		if outcome.GameOver {
			break
		}
	}

	assert.Greater(t, movesChosen, 0, "greedy should find moves on an all-jungle board")
	scores, err := g.PlayerScores()
	require.NoError(t, err)
	best := scores[0]
	if scores[1] > best {
		best = scores[1]
	}
	assert.Greater(t, best, 0, "someone should have gained ground")
}

func TestPlanner(t *testing.T) {
	g, rng := newTestGame(t, 13)
	a := &Planner{Depth: 2}
	for i := 0; i < 12; i++ {
		action := a.ChooseAction(g, rng)
		_, err := g.ProcessAction(action, rng)
		require.NoError(t, err, "planner picked an illegal action %#v", action)
	}
}
