// Command autoplay runs agent-vs-agent games without a server. It is the
// quickest way to compare agent strategies and to sanity-check a board layout:
// point it at a preset, pick a lineup, and read the aggregate standings.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/durango/game/agent"
	"github.com/wricardo/durango/game/board"
	"github.com/wricardo/durango/game/engine"
)

// maxActionsPerGame bounds a single game so a stuck lineup cannot loop forever.
const maxActionsPerGame = 5000

// gameResult summarizes one finished game.
type gameResult struct {
	winner  int
	rounds  int
	actions int
	scores  []int
}

func main() {
	cmd := &cli.Command{
		Name:  "autoplay",
		Usage: "run agent-vs-agent expedition races and report standings",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "games",
				Aliases: []string{"n"},
				Value:   10,
				Usage:   "number of games to play",
			},
			&cli.StringFlag{
				Name:  "preset",
				Value: "first",
				Usage: fmt.Sprintf("board preset (available: %v)", board.Presets()),
			},
			&cli.StringSliceFlag{
				Name:  "seat",
				Value: []string{"greedy", "random"},
				Usage: "agent kind per seat, repeat for more players (random, greedy, planner)",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Value: 0,
				Usage: "randomness seed (0 = time-based)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print every game result, not just the summary",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	games := cmd.Int("games")
	preset := cmd.String("preset")
	seatKinds := cmd.StringSlice("seat")
	seed := cmd.Int64("seed")
	verbose := cmd.Bool("verbose")

	if games < 1 {
		return fmt.Errorf("need at least one game, got %d", games)
	}
	if len(seatKinds) < engine.MinPlayers || len(seatKinds) > engine.MaxPlayers {
		return fmt.Errorf("need %d to %d seats, got %d", engine.MinPlayers, engine.MaxPlayers, len(seatKinds))
	}
	if _, err := board.Preset(preset); err != nil {
		return fmt.Errorf("preset '%s' not found. Available presets: %v", preset, board.Presets())
	}

	agents := make([]agent.Agent, len(seatKinds))
	for i, kind := range seatKinds {
		a, err := agent.New(kind)
		if err != nil {
			return fmt.Errorf("seat %d: %w", i, err)
		}
		agents[i] = a
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	fmt.Printf("Playing %d games on %q with %v (seed %d)\n", games, preset, seatKinds, seed)

	wins := make([]int, len(agents))
	totalRounds := 0
	unfinished := 0

	for g := 0; g < games; g++ {
		result, err := playGame(preset, agents, rng)
		if err != nil {
			return fmt.Errorf("game %d: %w", g+1, err)
		}
		if result.winner < 0 {
			unfinished++
			if verbose {
				fmt.Printf("game %3d: no finish after %d actions, scores %v\n", g+1, result.actions, result.scores)
			}
			continue
		}
		wins[result.winner]++
		totalRounds += result.rounds
		if verbose {
			fmt.Printf("game %3d: winner seat %d (%s) in %d rounds, scores %v\n",
				g+1, result.winner, agents[result.winner].Name(), result.rounds, result.scores)
		}
	}

	finished := games - unfinished
	fmt.Println()
	fmt.Println("Standings:")
	for i, a := range agents {
		fmt.Printf("  seat %d %-8s %3d wins\n", i, a.Name(), wins[i])
	}
	if finished > 0 {
		fmt.Printf("Average game length: %.1f rounds\n", float64(totalRounds)/float64(finished))
	}
	if unfinished > 0 {
		fmt.Printf("Unfinished games: %d\n", unfinished)
	}
	return nil
}

// playGame runs one game to completion and scores it. A winner of -1 means
// the action cap was hit before anyone reached the finish line.
func playGame(preset string, agents []agent.Agent, rng *rand.Rand) (*gameResult, error) {
	game, err := board.NewGame(len(agents), preset, rng)
	if err != nil {
		return nil, err
	}

	over := false
	actions := 0
	for ; actions < maxActionsPerGame && !over; actions++ {
		cur := game.CurrPlayer()
		action := agents[cur].ChooseAction(game, rng)
		if action == nil {
			action = engine.FinishTurn{}
		}

		outcome, err := game.ProcessAction(action, rng)
		if err != nil {
			// Rejected pick: end the turn instead of retrying the same action.
			outcome, err = game.ProcessAction(engine.FinishTurn{}, rng)
			if err != nil {
				return nil, err
			}
		}
		over = outcome.GameOver
	}

	scores, err := game.PlayerScores()
	if err != nil {
		return nil, err
	}

	result := &gameResult{winner: -1, rounds: game.Round(), actions: actions, scores: scores}
	if !over {
		return result, nil
	}

	best := -1
	for i, score := range scores {
		if best < 0 || score > scores[best] {
			best = i
		}
	}
	result.winner = best
	return result, nil
}
