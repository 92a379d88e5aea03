// Package automatic plays out full games against every possible secret,
// to measure how the solver performs across a whole lexicon.
package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordhound/feedback"
	"github.com/domino14/wordhound/solver"
)

// GameRunner plays complete games with its own solver instance, so runners
// can work independent targets in parallel.
type GameRunner struct {
	words  []string
	solver *solver.Solver
}

func NewGameRunner(words []string, memo bool) (*GameRunner, error) {
	s := &solver.Solver{}
	if err := s.Init(); err != nil {
		return nil, err
	}
	// Parallelism lives at the runner level; each game is solved serially.
	s.SetThreads(1)
	s.SetMemoOptim(memo)
	return &GameRunner{words: words, solver: s}, nil
}

// PlayOut plays a full game against the given secret: guess best, receive
// feedback, filter, repeat until the guess is the secret. Returns the
// number of guesses used.
func (r *GameRunner) PlayOut(ctx context.Context, target string) (int, error) {
	possible := r.words
	for turn := 1; ; turn++ {
		if len(possible) == 0 {
			return 0, fmt.Errorf("no possibilities remain for target %v; is it in the lexicon?", target)
		}
		ev, err := r.solver.Solve(ctx, possible)
		if err != nil {
			return 0, err
		}
		if ev.Guess == target {
			log.Debug().Str("target", target).Int("guesses", turn).Msg("game-over")
			return turn, nil
		}
		pat, err := feedback.Compute(target, ev.Guess)
		if err != nil {
			return 0, err
		}
		code := pat.Code()
		var next []string
		for _, w := range possible {
			wpat, err := feedback.Compute(w, ev.Guess)
			if err != nil {
				return 0, err
			}
			if wpat.Code() == code {
				next = append(next, w)
			}
		}
		possible = next
	}
}
