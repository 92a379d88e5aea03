package automatic

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/wordhound/stats"
)

// Summary accumulates per-game guess counts across an autoplay run.
type Summary struct {
	sync.Mutex
	Counts  map[int][]string // guesses needed -> targets
	Stat    stats.Statistic
	samples []float64
}

func newSummary() *Summary {
	return &Summary{Counts: make(map[int][]string)}
}

func (s *Summary) record(target string, guesses int) {
	s.Lock()
	defer s.Unlock()
	s.Counts[guesses] = append(s.Counts[guesses], target)
	s.Stat.Push(float64(guesses))
	s.samples = append(s.samples, float64(guesses))
}

// Display writes the guess-count distribution and a histogram.
func (s *Summary) Display(w io.Writer) error {
	counts := make([]int, 0, len(s.Counts))
	for g := range s.Counts {
		counts = append(counts, g)
	}
	sort.Ints(counts)
	for _, g := range counts {
		fmt.Fprintf(w, "%d guesses: %d games\n", g, len(s.Counts[g]))
	}
	fmt.Fprintf(w, "games: %d  mean: %.3f  stdev: %.3f  stderr: %.3f\n",
		s.Stat.Iterations(), s.Stat.Mean(), s.Stat.Stdev(), s.Stat.StandardError())

	hist := histogram.Hist(len(counts), s.samples)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}

// RunAll plays one game per target word, fanning targets out over an
// errgroup worker pool. Each worker owns a GameRunner (and therefore its
// own solver and memo table).
func RunAll(ctx context.Context, words []string, threads int, memo bool) (*Summary, error) {
	if threads < 1 {
		threads = 1
	}
	log.Info().Int("targets", len(words)).Int("threads", threads).
		Bool("memo", memo).Msg("starting-autoplay")
	if len(words) > 40 {
		log.Warn().Msg("the search is exhaustive; autoplay over a large word list can take a very long time")
	}

	summary := newSummary()
	jobs := make(chan string)

	g, gctx := errgroup.WithContext(ctx)
	for t := 0; t < threads; t++ {
		g.Go(func() error {
			runner, err := NewGameRunner(words, memo)
			if err != nil {
				return err
			}
			for target := range jobs {
				guesses, err := runner.PlayOut(gctx, target)
				if err != nil {
					return err
				}
				summary.record(target, guesses)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for _, target := range words {
			select {
			case jobs <- target:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info().Float64("mean-guesses", summary.Stat.Mean()).Msg("autoplay-done")
	return summary, nil
}
