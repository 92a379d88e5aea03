// Package solver implements the exact expectation-minimizing search: given
// the set of words still consistent with all feedback so far, it finds the
// guess from that set minimizing the expected number of further guesses
// needed to pin down the secret, assuming the secret is uniform over the
// set and later play is optimal.
//
// The search is exhaustive. Every candidate guess is scored by partitioning
// the set on its feedback buckets and recursing into each bucket; values
// are aggregated with exact rational arithmetic so deep recursion cannot
// drift and the minimization never tie-breaks on rounding noise. The only
// speedup is memoization across recursion paths that reach the same
// candidate set, plus optional fan-out of the independent root guesses
// across threads.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/wordhound/feedback"
)

var (
	ErrNoCandidates = errors.New("no candidates to search")
	// ErrInvariantViolation indicates a defect in the partitioner or
	// evaluator. It aborts the search run; there is no recovery.
	ErrInvariantViolation = errors.New("partition invariant violation")
)

var one = big.NewRat(1, 1)

// Evaluation pairs a guess with its expected number of additional guesses,
// as an exact rational.
type Evaluation struct {
	Guess    string
	Expected *big.Rat
}

func (e Evaluation) String() string {
	return fmt.Sprintf("<%s %s (~%s)>", e.Guess, e.Expected.RatString(),
		e.Expected.FloatString(2))
}

// better reports whether a beats b. Ties on the exact value are broken by
// the lexicographically least guess, so the result never depends on
// enumeration order.
func better(a, b Evaluation) bool {
	cmp := a.Expected.Cmp(b.Expected)
	if cmp != 0 {
		return cmp < 0
	}
	return a.Guess < b.Guess
}

type Solver struct {
	memoOptim    bool
	memoFraction float64
	threads      int
	memo         *MemoTable

	progress  ProgressFunc
	logStream io.Writer

	nodes atomic.Uint64
}

// Init initializes the solver with its default options: memoization on,
// and all but one CPU available for root-level fan-out.
func (s *Solver) Init() error {
	s.memoOptim = true
	s.memoFraction = 0.25
	s.threads = int(math.Max(1, float64(runtime.NumCPU()-1)))
	s.memo = &MemoTable{}
	s.memo.SetSingleThreadedMode()
	return nil
}

func (s *Solver) SetThreads(threads int) {
	if threads < 2 {
		s.threads = 1
	} else {
		s.threads = threads
	}
}

func (s *Solver) Threads() int { return s.threads }

func (s *Solver) SetMemoOptim(m bool)          { s.memoOptim = m }
func (s *Solver) MemoOptim() bool              { return s.memoOptim }
func (s *Solver) SetMemoFraction(f float64)    { s.memoFraction = f }
func (s *Solver) SetProgressFn(p ProgressFunc) { s.progress = p }
func (s *Solver) SetLogStream(w io.Writer)     { s.logStream = w }

// Solve runs the full search over the candidate set and returns the best
// guess with its exact expected number of additional guesses.
func (s *Solver) Solve(ctx context.Context, candidates []string) (Evaluation, error) {
	if len(candidates) == 0 {
		return Evaluation{}, ErrNoCandidates
	}
	tstart := time.Now()
	// The search owns a sorted copy; every bucket derived from it inherits
	// the order, which is what makes tie-breaking and canonical memo keys
	// cheap deeper down.
	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)

	if s.memoOptim {
		if s.threads >= 2 {
			s.memo.SetMultiThreadedMode()
		} else {
			s.memo.SetSingleThreadedMode()
		}
		s.memo.Reset(s.memoFraction)
	}
	s.nodes.Store(0)

	log.Debug().Int("candidates", len(sorted)).Int("threads", s.threads).
		Bool("memo", s.memoOptim).Msg("solve-config")

	g := &errgroup.Group{}
	done := make(chan bool)

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	var best Evaluation
	g.Go(func() error {
		var err error
		best, err = s.rootSearch(ctx, sorted)
		done <- true
		return err
	})

	err := g.Wait()

	log.Debug().
		Uint64("nodes", s.nodes.Load()).
		Uint64("memo-created", s.memo.created.Load()).
		Uint64("memo-lookups", s.memo.lookups.Load()).
		Uint64("memo-hits", s.memo.hits.Load()).
		Uint64("memo-collisions", s.memo.collisions.Load()).
		Uint64("memo-dropped", s.memo.dropped.Load()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")

	return best, err
}

// rootSearch evaluates the top-level candidate set. With two or more
// threads the root guesses, which are independent subproblems, are fanned
// out over an errgroup; each worker recurses serially, sharing the memo
// table. Serial and parallel runs return identical evaluations.
func (s *Solver) rootSearch(ctx context.Context, candidates []string) (Evaluation, error) {
	if s.threads < 2 || len(candidates) < 2 {
		return s.bestGuess(ctx, candidates, nil)
	}
	s.nodes.Add(1)
	s.emitEnter(nil, len(candidates))

	evals := make([]Evaluation, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.threads)
	for i, guess := range candidates {
		i, guess := i, guess
		g.Go(func() error {
			path := []Frame{{Candidates: len(candidates), GuessIndex: i, Guess: guess}}
			v, err := s.expectedAfter(gctx, candidates, guess, path)
			if err != nil {
				return err
			}
			evals[i] = Evaluation{Guess: guess, Expected: v}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Evaluation{}, err
	}

	best := evals[0]
	for _, ev := range evals[1:] {
		if better(ev, best) {
			best = ev
		}
	}
	if s.memoOptim {
		s.memo.store(canonicalKey(candidates), best)
	}
	s.emitDone(nil, len(candidates), best)
	return best, nil
}

// bestGuess is the recursive heart of the engine. candidates must be
// non-empty and sorted.
func (s *Solver) bestGuess(ctx context.Context, candidates []string, path []Frame) (Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}
	if len(candidates) == 1 {
		return Evaluation{Guess: candidates[0], Expected: new(big.Rat)}, nil
	}
	var key string
	if s.memoOptim {
		key = canonicalKey(candidates)
		if ev, ok := s.memo.lookup(key); ok {
			return ev, nil
		}
	}
	s.nodes.Add(1)
	s.emitEnter(path, len(candidates))
	if s.logStream != nil {
		indent := strings.Repeat(" ", 2*len(path))
		fmt.Fprintf(s.logStream, "%v- candidates: %d\n", indent, len(candidates))
	}

	var best Evaluation
	for i, guess := range candidates {
		childPath := append(path[:len(path):len(path)],
			Frame{Candidates: len(candidates), GuessIndex: i, Guess: guess})
		v, err := s.expectedAfter(ctx, candidates, guess, childPath)
		if err != nil {
			return Evaluation{}, err
		}
		if s.logStream != nil {
			indent := strings.Repeat(" ", 2*len(path))
			fmt.Fprintf(s.logStream, "%v  %v: %v\n", indent, guess, v.RatString())
		}
		ev := Evaluation{Guess: guess, Expected: v}
		if best.Expected == nil || better(ev, best) {
			best = ev
		}
	}
	if s.memoOptim {
		s.memo.store(key, best)
	}
	s.emitDone(path, len(candidates), best)
	return best, nil
}

// expectedAfter computes the exact expected number of additional guesses
// after playing guess against the candidate set: the weighted average over
// feedback buckets, where the all-Exact singleton bucket costs nothing and
// every other bucket of size n costs one guess plus its own best-guess
// expectation, weighted by n.
func (s *Solver) expectedAfter(ctx context.Context, candidates []string, guess string, path []Frame) (*big.Rat, error) {
	buckets, err := Partition(candidates, guess)
	if err != nil {
		return nil, err
	}
	allExact := feedback.AllExactCode(len(guess))
	total := new(big.Rat)
	for code, bucket := range buckets {
		if len(bucket) == 0 {
			return nil, fmt.Errorf("%w: empty bucket %d for guess %v", ErrInvariantViolation, code, guess)
		}
		if code == allExact {
			if len(bucket) != 1 {
				return nil, fmt.Errorf("%w: all-exact bucket for guess %v has %d words",
					ErrInvariantViolation, guess, len(bucket))
			}
			// The guess itself: solved, zero further guesses, weight 1.
			continue
		}
		sub, err := s.bestGuess(ctx, bucket, path)
		if err != nil {
			return nil, err
		}
		contrib := new(big.Rat).Add(sub.Expected, one)
		contrib.Mul(contrib, new(big.Rat).SetInt64(int64(len(bucket))))
		total.Add(total, contrib)
	}
	return total.Quo(total, new(big.Rat).SetInt64(int64(len(candidates)))), nil
}

// Nodes returns the number of subproblems expanded by the last Solve call.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}
