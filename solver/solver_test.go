package solver

import (
	"context"
	"math/big"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/wordhound/feedback"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newSolver(t *testing.T, threads int, memo bool) *Solver {
	t.Helper()
	s := &Solver{}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetThreads(threads)
	s.SetMemoOptim(memo)
	return s
}

func TestPartitionSizes(t *testing.T) {
	is := is.New(t)
	candidates := []string{"abide", "amber", "bacon", "cabin", "cider", "debit"}
	buckets, err := Partition(candidates, "cabin")
	is.NoErr(err)

	total := 0
	for _, bucket := range buckets {
		is.True(len(bucket) > 0)
		total += len(bucket)
	}
	is.Equal(total, len(candidates))
}

func TestPartitionAllExactSingleton(t *testing.T) {
	is := is.New(t)
	candidates := []string{"abide", "amber", "bacon"}
	buckets, err := Partition(candidates, "bacon")
	is.NoErr(err)
	exact := buckets[feedback.AllExactCode(5)]
	is.Equal(len(exact), 1)
	is.Equal(exact[0], "bacon")
}

func TestSingleton(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, 1, true)
	ev, err := s.Solve(context.Background(), []string{"abide"})
	is.NoErr(err)
	is.Equal(ev.Guess, "abide")
	is.Equal(ev.Expected.Sign(), 0)
}

func TestWorkedExample(t *testing.T) {
	// {"abcd", "dcba"}: either guess splits the pair into the all-exact
	// singleton (0 more guesses, weight 1) and an all-present singleton
	// (1 more guess, weight 1), for an expectation of 1/2. The tie goes to
	// the lexicographically least guess.
	is := is.New(t)
	s := newSolver(t, 1, false)
	ev, err := s.Solve(context.Background(), []string{"dcba", "abcd"})
	is.NoErr(err)
	is.Equal(ev.Guess, "abcd")
	is.Equal(ev.Expected.Cmp(big.NewRat(1, 2)), 0)
}

func TestDisjointTriple(t *testing.T) {
	// Three words with no letters in common: the first guess resolves one
	// word exactly and leaves the other two indistinguishable (both
	// all-absent), so that bucket costs another 1/2 on average. Expectation:
	// (0*1 + (1/2+1)*2) / 3 = 1.
	is := is.New(t)
	s := newSolver(t, 1, true)
	ev, err := s.Solve(context.Background(), []string{"cccc", "aaaa", "bbbb"})
	is.NoErr(err)
	is.Equal(ev.Guess, "aaaa")
	is.Equal(ev.Expected.Cmp(big.NewRat(1, 1)), 0)
}

func TestEmptyCandidates(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, 1, true)
	_, err := s.Solve(context.Background(), nil)
	is.Equal(err, ErrNoCandidates)
}

func TestMemoTransparency(t *testing.T) {
	is := is.New(t)
	candidates := []string{"abide", "amber", "bacon", "cabin", "cider", "debit", "bider", "aider"}

	plain := newSolver(t, 1, false)
	memoized := newSolver(t, 1, true)

	evPlain, err := plain.Solve(context.Background(), candidates)
	is.NoErr(err)
	evMemo, err := memoized.Solve(context.Background(), candidates)
	is.NoErr(err)

	is.Equal(evPlain.Guess, evMemo.Guess)
	is.Equal(evPlain.Expected.Cmp(evMemo.Expected), 0)
}

func TestDeterminismAcrossConstructionOrder(t *testing.T) {
	is := is.New(t)
	a := []string{"abide", "amber", "bacon", "cabin", "cider", "debit"}
	b := []string{"debit", "cider", "cabin", "bacon", "amber", "abide"}

	s := newSolver(t, 1, true)
	evA, err := s.Solve(context.Background(), a)
	is.NoErr(err)
	evB, err := s.Solve(context.Background(), b)
	is.NoErr(err)

	is.Equal(evA.Guess, evB.Guess)
	is.Equal(evA.Expected.Cmp(evB.Expected), 0)
}

func TestParallelMatchesSerial(t *testing.T) {
	is := is.New(t)
	candidates := []string{"abide", "amber", "bacon", "cabin", "cider", "debit", "bider", "aider"}

	serial := newSolver(t, 1, true)
	parallel := newSolver(t, 4, true)

	evS, err := serial.Solve(context.Background(), candidates)
	is.NoErr(err)
	evP, err := parallel.Solve(context.Background(), candidates)
	is.NoErr(err)

	is.Equal(evS.Guess, evP.Guess)
	is.Equal(evS.Expected.Cmp(evP.Expected), 0)
}

func TestProgressCallbackInvoked(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, 1, false)

	var enters, dones int
	var rootBest Evaluation
	s.SetProgressFn(func(ev Event) {
		switch ev.Kind {
		case EventEnter:
			enters++
		case EventDone:
			dones++
			if len(ev.Path) == 0 {
				rootBest = ev.Best
			}
		}
	})

	ev, err := s.Solve(context.Background(), []string{"abcd", "dcba", "abdc"})
	is.NoErr(err)
	is.True(enters > 0)
	is.Equal(enters, dones)
	is.Equal(rootBest.Guess, ev.Guess)
	is.Equal(rootBest.Expected.Cmp(ev.Expected), 0)
}
