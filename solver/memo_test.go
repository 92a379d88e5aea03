package solver

import (
	"math/big"
	"testing"

	"github.com/matryer/is"
)

func TestCanonicalKeyOrderIndependent(t *testing.T) {
	is := is.New(t)
	a := canonicalKey([]string{"cider", "abide", "bacon"})
	b := canonicalKey([]string{"bacon", "cider", "abide"})
	c := canonicalKey([]string{"abide", "bacon", "cider"})
	is.Equal(a, b)
	is.Equal(b, c)

	d := canonicalKey([]string{"abide", "bacon"})
	is.True(a != d)
}

func TestMemoRoundTrip(t *testing.T) {
	is := is.New(t)
	table := &MemoTable{}
	table.SetSingleThreadedMode()
	table.Reset(0.01)

	key := canonicalKey([]string{"abide", "bacon", "cider"})
	_, ok := table.lookup(key)
	is.True(!ok)

	eval := Evaluation{Guess: "bacon", Expected: big.NewRat(4, 3)}
	table.store(key, eval)

	got, ok := table.lookup(key)
	is.True(ok)
	is.Equal(got.Guess, "bacon")
	is.Equal(got.Expected.Cmp(eval.Expected), 0)

	is.Equal(table.created.Load(), uint64(1))
	is.Equal(table.hits.Load(), uint64(1))
}

func TestMemoResetClears(t *testing.T) {
	is := is.New(t)
	table := &MemoTable{}
	table.SetSingleThreadedMode()
	table.Reset(0.01)

	key := canonicalKey([]string{"abide", "bacon"})
	table.store(key, Evaluation{Guess: "abide", Expected: new(big.Rat)})
	table.Reset(0.01)

	_, ok := table.lookup(key)
	is.True(!ok)
	is.Equal(table.created.Load(), uint64(0))
}
