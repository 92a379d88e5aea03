package automatic

import (
	"context"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

var testWords = []string{"abcd", "abdc", "bcda", "dcba"}

func TestPlayOut(t *testing.T) {
	is := is.New(t)
	runner, err := NewGameRunner(testWords, true)
	is.NoErr(err)

	for _, target := range testWords {
		guesses, err := runner.PlayOut(context.Background(), target)
		is.NoErr(err)
		is.True(guesses >= 1)
		is.True(guesses <= len(testWords))
	}
}

func TestPlayOutUnknownTarget(t *testing.T) {
	is := is.New(t)
	runner, err := NewGameRunner(testWords, true)
	is.NoErr(err)

	// A target outside the lexicon eventually empties the candidate set.
	_, err = runner.PlayOut(context.Background(), "zzzz")
	is.True(err != nil)
}

func TestRunAll(t *testing.T) {
	is := is.New(t)
	summary, err := RunAll(context.Background(), testWords, 2, true)
	is.NoErr(err)
	is.Equal(summary.Stat.Iterations(), len(testWords))
	is.True(summary.Stat.Mean() >= 1.0)
	is.True(summary.Stat.Mean() <= float64(len(testWords)))
}
