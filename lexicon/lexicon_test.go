package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domino14/wordhound/config"
	"github.com/domino14/wordhound/feedback"
)

var DefaultConfig = config.DefaultConfig()

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	err := os.WriteFile(path, []byte("Crane\nslate\ncat\nslate\n\nBACON\n"), 0644)
	assert.NoError(t, err)

	words, err := Load(&DefaultConfig, path)
	assert.NoError(t, err)
	// lowercased, length-filtered, de-duplicated, sorted
	assert.Equal(t, []string{"bacon", "crane", "slate"}, words)

	// second load hits the process cache
	again, err := Load(&DefaultConfig, path)
	assert.NoError(t, err)
	assert.Equal(t, words, again)
}

func TestParseHints(t *testing.T) {
	hints, err := ParseHints("grant:GGYRR,trace:RYGRR")
	assert.NoError(t, err)
	assert.Len(t, hints, 2)
	assert.Equal(t, "grant", hints[0].Word)
	assert.Equal(t, "GGYRR", hints[0].Pattern.String())
	assert.Equal(t, "trace", hints[1].Word)
	assert.Equal(t, "RYGRR", hints[1].Pattern.String())
}

func TestParseHintsEmpty(t *testing.T) {
	hints, err := ParseHints("")
	assert.NoError(t, err)
	assert.Nil(t, hints)
}

func TestParseHintsMalformed(t *testing.T) {
	_, err := ParseHints("grantGGYRR")
	assert.Error(t, err)

	_, err = ParseHints("grant:GGXRR")
	assert.True(t, errors.Is(err, feedback.ErrUnknownSymbol))

	_, err = ParseHints("grant:GGY")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	words := []string{"abcd", "abdc", "dcba"}

	// "abcd" guessed, got GGYY: only "abdc" produces that as the secret.
	hints, err := ParseHints("abcd:GGYY")
	assert.NoError(t, err)
	possible, err := Filter(words, hints)
	assert.NoError(t, err)
	assert.Equal(t, []string{"abdc"}, possible)

	// Feedback inconsistent with every candidate: nothing remains.
	hints, err = ParseHints("abcd:RRRR")
	assert.NoError(t, err)
	possible, err = Filter(words, hints)
	assert.NoError(t, err)
	assert.Empty(t, possible)

	// No hints leaves the set untouched.
	possible, err = Filter(words, nil)
	assert.NoError(t, err)
	assert.Equal(t, words, possible)
}
