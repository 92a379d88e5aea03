// Package lexicon loads word lists and applies hint filters, producing the
// candidate sets the solver consumes.
package lexicon

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/wordhound/cache"
	"github.com/domino14/wordhound/config"
)

const cacheKeyPrefix = "lexicon:"

// Load reads the word list at path: one word per line, lowercased, filtered
// to the configured word length, de-duplicated and sorted. Lists are cached
// per path for the lifetime of the process.
func Load(cfg *config.Config, path string) ([]string, error) {
	obj, err := cache.Load(cfg, cacheKeyPrefix+path, loadWords)
	if err != nil {
		return nil, err
	}
	ret, ok := obj.([]string)
	if !ok {
		return nil, fmt.Errorf("could not read word list from file %v", path)
	}
	return ret, nil
}

func loadWords(cfg *config.Config, key string) (interface{}, error) {
	path := strings.TrimPrefix(key, cacheKeyPrefix)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	wordLength := cfg.GetInt("word-length")

	words := lo.FilterMap(strings.Split(string(data), "\n"), func(line string, _ int) (string, bool) {
		w := strings.ToLower(strings.TrimSpace(line))
		return w, len(w) == wordLength
	})
	words = lo.Uniq(words)
	sort.Strings(words)

	log.Info().Str("path", path).Int("word-length", wordLength).
		Int("words", len(words)).Msg("loaded-lexicon")
	return words, nil
}
