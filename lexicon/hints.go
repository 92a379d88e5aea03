package lexicon

import (
	"fmt"
	"strings"

	"github.com/domino14/wordhound/feedback"
)

// Hint is one guess already played, with the pattern it received.
type Hint struct {
	Word    string
	Pattern feedback.Pattern
}

func (h Hint) String() string {
	return h.Word + ":" + h.Pattern.String()
}

// ParseHints parses a comma-separated list of word:CODE entries, e.g.
// "grant:GGYRR,trace:RYGRR". An empty string yields no hints. Malformed
// entries are rejected here; the solver never sees them.
func ParseHints(s string) ([]Hint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var hints []Hint
	for _, chunk := range strings.Split(s, ",") {
		word, code, found := strings.Cut(chunk, ":")
		if !found {
			return nil, fmt.Errorf("hint %q is not of the form word:CODE", chunk)
		}
		word = strings.ToLower(strings.TrimSpace(word))
		pat, err := feedback.ParsePattern(strings.ToUpper(strings.TrimSpace(code)))
		if err != nil {
			return nil, fmt.Errorf("hint %q: %w", chunk, err)
		}
		if len(word) != len(pat) {
			return nil, fmt.Errorf("hint %q: word and code lengths differ", chunk)
		}
		hints = append(hints, Hint{Word: word, Pattern: pat})
	}
	return hints, nil
}

// Filter returns the words still consistent with every hint: those that,
// as the secret, would have produced exactly the recorded pattern for each
// guessed word. The result can be empty; callers report that as "no
// possibilities remain" rather than searching an empty set.
func Filter(words []string, hints []Hint) ([]string, error) {
	possible := words
	for _, h := range hints {
		var next []string
		for _, w := range possible {
			pat, err := feedback.Compute(w, h.Word)
			if err != nil {
				return nil, err
			}
			if pat.Code() == h.Pattern.Code() {
				next = append(next, w)
			}
		}
		possible = next
	}
	return possible, nil
}
