// Package feedback computes the per-position colored response a guess
// receives against a secret word. Duplicate letters are handled the way the
// game does it: exact matches consume a letter's budget before any
// present-but-misplaced match is awarded.
package feedback

import (
	"errors"
	"fmt"
)

// Symbol is a single position's response. The numeric values double as
// base-3 digits when packing a whole pattern into a code.
type Symbol uint8

const (
	Absent Symbol = iota
	Present
	Exact
)

var (
	ErrLengthMismatch = errors.New("secret and guess must have the same length")
	ErrUnknownSymbol  = errors.New("unknown feedback symbol")
)

// Letter returns the single-character hint code for this symbol
// (G = Exact, Y = Present, R = Absent).
func (s Symbol) Letter() byte {
	switch s {
	case Exact:
		return 'G'
	case Present:
		return 'Y'
	default:
		return 'R'
	}
}

// Pattern is the ordered feedback for a full guess; position i describes
// guess[i] relative to the secret.
type Pattern []Symbol

// Compute returns the feedback pattern for guess against secret.
//
// First pass: count each of the secret's letters, then debit every exact
// match. Second pass: exact positions emit Exact; other positions emit
// Present while the guessed letter still has budget, Absent otherwise.
// Swapping the passes mis-scores duplicate letters.
func Compute(secret, guess string) (Pattern, error) {
	if len(secret) != len(guess) {
		return nil, fmt.Errorf("%w (%d vs %d)", ErrLengthMismatch, len(secret), len(guess))
	}
	var floating [256]int16
	for i := 0; i < len(secret); i++ {
		floating[secret[i]]++
	}
	for i := 0; i < len(secret); i++ {
		if secret[i] == guess[i] {
			floating[secret[i]]--
		}
	}
	pat := make(Pattern, len(guess))
	for i := 0; i < len(guess); i++ {
		switch {
		case secret[i] == guess[i]:
			pat[i] = Exact
		case floating[guess[i]] > 0:
			pat[i] = Present
			floating[guess[i]]--
		default:
			pat[i] = Absent
		}
	}
	return pat, nil
}

// Code packs the pattern into a base-3 integer, suitable as a map key.
func (p Pattern) Code() uint64 {
	var c uint64
	for _, s := range p {
		c = c*3 + uint64(s)
	}
	return c
}

// AllExactCode is the code of the all-Exact pattern of the given length.
func AllExactCode(length int) uint64 {
	var c uint64
	for i := 0; i < length; i++ {
		c = c*3 + uint64(Exact)
	}
	return c
}

// AllExact reports whether every position matched exactly.
func (p Pattern) AllExact() bool {
	for _, s := range p {
		if s != Exact {
			return false
		}
	}
	return true
}

func (p Pattern) String() string {
	b := make([]byte, len(p))
	for i, s := range p {
		b[i] = s.Letter()
	}
	return string(b)
}

// ParsePattern parses a hint code such as "GGYRR".
func ParsePattern(s string) (Pattern, error) {
	pat := make(Pattern, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'G':
			pat[i] = Exact
		case 'Y':
			pat[i] = Present
		case 'R':
			pat[i] = Absent
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, s[i])
		}
	}
	return pat, nil
}
