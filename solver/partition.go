package solver

import (
	"github.com/domino14/wordhound/feedback"
)

// Partition groups the candidate set into buckets keyed by the packed
// feedback code each candidate would produce against the guess. The buckets'
// union is exactly the candidate set, and within a bucket candidates keep
// their relative order.
func Partition(candidates []string, guess string) (map[uint64][]string, error) {
	buckets := make(map[uint64][]string)
	for _, secret := range candidates {
		pat, err := feedback.Compute(secret, guess)
		if err != nil {
			return nil, err
		}
		code := pat.Code()
		buckets[code] = append(buckets[code], secret)
	}
	return buckets, nil
}
