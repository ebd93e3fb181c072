package words

import (
	"math"
	"math/rand/v2"
)

// Selector drops tokens at random, most likely near the middle of the
// sequence and almost never at its edges.
type Selector struct {
	rng *rand.Rand
}

// NewSelector returns a Selector drawing from rng. A nil rng gets a
// randomly seeded source, so two runs over the same text differ.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{rng: rng}
}

// NewSeededSelector returns a Selector with a reproducible source.
func NewSeededSelector(seed uint64) *Selector {
	return NewSelector(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Select returns the retained subsequence of tokens.
//
// The position index starts at -ceil(n/2) and advances once per examined
// token, dropped punctuation-only tokens included. A token is kept when a
// uniform draw from [0, half) exceeds the triangular weight half-|i|.
func (s *Selector) Select(tokens []string) []string {
	n := len(tokens)
	if n == 0 {
		return []string{}
	}

	half := math.Ceil(float64(n) / 2)
	out := make([]string, 0, n)

	i := -half
	for _, tok := range tokens {
		pos := i
		i++

		if !HasWordChar(tok) {
			continue
		}

		weight := half - math.Abs(pos)
		seed := s.rng.Float64() * half
		if seed > weight {
			out = append(out, tok)
		}
	}
	return out
}
