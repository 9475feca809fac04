package profile

import (
	"fmt"
	"math/rand"
	"sort"
)

// Chooser selects indexes with probability proportional to their weight.
// It keeps a cumulative-weight table and maps a single uniform draw onto
// it with a binary search. A Chooser is immutable after construction;
// callers supply their own rng, so a seeded rand.Rand makes selection
// fully deterministic in tests.
type Chooser struct {
	cum   []int
	total int
}

// NewChooser builds a chooser from positive integer weights.
func NewChooser(weights []int) (*Chooser, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("chooser needs at least one weight")
	}
	cum := make([]int, len(weights))
	total := 0
	for i, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("weight at index %d must be positive, got %d", i, w)
		}
		total += w
		cum[i] = total
	}
	return &Chooser{cum: cum, total: total}, nil
}

// Pick returns a weighted-random index. Draws are independent.
func (c *Chooser) Pick(rng *rand.Rand) int {
	n := rng.Intn(c.total)
	return sort.SearchInts(c.cum, n+1)
}

// Total returns the sum of weights.
func (c *Chooser) Total() int {
	return c.total
}
