package game

import (
	"math/rand"
	"time"
)

// NewRand returns a random source seeded with seed, or with the current time
// when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// GenerateDeck returns the values 1..pairs, each twice, in a uniformly random
// order. A non-positive pair count yields an empty deck.
func GenerateDeck(pairs int, rng *rand.Rand) []int {
	if pairs < 1 {
		return []int{}
	}
	values := make([]int, 0, pairs*2)
	for v := 1; v <= pairs; v++ {
		values = append(values, v, v)
	}

	// Fisher-Yates, last index down to 1
	for i := len(values) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		values[i], values[j] = values[j], values[i]
	}
	return values
}
