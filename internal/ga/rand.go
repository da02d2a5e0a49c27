package ga

import (
	"math/rand"
)

// newRand returns a *rand.Rand seeded deterministically: identical seed,
// pool, and config must produce identical per-generation populations. A
// zero seed still picks a fixed, reproducible stream rather than falling
// back to global/unseeded randomness.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// shuffledIndices returns a random permutation of [0, n) drawn from rng.
func shuffledIndices(rng *rand.Rand, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	return idx
}
