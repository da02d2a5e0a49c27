package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJaccardSimilarity_IdenticalLineupsAreOne(t *testing.T) {
	a := Lineup{1, 2, 3, 4}
	assert.InDelta(t, 1.0, jaccardSimilarity(a, a), 1e-9)
}

func TestJaccardSimilarity_DisjointLineupsAreZero(t *testing.T) {
	a := Lineup{1, 2, 3}
	b := Lineup{4, 5, 6}
	assert.InDelta(t, 0.0, jaccardSimilarity(a, b), 1e-9)
}

func TestHammingSimilarity_CountsMatchingSlotsOnly(t *testing.T) {
	a := Lineup{1, 2, 3, 4}
	b := Lineup{1, 9, 3, 9}
	assert.InDelta(t, 0.5, hammingSimilarity(a, b), 1e-9) // slots 0 and 2 match
}

func TestSelectDiverse_ReturnsNLineupsWhenPoolLargeEnough(t *testing.T) {
	pop := Population{
		{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {1, 2, 10}, {4, 5, 11},
	}
	fitness := []float64{50, 40, 30, 48, 38}
	cfg := DefaultPostSelectorConfig(3)
	result := SelectDiverse(pop, fitness, cfg)

	assert.Len(t, result.Lineups, 3)
	assert.Len(t, result.Fitness, 3)
	// First selected lineup is always the fittest.
	assert.Equal(t, pop[0], result.Lineups[0])
}

func TestSelectDiverse_FewerThanNAvailableReturnsAll(t *testing.T) {
	pop := Population{{1, 2, 3}, {4, 5, 6}}
	fitness := []float64{10, 20}
	cfg := DefaultPostSelectorConfig(5)
	result := SelectDiverse(pop, fitness, cfg)
	assert.Len(t, result.Lineups, 2)
}

func TestSelectDiverse_PrefersLessSimilarCandidateWhenFitnessClose(t *testing.T) {
	pop := Population{
		{1, 2, 3}, // fittest, chosen first
		{1, 2, 4}, // near-duplicate, slightly lower fitness
		{9, 8, 7}, // very different, lowest fitness
	}
	fitness := []float64{100, 99, 90}
	cfg := DefaultPostSelectorConfig(2)
	cfg.DiversityWeight = 0.5
	result := SelectDiverse(pop, fitness, cfg)
	require.Len(t, result.Lineups, 2)
	assert.Equal(t, pop[2], result.Lineups[1])
}

func TestComputeDiversityMetrics_DiagonalIsOne(t *testing.T) {
	lineups := Population{{1, 2, 3}, {4, 5, 6}, {1, 5, 9}}
	metrics := computeDiversityMetrics(lineups, DiversityJaccard)
	for i := range lineups {
		assert.Equal(t, 1.0, metrics.PairwiseMatrix[i][i])
	}
}
