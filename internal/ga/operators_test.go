package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePop() Population {
	return Population{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
		{10, 11, 12},
	}
}

func TestSelectFittest_ReturnsTopNByFitness(t *testing.T) {
	pop := samplePop()
	fitness := []float64{10, 40, 20, 5}
	out := Select(pop, fitness, 2, SelectFittest, 3, newRand(1))
	require.Len(t, out, 2)
	assert.Equal(t, pop[1], out[0]) // fitness 40 highest
	assert.Equal(t, pop[2], out[1]) // fitness 20 next
}

func TestSelectRoulette_NeverPicksZeroWeightWhenAllPositive(t *testing.T) {
	pop := samplePop()
	fitness := []float64{1, 1, 1, 1}
	out := Select(pop, fitness, 10, SelectRoulette, 3, newRand(2))
	assert.Len(t, out, 10)
}

func TestSelectTournament_PrefersHigherFitnessOnAverage(t *testing.T) {
	pop := samplePop()
	fitness := []float64{1, 1, 1, 100}
	rng := newRand(3)
	counts := map[string]int{}
	for i := 0; i < 200; i++ {
		out := Select(pop, fitness, 1, SelectTournament, 4, rng)
		counts[lineupKey(sortedCopy(out[0]))]++
	}
	// With tournament size == population size, the best individual should
	// win essentially every tournament.
	assert.Greater(t, counts[lineupKey(sortedCopy(pop[3]))], 150)
}

func TestCrossover_ChildCellsComeFromEitherParentAtSameColumn(t *testing.T) {
	parents := Population{
		{1, 1, 1},
		{1, 1, 1},
		{2, 2, 2},
		{2, 2, 2},
	}
	children := Crossover(parents, newRand(4))
	require.Len(t, children, 4)
	for _, child := range children {
		for _, v := range child {
			assert.Contains(t, []PlayerID{1, 2}, v)
		}
	}
}

func TestMutate_ZeroRateLeavesPopulationUnchanged(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	pop, err := Populate(pp, posmap, 5, newRand(11), nil)
	require.NoError(t, err)

	mutated := Mutate(pop, posmap, pp, 0.0, newRand(12))
	assert.Equal(t, pop, mutated)
}
