package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFitness_SumsAllLineupsInSet(t *testing.T) {
	pool := buildTestPool(t)
	set := LineupSet{{1, 2}, {5, 8}} // 22.5+18.0 + 16.5+10.0 = 67.0
	scores := SetFitness(SetPopulation{set}, pool, SetFitnessConfig{})
	assert.InDelta(t, 67.0, scores[0], 1e-9)
}

func TestSetFitness_DiversityPenaltyReducesScoreForSimilarLineups(t *testing.T) {
	pool := buildTestPool(t)
	similar := SetPopulation{{{1, 2, 5}, {1, 2, 8}}}
	distinct := SetPopulation{{{1, 2, 5}, {4, 7, 8}}}

	cfgNoPenalty := SetFitnessConfig{}
	cfgPenalty := SetFitnessConfig{DiversityWeight: 10, Method: DiversityJaccard}

	similarBase := SetFitness(similar, pool, cfgNoPenalty)[0]
	similarPenalized := SetFitness(similar, pool, cfgPenalty)[0]
	distinctBase := SetFitness(distinct, pool, cfgNoPenalty)[0]
	distinctPenalized := SetFitness(distinct, pool, cfgPenalty)[0]

	assert.Greater(t, similarBase-similarPenalized, distinctBase-distinctPenalized)
}

func TestSetCrossover_ChildHasNoDuplicateLineups(t *testing.T) {
	pool := buildTestPool(t)
	a := LineupSet{{1, 2}, {3, 5}, {6, 8}}
	b := LineupSet{{1, 2}, {4, 7}, {9, 5}}
	lp := []Lineup{{10, 1}, {10, 2}}

	child := SetCrossover(a, b, pool, FitnessConfig{}, lp, newRand(5))
	require.Len(t, child, len(a))

	seen := make(map[string]bool)
	for _, l := range child {
		key := lineupKey(sortedCopy(l))
		assert.False(t, seen[key], "child set should not contain duplicate lineups")
		seen[key] = true
	}
}

func TestSetMutate_ZeroRateLeavesSetUnchanged(t *testing.T) {
	posmap := testPosMap()
	pool := buildTestPool(t)
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	pop, err := Populate(pp, posmap, 3, newRand(20), nil)
	require.NoError(t, err)
	set := LineupSet(pop)

	mutated := SetMutate(set, posmap, pp, nil, 0.0, IntensityLow, 0, newRand(21))
	assert.Equal(t, set, mutated)
}

func TestIntensityInjectionProb_AdaptiveRisesWithStagnation(t *testing.T) {
	low := intensityInjectionProb(IntensityAdaptive, 0)
	high := intensityInjectionProb(IntensityAdaptive, 20)
	assert.Less(t, low, high)
	assert.LessOrEqual(t, high, 0.8)
}
