package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseSetOptimizeConfig() SetOptimizeConfig {
	cfg := SetOptimizeConfig{
		TargetLineups:   3,
		PoolSize:        8,
		InitialPoolSize: 120,
		NGenerations:    4,
		StopCriteria:    4,
		EliteDivisor:    4,
		MutationRate:    0.1,
		MutationIntensity: IntensityAdaptive,
		PosMap:          testPosMap(),
		FlexPositions:   FlexPositions,
		NumClusters:     15,
		Seed:            55,
	}
	cfg.Salary.Cap = 50000
	cfg.Diversity = SetFitnessConfig{DiversityWeight: 0.2, Method: DiversityJaccard}
	return cfg
}

func TestOptimizeSets_ReturnsBestSetOfCorrectSize(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	cfg := baseSetOptimizeConfig()
	result, err := OptimizeSets(pool, pp, cfg, nil)
	require.NoError(t, err)

	assert.Len(t, result.BestSet, cfg.TargetLineups)
	assert.Len(t, result.Sets, cfg.PoolSize)
}

func TestOptimizeSets_DeterministicGivenSameSeed(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	cfg := baseSetOptimizeConfig()
	r1, err := OptimizeSets(pool, pp, cfg, nil)
	require.NoError(t, err)
	r2, err := OptimizeSets(pool, pp, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, r1.BestSet, r2.BestSet)
	assert.Equal(t, r1.BestScore, r2.BestScore)
}

func TestOptimizeSets_PoolEvolutionDoesNotBreakInvariants(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	cfg := baseSetOptimizeConfig()
	cfg.RefreshInterval = 2
	cfg.NGenerations = 5
	cfg.StopCriteria = 5
	result, err := OptimizeSets(pool, pp, cfg, nil)
	require.NoError(t, err)

	assert.Len(t, result.BestSet, cfg.TargetLineups)
}

func TestOptimizeSets_InvalidPoolSizeIsConfigError(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	cfg := baseSetOptimizeConfig()
	cfg.PoolSize = 0
	_, err = OptimizeSets(pool, pp, cfg, nil)
	require.Error(t, err)
}
