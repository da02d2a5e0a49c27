package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseOptimizeConfig() OptimizeConfig {
	cfg := OptimizeConfig{
		PopulationSize: 30,
		NGenerations:   10,
		StopCriteria:   5,
		EliteDivisor:   5,
		EliteMethod:    SelectFittest,
		SelectMethod:   SelectRoulette,
		TournamentSize: 3,
		PosMap:         testPosMap(),
		FlexPositions:  FlexPositions,
		Seed:           123,
	}
	cfg.Salary.Cap = 50000
	return cfg
}

func TestOptimize_ReturnsValidBestLineup(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	cfg := baseOptimizeConfig()
	result, err := Optimize(pool, pp, cfg, nil)
	require.NoError(t, err)

	assert.Len(t, result.BestLineup, len(posmap))
	assert.Greater(t, result.BestScore, 0.0)
	assert.LessOrEqual(t, len(result.Population), cfg.PopulationSize)
}

func TestOptimize_DeterministicGivenSameSeed(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	cfg := baseOptimizeConfig()
	r1, err := Optimize(pool, pp, cfg, nil)
	require.NoError(t, err)
	r2, err := Optimize(pool, pp, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, r1.BestLineup, r2.BestLineup)
	assert.Equal(t, r1.BestScore, r2.BestScore)
}

func TestOptimize_BestScoreBoundsFinalPopulationFitness(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	cfg := baseOptimizeConfig()
	cfg.NGenerations = 25
	cfg.StopCriteria = 25
	result, err := Optimize(pool, pp, cfg, nil)
	require.NoError(t, err)

	for _, score := range result.Fitness {
		assert.LessOrEqual(t, score, result.BestScore+1e-9)
	}
}

func TestOptimize_RespectsLockedPlayers(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	cfg := baseOptimizeConfig()
	cfg.LockedPlayers = map[PlayerID]bool{1: true} // QB1
	result, err := Optimize(pool, pp, cfg, nil)
	require.NoError(t, err)

	assert.Contains(t, result.BestLineup, PlayerID(1))
}

func TestOptimize_ZeroPopulationSizeIsConfigError(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	cfg := baseOptimizeConfig()
	cfg.PopulationSize = 0
	_, err = Optimize(pool, pp, cfg, nil)
	require.Error(t, err)
}

func BenchmarkOptimize_SmallPopulation(b *testing.B) {
	raw := samplePlayers()
	pool, _ := BuildPool(raw, BuildPoolOptions{MinPoints: 5}, nil)
	posmap := testPosMap()
	pp, _ := BuildPositionPool(pool, posmap, nil, nil)
	cfg := baseOptimizeConfig()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cfg.Seed = int64(i)
		_, _ = Optimize(pool, pp, cfg, nil)
	}
}
