package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPosMap() PositionMap {
	return PositionMap{"QB", "RB", "RB", "WR", "WR", "WR", "TE", "FLEX", "DST"}
}

func TestPopulate_ProducesCorrectShape(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	rng := newRand(42)
	pop, err := Populate(pp, posmap, 20, rng, nil)
	require.NoError(t, err)

	require.Len(t, pop, 20)
	for _, lineup := range pop {
		assert.Len(t, lineup, len(posmap))
	}
}

func TestPopulate_RowsHaveNoDuplicatePlayers(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	rng := newRand(7)
	pop, err := Populate(pp, posmap, 30, rng, nil)
	require.NoError(t, err)

	for _, lineup := range pop {
		seen := make(map[PlayerID]bool, len(lineup))
		for _, id := range lineup {
			assert.False(t, seen[id], "lineup should not repeat a player id")
			seen[id] = true
		}
	}
}

func TestPopulate_DeterministicGivenSameSeed(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	popA, err := Populate(pp, posmap, 15, newRand(99), nil)
	require.NoError(t, err)
	popB, err := Populate(pp, posmap, 15, newRand(99), nil)
	require.NoError(t, err)

	assert.Equal(t, popA, popB)
}

func TestPopulate_ZeroPopulationSizeIsConfigError(t *testing.T) {
	pool := buildTestPool(t)
	posmap := testPosMap()
	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	_, err = Populate(pp, posmap, 0, newRand(1), nil)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
