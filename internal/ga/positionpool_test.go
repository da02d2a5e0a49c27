package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestPool(t *testing.T) *Pool {
	t.Helper()
	pool, err := BuildPool(samplePlayers(), BuildPoolOptions{MinPoints: 5}, nil)
	require.NoError(t, err)
	return pool
}

func TestBuildPositionPool_ProbabilitiesSumToOne(t *testing.T) {
	pool := buildTestPool(t)
	posmap := PositionMap{"QB", "RB", "RB", "WR", "WR", "WR", "TE", "FLEX", "DST"}

	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	for slot, view := range pp {
		sum := 0.0
		for _, p := range view.Prob {
			sum += p
		}
		assert.InDeltaf(t, 1.0, sum, 1e-9, "slot %s probabilities should sum to 1", slot)
	}
}

func TestBuildPositionPool_FlexOnlyIncludesEligiblePositions(t *testing.T) {
	pool := buildTestPool(t)
	posmap := PositionMap{"QB", "RB", "WR", "TE", "FLEX", "DST"}

	pp, err := BuildPositionPool(pool, posmap, nil, nil)
	require.NoError(t, err)

	flex := pp["FLEX"]
	for _, id := range flex.Indices {
		idx := pool.indexOf(id)
		require.GreaterOrEqual(t, idx, 0)
		pos := pool.Players[idx].Position
		assert.Contains(t, []Position{"RB", "WR", "TE"}, pos)
	}
}

func TestBuildPositionPool_MissingSlotIsDataError(t *testing.T) {
	pool := buildTestPool(t)
	posmap := PositionMap{"K"} // no kickers in samplePlayers
	_, err := BuildPositionPool(pool, posmap, nil, nil)
	require.Error(t, err)
}
