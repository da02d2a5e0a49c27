package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDuplicates_DropsIntraLineupDuplicate(t *testing.T) {
	pool := buildTestPool(t)
	pop := Population{
		{1, 2, 3, 5, 6, 7, 8, 9, 2}, // repeats player 2
		{1, 2, 3, 5, 6, 7, 8, 9, 4},
	}
	out := ValidateDuplicates(pop, pool)
	require.Len(t, out, 1)
	assert.Equal(t, pop[1], out[0])
}

func TestValidateDuplicates_DropsGlobalDuplicateRow(t *testing.T) {
	pool := buildTestPool(t)
	row := Lineup{1, 2, 3, 5, 6, 7, 8, 9, 4}
	pop := Population{append(Lineup(nil), row...), append(Lineup(nil), row...)}
	out := ValidateDuplicates(pop, pool)
	assert.Len(t, out, 1)
}

func TestValidateSalary_DropsOverCapAndUnderFloor(t *testing.T) {
	pool := buildTestPool(t)
	cheap := Lineup{10} // RB4 salary 3000, but won't be in pool (filtered by MinPoints);
	_ = cheap
	expensive := Lineup{1, 2, 3, 5, 6, 7, 8, 9, 4} // sums well over a tiny cap
	v := ValidateSalary(100, 0)
	out := v(Population{expensive}, pool)
	assert.Len(t, out, 0)

	v2 := ValidateSalary(1_000_000, 0)
	out2 := v2(Population{expensive}, pool)
	assert.Len(t, out2, 1)

	v3 := ValidateSalary(1_000_000, 999_999) // floor above the lineup's 45,900 total
	out3 := v3(Population{expensive}, pool)
	assert.Len(t, out3, 0)
}

func TestValidatePositions_RejectsMissingRequiredSlot(t *testing.T) {
	pool := buildTestPool(t)
	posmap := PositionMap{"QB", "RB", "RB", "WR", "WR", "WR", "TE", "FLEX", "DST"}
	v := ValidatePositions(posmap, FlexPositions)

	// Missing the DST entirely (uses a second QB instead).
	bad := Lineup{1, 2, 3, 5, 6, 7, 8, 1}
	out := v(Population{bad}, pool)
	assert.Len(t, out, 0)
}

func TestValidateExcluded_DropsLineupsContainingExcludedPlayer(t *testing.T) {
	pool := buildTestPool(t)
	v := ValidateExcluded(map[PlayerID]bool{5: true})
	pop := Population{{1, 2, 3, 5}, {1, 2, 3, 4}}
	out := v(pop, pool)
	require.Len(t, out, 1)
	assert.Equal(t, pop[1], out[0])
}

func TestCompose_ShortCircuitsOnEmptyPopulation(t *testing.T) {
	pool := buildTestPool(t)
	calls := 0
	counting := func(pop Population, _ *Pool) Population {
		calls++
		return pop
	}
	v := Compose(func(pop Population, _ *Pool) Population { return Population{} }, counting)
	out := v(Population{{1, 2}}, pool)
	assert.Empty(t, out)
	assert.Equal(t, 0, calls)
}
