package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitness_SumsProjectedPoints(t *testing.T) {
	pool := buildTestPool(t)
	lineup := Lineup{1, 2, 5} // QB1(22.5) + RB1(18.0) + WR1(16.5) = 57.0
	scores := Fitness(Population{lineup}, pool, FitnessConfig{})
	assert.InDelta(t, 57.0, scores[0], 1e-9)
}

func TestFitness_SlotCoefficientAppliesCaptainMultiplier(t *testing.T) {
	pool := buildTestPool(t)
	lineup := Lineup{1, 2} // QB1(22.5)*1.5 + RB1(18.0)
	cfg := FitnessConfig{SlotCoefficients: []float64{1.5, 1.0}}
	scores := Fitness(Population{lineup}, pool, cfg)
	assert.InDelta(t, 22.5*1.5+18.0, scores[0], 1e-9)
}

func TestFitness_CorrelationBonusRewardsTeamStack(t *testing.T) {
	pool := buildTestPool(t)
	stacked := Lineup{1, 2, 5} // all NYJ
	unstacked := Lineup{1, 4, 7} // spread across teams
	cfg := FitnessConfig{UseCorrelations: true, CorrelationWeight: 1.0}

	stackedScore := Fitness(Population{stacked}, pool, cfg)[0]
	baseStacked := Fitness(Population{stacked}, pool, FitnessConfig{})[0]
	unstackedScore := Fitness(Population{unstacked}, pool, cfg)[0]
	baseUnstacked := Fitness(Population{unstacked}, pool, FitnessConfig{})[0]

	assert.Greater(t, stackedScore-baseStacked, unstackedScore-baseUnstacked)
}
