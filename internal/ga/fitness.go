package ga

import "math"

// FitnessConfig tunes the optional domain-specific additive terms spec.md
// §4.5 and §9 allow on top of the base summed-points fitness.
type FitnessConfig struct {
	// SlotCoefficients, if non-nil, multiplies each slot's player points by
	// posmap-index coefficient before summing — the captain/showdown 1.5x
	// multiplier on slot 0 is SlotCoefficients[0] = 1.5.
	SlotCoefficients []float64

	// UseCorrelations enables the team/game stack log-bonus from
	// algorithm.go's calculateCorrelationBonus.
	UseCorrelations   bool
	CorrelationWeight float64
}

// Fitness scores a Population: the base score is sum(points[lineup]) per
// pangadfs.fitness.FitnessDefault, with SlotCoefficients and the
// correlation bonus applied when configured.
func Fitness(pop Population, pool *Pool, cfg FitnessConfig) []float64 {
	scores := make([]float64, len(pop))
	for i, lineup := range pop {
		scores[i] = fitnessOne(lineup, pool, cfg)
	}
	return scores
}

func fitnessOne(lineup Lineup, pool *Pool, cfg FitnessConfig) float64 {
	total := 0.0
	teamCounts := make(map[string]int, len(lineup))
	gameCounts := make(map[string]int, len(lineup))

	for col, id := range lineup {
		idx := pool.indexOf(id)
		if idx < 0 {
			continue
		}
		pts := pool.Points[idx]
		if cfg.SlotCoefficients != nil && col < len(cfg.SlotCoefficients) {
			pts *= cfg.SlotCoefficients[col]
		}
		total += pts

		if cfg.UseCorrelations {
			player := pool.Players[idx]
			teamCounts[player.Team]++
			gameCounts[gameKey(player.Team, player.Opponent)]++
		}
	}

	if cfg.UseCorrelations {
		total += correlationBonus(teamCounts, gameCounts, cfg.CorrelationWeight)
	}

	return total
}

// correlationBonus rewards team stacks (>=2 shared-team players) and game
// stacks (>=3 players from one game), grounded on algorithm.go's
// calculateCorrelationBonus: a log-scaled bonus per qualifying group.
func correlationBonus(teamCounts, gameCounts map[string]int, weight float64) float64 {
	if weight <= 0 {
		return 0
	}
	bonus := 0.0
	for _, count := range teamCounts {
		if count >= 2 {
			bonus += math.Log(float64(count)) * weight * 1.0
		}
	}
	for _, count := range gameCounts {
		if count >= 3 {
			bonus += math.Log(float64(count)) * weight * 1.5
		}
	}
	return bonus
}

// gameKey canonicalizes a (team, opponent) pair into an order-independent
// game identifier so both teams in a game land in the same bucket.
func gameKey(team, opponent string) string {
	if team < opponent {
		return team + "@" + opponent
	}
	return opponent + "@" + team
}
