package ga

import "math/rand"

// SetFitnessConfig tunes the set-level fitness penalty from spec.md
// §4.9.2.
type SetFitnessConfig struct {
	DiversityWeight float64
	Method          DiversityMethod
	Fitness         FitnessConfig
}

// SetFitness scores a SetPopulation: each set's score is the summed points
// of all its lineups minus DiversityWeight times the mean pairwise
// similarity over all N*(N-1)/2 pairs within the set, skipped when the
// weight is zero. Grounded on spec.md §4.9.2 and
// optimize_pool_based.py's fitness_sets usage pattern.
func SetFitness(sets SetPopulation, pool *Pool, cfg SetFitnessConfig) []float64 {
	if cfg.Method == "" {
		cfg.Method = DiversityJaccard
	}
	scores := make([]float64, len(sets))
	for k, set := range sets {
		total := 0.0
		for _, lineup := range set {
			total += fitnessOne(lineup, pool, cfg.Fitness)
		}
		if cfg.DiversityWeight > 0 && len(set) > 1 {
			total -= cfg.DiversityWeight * meanPairwiseSimilarity(set, cfg.Method)
		}
		scores[k] = total
	}
	return scores
}

func meanPairwiseSimilarity(set LineupSet, method DiversityMethod) float64 {
	n := len(set)
	if n < 2 {
		return 0
	}
	sum := 0.0
	pairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += similarity(set[i], set[j], method)
			pairs++
		}
	}
	return sum / float64(pairs)
}

// SetCrossover produces a child set from two parent sets by pooling their
// 2N lineups, tournament-selecting N of them by fitness, deduping, and
// topping up duplicates with fresh draws from lp, per spec.md §4.9.3.
// Random draws from lp are bounded; after them lp is scanned in order for
// unused lineups, and if lp holds too few distinct lineups the child is
// returned with fewer than N.
func SetCrossover(a, b LineupSet, pool *Pool, fitnessCfg FitnessConfig, lp []Lineup, rng *rand.Rand) LineupSet {
	n := len(a)
	candidates := make([]Lineup, 0, len(a)+len(b))
	candidates = append(candidates, a...)
	candidates = append(candidates, b...)

	scores := make([]float64, len(candidates))
	for i, lineup := range candidates {
		scores[i] = fitnessOne(lineup, pool, fitnessCfg)
	}

	child := make(LineupSet, 0, n)
	seen := make(map[string]bool, n)
	for len(child) < n && len(candidates) > 0 {
		tSize := 3
		if tSize > len(candidates) {
			tSize = len(candidates)
		}
		best := rng.Intn(len(candidates))
		for t := 1; t < tSize; t++ {
			c := rng.Intn(len(candidates))
			if scores[c] > scores[best] {
				best = c
			}
		}
		winner := candidates[best]
		candidates = append(candidates[:best], candidates[best+1:]...)
		scores = append(scores[:best], scores[best+1:]...)

		key := lineupKey(sortedCopy(winner))
		if seen[key] {
			continue
		}
		seen[key] = true
		child = append(child, winner)
	}

	const maxFillDraws = 50
	for attempt := 0; len(child) < n && len(lp) > 0 && attempt < maxFillDraws; attempt++ {
		cand := lp[rng.Intn(len(lp))]
		key := lineupKey(sortedCopy(cand))
		if seen[key] {
			continue
		}
		seen[key] = true
		child = append(child, cand)
	}
	for _, cand := range lp {
		if len(child) >= n {
			break
		}
		key := lineupKey(sortedCopy(cand))
		if seen[key] {
			continue
		}
		seen[key] = true
		child = append(child, cand)
	}

	return child
}

// MutationIntensity sets how often SetMutate replaces a whole lineup with a
// draw from the lineup pool instead of swapping a single player.
type MutationIntensity string

const (
	IntensityLow      MutationIntensity = "low"
	IntensityMedium   MutationIntensity = "medium"
	IntensityHigh     MutationIntensity = "high"
	IntensityAdaptive MutationIntensity = "adaptive"
)

// SetMutate mutates each lineup in a set with probability mutationRate,
// choosing between a single position-compatible swap and a full pool
// injection according to intensity, per spec.md §4.9.4.
func SetMutate(set LineupSet, posmap PositionMap, pospool PositionPool, lp []Lineup, mutationRate float64, intensity MutationIntensity, nUnimproved int, rng *rand.Rand) LineupSet {
	injectionProb := intensityInjectionProb(intensity, nUnimproved)

	out := make(LineupSet, len(set))
	for i, lineup := range set {
		if rng.Float64() >= mutationRate {
			out[i] = lineup
			continue
		}
		if rng.Float64() < injectionProb && len(lp) > 0 {
			out[i] = lp[rng.Intn(len(lp))]
			continue
		}
		mutated := append(Lineup(nil), lineup...)
		col := rng.Intn(len(posmap))
		slot := posmap[col]
		if view, ok := pospool[slot]; ok && len(view.Indices) > 0 {
			id, err := weightedSampleWithoutReplacement(view, 1, rng)
			if err == nil {
				mutated[col] = id[0]
			}
		}
		out[i] = mutated
	}
	return out
}

func intensityInjectionProb(intensity MutationIntensity, nUnimproved int) float64 {
	switch intensity {
	case IntensityLow:
		return 0.1
	case IntensityMedium:
		return 0.4
	case IntensityHigh:
		return 0.8
	case IntensityAdaptive:
		p := 0.1 + 0.05*float64(nUnimproved)
		if p > 0.8 {
			p = 0.8
		}
		return p
	default:
		return 0.2
	}
}

func sortedCopy(l Lineup) Lineup {
	sorted := append(Lineup(nil), l...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}
