package ga

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DiversityMethod names the lineup-similarity measure used by both the
// post-selector (§4.8) and set-level fitness (§4.9.2).
type DiversityMethod string

const (
	DiversityJaccard DiversityMethod = "jaccard"
	DiversityHamming DiversityMethod = "hamming"
)

// PostSelectorConfig tunes the Diverse Post-Selector. DiversityWeight and
// MinOverlapThreshold default to w=0.2, tau=0.2 per spec's resolved Open
// Question (the source documents a "strict" and an "aggressive" tuning
// with different defaults in different files; this repo picks the
// documented canonical default and leaves both knobs configurable).
type PostSelectorConfig struct {
	TargetLineups      int
	DiversityWeight    float64
	MinOverlapThreshold float64
	Method             DiversityMethod

	// ExposureLimits, if set, caps how many of the selected lineups may
	// contain a given player, generalizing exposure.go's per-player
	// exposure constraint onto the post-selector's greedy pick loop.
	ExposureLimits map[PlayerID]float64
}

// DefaultPostSelectorConfig returns the w=0.2, tau=0.2 default.
func DefaultPostSelectorConfig(targetLineups int) PostSelectorConfig {
	return PostSelectorConfig{
		TargetLineups:       targetLineups,
		DiversityWeight:     0.2,
		MinOverlapThreshold: 0.2,
		Method:              DiversityJaccard,
	}
}

// DiversityMetrics summarizes the pairwise similarity of a chosen set of
// lineups.
type DiversityMetrics struct {
	AvgPairwiseSim float64
	MinPairwiseSim float64
	PairwiseMatrix [][]float64
}

// PostSelectResult is the output of SelectDiverse.
type PostSelectResult struct {
	Lineups  Population
	Fitness  []float64
	Metrics  DiversityMetrics
}

// SelectDiverse implements spec.md §4.8: sort by fitness descending, then
// greedily accept the highest-scoring remaining candidate whose maximum
// similarity to the already-chosen set is below a progressively relaxed
// threshold, until N lineups are chosen or the pool is exhausted.
func SelectDiverse(pop Population, fitness []float64, cfg PostSelectorConfig) PostSelectResult {
	if cfg.Method == "" {
		cfg.Method = DiversityJaccard
	}
	n := cfg.TargetLineups
	if n > len(pop) {
		n = len(pop)
	}
	if n <= 0 {
		return PostSelectResult{}
	}

	order := make([]int, len(pop))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return fitness[order[i]] > fitness[order[j]] })

	scale := medianFitness(fitness)
	if scale <= 0 {
		scale = 1
	}

	chosen := []int{order[0]}
	remaining := append([]int(nil), order[1:]...)
	exposureCount := make(map[PlayerID]int)
	for _, id := range pop[order[0]] {
		exposureCount[id]++
	}

	tau := cfg.MinOverlapThreshold
	if tau <= 0 {
		tau = 0.2
	}

	for len(chosen) < n && len(remaining) > 0 {
		bestIdx := -1
		bestScore := math.Inf(-1)

		for ri, c := range remaining {
			if exceedsExposure(pop[c], exposureCount, n, cfg.ExposureLimits) {
				continue
			}
			maxSim := 0.0
			for _, s := range chosen {
				sim := similarity(pop[c], pop[s], cfg.Method)
				if sim > maxSim {
					maxSim = sim
				}
			}
			if maxSim > 1-tau {
				continue
			}
			score := fitness[c] - cfg.DiversityWeight*maxSim*scale
			if score > bestScore {
				bestScore = score
				bestIdx = ri
			}
		}

		if bestIdx < 0 {
			tau *= 0.7
			if tau < 0.05 {
				// Abandon diversity; append remaining candidates by
				// fitness order alone until N is reached.
				for _, c := range remaining {
					chosen = append(chosen, c)
					if len(chosen) == n {
						break
					}
				}
				break
			}
			continue
		}

		picked := remaining[bestIdx]
		chosen = append(chosen, picked)
		for _, id := range pop[picked] {
			exposureCount[id]++
		}
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	lineups := make(Population, len(chosen))
	fits := make([]float64, len(chosen))
	for i, idx := range chosen {
		lineups[i] = pop[idx]
		fits[i] = fitness[idx]
	}

	return PostSelectResult{
		Lineups: lineups,
		Fitness: fits,
		Metrics: computeDiversityMetrics(lineups, cfg.Method),
	}
}

// exceedsExposure reports whether adding candidate would push any of its
// players' selection share above its configured max-exposure fraction,
// generalizing exposure.go's ExposureManager.CanAddPlayer onto the
// post-selector's fixed target size N.
func exceedsExposure(candidate Lineup, counts map[PlayerID]int, target int, limits map[PlayerID]float64) bool {
	if len(limits) == 0 {
		return false
	}
	for _, id := range candidate {
		limit, ok := limits[id]
		if !ok {
			continue
		}
		projected := float64(counts[id]+1) / float64(target)
		if projected > limit {
			return true
		}
	}
	return false
}

// similarity dispatches to Jaccard or Hamming per method, grounded on
// optimize_pool_based.py's _jaccard_similarity / _hamming_similarity.
func similarity(a, b Lineup, method DiversityMethod) float64 {
	if method == DiversityHamming {
		return hammingSimilarity(a, b)
	}
	return jaccardSimilarity(a, b)
}

func jaccardSimilarity(a, b Lineup) float64 {
	setA := make(map[PlayerID]bool, len(a))
	for _, id := range a {
		setA[id] = true
	}
	setB := make(map[PlayerID]bool, len(b))
	for _, id := range b {
		setB[id] = true
	}
	inter := 0
	for id := range setA {
		if setB[id] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func hammingSimilarity(a, b Lineup) float64 {
	if len(a) == 0 {
		return 0
	}
	matches := 0
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(a))
}

// computeDiversityMetrics builds the full symmetric pairwise matrix (1.0 on
// the diagonal) and summarizes avg/min off-diagonal similarity, grounded on
// optimize_pool_based.py's _calculate_set_diversity_metrics.
func computeDiversityMetrics(lineups Population, method DiversityMethod) DiversityMetrics {
	n := len(lineups)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1.0
	}
	if n <= 1 {
		return DiversityMetrics{AvgPairwiseSim: 0, MinPairwiseSim: 0, PairwiseMatrix: matrix}
	}

	var overlaps []float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := similarity(lineups[i], lineups[j], method)
			matrix[i][j] = sim
			matrix[j][i] = sim
			overlaps = append(overlaps, sim)
		}
	}

	avg := stat.Mean(overlaps, nil)
	min := overlaps[0]
	for _, o := range overlaps {
		if o < min {
			min = o
		}
	}
	return DiversityMetrics{AvgPairwiseSim: avg, MinPairwiseSim: min, PairwiseMatrix: matrix}
}

func medianFitness(fitness []float64) float64 {
	if len(fitness) == 0 {
		return 0
	}
	sorted := append([]float64(nil), fitness...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
