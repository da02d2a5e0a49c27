package ga

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// SetOptimizeConfig configures the set-based multilineup engine, mirroring
// OptimizeConfig's shape but operating on LineupSets. Grounded on
// optimize_pool_based.py's kwargs surface, trimmed to what spec.md §4.9
// names.
type SetOptimizeConfig struct {
	TargetLineups int // N, lineups per set
	PoolSize      int // K, number of sets
	InitialPoolSize int // M, size of LP

	NGenerations int
	StopCriteria int

	EliteDivisor      int
	MutationRate      float64
	MutationIntensity MutationIntensity

	// RefreshInterval > 0 enables periodic elite-pool evolution: every
	// RefreshInterval generations, the bottom fraction of LP's elite
	// portion is replaced by the best lineups present in Sets at that
	// generation (spec.md §4.9.5); lineups seen in earlier generations
	// that are no longer in Sets are not considered.
	RefreshInterval  int
	EliteFraction    float64 // fraction of LP treated as "elite" for refresh

	Diversity SetFitnessConfig

	Salary struct {
		Cap   int
		Floor int
	}
	PosMap          PositionMap
	FlexPositions   []Position
	LockedPlayers   map[PlayerID]bool
	ExcludedPlayers map[PlayerID]bool
	StackingRules   []StackingRule

	NumClusters int // C in §4.9.1; 0 picks 8*N

	Seed int64

	EnableProfiling bool
}

// SetOptimizeResult is the outcome of a set-based run.
type SetOptimizeResult struct {
	Sets        SetPopulation
	Fitness     []float64
	BestSet     LineupSet
	BestScore   float64
	Generations int
	Stagnated   bool
	Profile     *ProfileSummary
}

// OptimizeSets runs the set-level generational loop: build an initial
// lineup pool LP, sample K diverse initial sets via the fingerprint
// sampler, then iterate elitism + set-crossover + set-mutation + validate
// + top-up/trim, tracking the single best set by SetFitness. Grounded on
// optimize_pool_based.py's optimize() and spec.md §4.9.5.
func OptimizeSets(pool *Pool, pospool PositionPool, cfg SetOptimizeConfig, log *logrus.Entry) (*SetOptimizeResult, error) {
	if cfg.TargetLineups <= 0 {
		return nil, newConfigError("target_lineups", errPositive("target_lineups"))
	}
	if cfg.PoolSize <= 0 {
		return nil, newConfigError("pool_size", errPositive("pool_size"))
	}
	if cfg.InitialPoolSize <= 0 {
		cfg.InitialPoolSize = cfg.PoolSize * cfg.TargetLineups * 8
	}
	if cfg.EliteDivisor <= 0 {
		cfg.EliteDivisor = 5
	}
	if cfg.StopCriteria <= 0 {
		cfg.StopCriteria = cfg.NGenerations
	}
	if cfg.NumClusters <= 0 {
		cfg.NumClusters = 8 * cfg.TargetLineups
	}
	if cfg.EliteFraction <= 0 {
		cfg.EliteFraction = 0.1
	}

	rng := newRand(cfg.Seed)
	profiler := NewProfiler(cfg.EnableProfiling)
	profiler.StartOptimization()

	validators := buildValidatorPipeline(OptimizeConfig{
		PosMap:          cfg.PosMap,
		FlexPositions:   cfg.FlexPositions,
		ExcludedPlayers: cfg.ExcludedPlayers,
		StackingRules:   cfg.StackingRules,
		Salary:          cfg.Salary,
	}, log)

	lp, err := buildLineupPool(pospool, cfg.PosMap, cfg.InitialPoolSize, rng, pool, validators, log)
	if err != nil {
		return nil, err
	}

	sets := SampleDiverseSets(lp, cfg.PoolSize, cfg.TargetLineups, cfg.NumClusters, rng)
	sets = pinLockedPlayersInSets(sets, cfg.PosMap, cfg.FlexPositions, cfg.LockedPlayers, pool)

	fitness := SetFitness(sets, pool, cfg.Diversity)
	bestIdx := argmax(fitness)
	bestFitness := fitness[bestIdx]
	bestSet := append(LineupSet(nil), sets[bestIdx]...)

	profiler.MarkSetupComplete()
	profiler.MarkBestSolution(0)

	nUnimproved := 0
	generations := 0
	eliteLP := topLineupsByFitness(lp, pool, cfg.Diversity.Fitness, int(float64(len(lp))*cfg.EliteFraction))

	for gen := 1; gen <= cfg.NGenerations; gen++ {
		if nUnimproved >= cfg.StopCriteria {
			break
		}
		profiler.StartGeneration(gen)
		generations = gen

		eliteN := len(sets) / cfg.EliteDivisor
		if eliteN < 1 {
			eliteN = 1
		}
		eliteIdx := topSetIndices(fitness, eliteN)
		elite := make(SetPopulation, eliteN)
		for i, idx := range eliteIdx {
			elite[i] = sets[idx]
		}

		children := make(SetPopulation, 0, len(sets))
		for len(children) < len(sets) {
			a := sets[rng.Intn(len(sets))]
			b := sets[rng.Intn(len(sets))]
			children = append(children, SetCrossover(a, b, pool, cfg.Diversity.Fitness, lp, rng))
		}

		mutationRate := cfg.MutationRate
		if mutationRate <= 0 {
			mutationRate = 0.1
		}
		for i, set := range children {
			children[i] = SetMutate(set, cfg.PosMap, pospool, lp, mutationRate, cfg.MutationIntensity, nUnimproved, rng)
		}

		combined := append(append(SetPopulation(nil), elite...), children...)
		combined = pinLockedPlayersInSets(combined, cfg.PosMap, cfg.FlexPositions, cfg.LockedPlayers, pool)
		combined = validateSets(combined, cfg.PosMap, cfg.FlexPositions, cfg.Salary.Cap, cfg.Salary.Floor, pool)

		for len(combined) < cfg.PoolSize {
			combined = append(combined, SampleDiverseSets(lp, 1, cfg.TargetLineups, cfg.NumClusters, rng)...)
		}
		if len(combined) > cfg.PoolSize {
			scores := SetFitness(combined, pool, cfg.Diversity)
			idx := topSetIndices(scores, cfg.PoolSize)
			trimmed := make(SetPopulation, cfg.PoolSize)
			for i, s := range idx {
				trimmed[i] = combined[s]
			}
			combined = trimmed
		}
		sets = combined

		fitness = SetFitness(sets, pool, cfg.Diversity)
		genBestIdx := argmax(fitness)
		genBest := fitness[genBestIdx]
		if genBest > bestFitness {
			bestFitness = genBest
			bestSet = append(LineupSet(nil), sets[genBestIdx]...)
			nUnimproved = 0
			profiler.MarkBestSolution(gen)
		} else {
			nUnimproved++
		}

		if cfg.RefreshInterval > 0 && gen%cfg.RefreshInterval == 0 {
			lp, eliteLP = evolveLineupPool(lp, eliteLP, sets, pool, cfg.Diversity.Fitness)
		}

		profiler.EndGeneration()
	}

	profiler.EndOptimization()

	return &SetOptimizeResult{
		Sets:        sets,
		Fitness:     fitness,
		BestSet:     bestSet,
		BestScore:   bestFitness,
		Generations: generations,
		Stagnated:   nUnimproved >= cfg.StopCriteria,
		Profile:     profiler.Summary(),
	}, nil
}

// buildLineupPool samples M validated lineups for the fingerprint-based
// diverse sampler's input pool LP.
func buildLineupPool(pospool PositionPool, posmap PositionMap, m int, rng *rand.Rand, pool *Pool, validators Validator, log *logrus.Entry) ([]Lineup, error) {
	const maxRounds = 25
	lp := make([]Lineup, 0, m)
	for round := 0; len(lp) < m && round < maxRounds; round++ {
		need := m - len(lp)
		batch, err := Populate(pospool, posmap, need, rng, nil)
		if err != nil {
			return nil, err
		}
		valid := validators(batch, pool)
		lp = append(lp, valid...)
	}
	if len(lp) == 0 {
		return nil, &InfeasibleError{Reason: "no lineup survived validation while building the lineup pool"}
	}
	if log != nil {
		log.WithFields(logrus.Fields{"requested": m, "built": len(lp)}).Debug("lineup pool built")
	}
	if len(lp) > m {
		lp = lp[:m]
	}
	return lp, nil
}

func topLineupsByFitness(lp []Lineup, pool *Pool, cfg FitnessConfig, n int) []Lineup {
	if n <= 0 {
		n = 1
	}
	if n > len(lp) {
		n = len(lp)
	}
	scores := make([]float64, len(lp))
	for i, l := range lp {
		scores[i] = fitnessOne(l, pool, cfg)
	}
	idx := topSetIndices(scores, n)
	out := make([]Lineup, n)
	for i, s := range idx {
		out[i] = lp[s]
	}
	return out
}

// evolveLineupPool implements the optional pool-evolution step from
// spec.md §4.9.5: collect unique non-elite lineups currently present across
// sets, take the best of them (a tenth of the elite pool, at least one), and
// swap them in for as many of the worst elite lineups only if the weakest
// incoming lineup beats the strongest outgoing one; then copy the updated
// elite pool over the head of lp.
func evolveLineupPool(lp []Lineup, eliteLP []Lineup, sets SetPopulation, pool *Pool, cfg FitnessConfig) ([]Lineup, []Lineup) {
	seen := make(map[string]bool)
	var candidates []Lineup
	for _, set := range sets {
		for _, lineup := range set {
			key := lineupKey(sortedCopy(lineup))
			if seen[key] {
				continue
			}
			seen[key] = true
			candidates = append(candidates, lineup)
		}
	}

	eliteKeys := make(map[string]bool, len(eliteLP))
	for _, l := range eliteLP {
		eliteKeys[lineupKey(sortedCopy(l))] = true
	}
	fresh := candidates[:0:0]
	for _, c := range candidates {
		if !eliteKeys[lineupKey(sortedCopy(c))] {
			fresh = append(fresh, c)
		}
	}
	if len(fresh) == 0 {
		return lp, eliteLP
	}

	freshScores := make([]float64, len(fresh))
	for i, l := range fresh {
		freshScores[i] = fitnessOne(l, pool, cfg)
	}
	eliteScores := make([]float64, len(eliteLP))
	for i, l := range eliteLP {
		eliteScores[i] = fitnessOne(l, pool, cfg)
	}

	nReplace := len(eliteLP) / 10
	if nReplace < 1 {
		nReplace = 1
	}
	if nReplace > len(fresh) {
		nReplace = len(fresh)
	}

	bestFreshIdx := topSetIndices(freshScores, nReplace)
	worstEliteIdx := bottomIndices(eliteScores, nReplace)

	worstAccepted := freshScores[bestFreshIdx[len(bestFreshIdx)-1]]
	floorReplaced := eliteScores[worstEliteIdx[len(worstEliteIdx)-1]]
	if worstAccepted <= floorReplaced {
		return lp, eliteLP
	}

	newElite := append([]Lineup(nil), eliteLP...)
	for i, wi := range worstEliteIdx {
		newElite[wi] = fresh[bestFreshIdx[i]]
	}

	newLP := append([]Lineup(nil), lp...)
	for i := 0; i < len(newElite) && i < len(newLP); i++ {
		newLP[i] = newElite[i]
	}
	return newLP, newElite
}

func topSetIndices(scores []float64, n int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && scores[idx[j]] > scores[idx[j-1]]; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	if n > len(idx) {
		n = len(idx)
	}
	return idx[:n]
}

func bottomIndices(scores []float64, n int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && scores[idx[j]] < scores[idx[j-1]]; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	if n > len(idx) {
		n = len(idx)
	}
	return idx[:n]
}

func pinLockedPlayersInSets(sets SetPopulation, posmap PositionMap, flexPositions []Position, locked map[PlayerID]bool, pool *Pool) SetPopulation {
	if len(locked) == 0 {
		return sets
	}
	for _, set := range sets {
		for _, lineup := range set {
			pinLockedPlayers(Population{lineup}, posmap, flexPositions, locked, pool)
		}
	}
	return sets
}

func validateSets(sets SetPopulation, posmap PositionMap, flexPositions []Position, cap, floor int, pool *Pool) SetPopulation {
	validator := Compose(ValidateDuplicates, ValidatePositions(posmap, flexPositions), ValidateSalary(cap, floor))
	out := make(SetPopulation, 0, len(sets))
	for _, set := range sets {
		valid := validator(Population(set), pool)
		if len(valid) < len(set) {
			// A shrunk set from intra-set validation is dropped outright;
			// the caller's top-up loop replaces it with a freshly sampled
			// set rather than patching individual slots.
			continue
		}
		out = append(out, LineupSet(valid))
	}
	return out
}
