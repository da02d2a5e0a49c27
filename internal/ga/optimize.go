package ga

import (
	"math"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
)

// OptimizeConfig configures a single-lineup generational run, grounded on
// optimize.py's ga.ctx['ga_settings'] lookups.
type OptimizeConfig struct {
	PopulationSize int
	NGenerations   int
	StopCriteria   int // consecutive unimproved generations before early stop

	EliteDivisor   int // elite count = PopulationSize / EliteDivisor
	EliteMethod    SelectMethod
	SelectMethod   SelectMethod
	TournamentSize int

	// MutationRate <= 0 enables the adaptive default from optimize.py:
	// max(0.05, unimproved/50).
	MutationRate float64

	Salary struct {
		Cap   int
		Floor int // 0 disables the floor check
	}

	PosMap        PositionMap
	FlexPositions []Position

	LockedPlayers   map[PlayerID]bool
	ExcludedPlayers map[PlayerID]bool
	StackingRules   []StackingRule

	Fitness FitnessConfig

	Seed int64

	EnableProfiling bool
}

// OptimizeResult is the outcome of a single-lineup run, matching the
// population/fitness/best_lineup/best_score shape of optimize.py's results
// dict.
type OptimizeResult struct {
	Population  Population
	Fitness     []float64
	BestLineup  Lineup
	BestScore   float64
	Generations int
	Stagnated   bool
	Profile     *ProfileSummary
}

// Optimize runs the generational loop: elitist carry-over plus roulette (or
// configured) selection, uniform crossover, position-pool resampling
// mutation, top-up-and-trim validation, and early stop on stagnation.
// Grounded on pangadfs.optimize.OptimizeDefault.optimize.
func Optimize(pool *Pool, pospool PositionPool, cfg OptimizeConfig, log *logrus.Entry) (*OptimizeResult, error) {
	if cfg.PopulationSize <= 0 {
		return nil, newConfigError("population_size", errPositive("population_size"))
	}
	if cfg.EliteDivisor <= 0 {
		cfg.EliteDivisor = 5
	}
	if cfg.EliteMethod == "" {
		cfg.EliteMethod = SelectFittest
	}
	if cfg.SelectMethod == "" {
		cfg.SelectMethod = SelectRoulette
	}
	if cfg.TournamentSize <= 0 {
		cfg.TournamentSize = 3
	}
	if cfg.StopCriteria <= 0 {
		cfg.StopCriteria = cfg.NGenerations
	}

	rng := newRand(cfg.Seed)
	profiler := NewProfiler(cfg.EnableProfiling)
	profiler.StartOptimization()

	validators := buildValidatorPipeline(cfg, log)

	population, err := Populate(pospool, cfg.PosMap, cfg.PopulationSize, rng, log)
	if err != nil {
		return nil, err
	}
	population = pinLockedPlayers(population, cfg.PosMap, cfg.FlexPositions, cfg.LockedPlayers, pool)
	population = validators(population, pool)
	if len(population) == 0 {
		return nil, &InfeasibleError{Reason: "no lineup survived initial validation"}
	}

	fitness := Fitness(population, pool, cfg.Fitness)
	bestIdx := argmax(fitness)
	bestFitness := fitness[bestIdx]
	bestLineup := append(Lineup(nil), population[bestIdx]...)

	profiler.MarkSetupComplete()
	profiler.MarkBestSolution(0)

	nUnimproved := 0
	generations := 0

	for gen := 1; gen <= cfg.NGenerations; gen++ {
		if nUnimproved >= cfg.StopCriteria {
			break
		}
		profiler.StartGeneration(gen)
		generations = gen

		eliteN := len(population) / cfg.EliteDivisor
		if eliteN < 1 {
			eliteN = 1
		}

		var elite, selected, crossed, mutated, combined Population
		profiler.TimeOperation("select", func() {
			elite = Select(population, fitness, eliteN, cfg.EliteMethod, cfg.TournamentSize, rng)
			selected = Select(population, fitness, len(population), cfg.SelectMethod, cfg.TournamentSize, rng)
		})

		profiler.TimeOperation("crossover", func() {
			crossed = Crossover(selected, rng)
		})

		mutationRate := cfg.MutationRate
		if mutationRate <= 0 {
			mutationRate = math.Max(0.05, float64(nUnimproved)/50.0)
		}
		profiler.TimeOperation("mutate", func() {
			mutated = Mutate(crossed, cfg.PosMap, pospool, mutationRate, rng)
		})

		profiler.TimeOperation("validate", func() {
			combined = append(append(Population(nil), elite...), mutated...)
			combined = pinLockedPlayers(combined, cfg.PosMap, cfg.FlexPositions, cfg.LockedPlayers, pool)
			combined = validators(combined, pool)
			combined = topUpAndTrim(combined, pospool, cfg, rng, pool, validators, log)
		})
		population = combined

		profiler.TimeOperation("fitness", func() {
			fitness = Fitness(population, pool, cfg.Fitness)
		})
		genBestIdx := argmax(fitness)
		genBest := fitness[genBestIdx]

		if genBest > bestFitness {
			bestFitness = genBest
			bestLineup = append(Lineup(nil), population[genBestIdx]...)
			nUnimproved = 0
			profiler.MarkBestSolution(gen)
			if log != nil {
				log.WithFields(logrus.Fields{"generation": gen, "best_score": bestFitness}).Debug("new best lineup")
			}
		} else {
			nUnimproved++
		}
		profiler.EndGeneration()
	}

	profiler.EndOptimization()

	return &OptimizeResult{
		Population:  population,
		Fitness:     fitness,
		BestLineup:  bestLineup,
		BestScore:   bestFitness,
		Generations: generations,
		Stagnated:   nUnimproved >= cfg.StopCriteria,
		Profile:     profiler.Summary(),
	}, nil
}

// topUpAndTrim restores the population to PopulationSize after a
// validation pass has shrunk it: sample fresh individuals until |pop| >= K,
// for at most 25 rounds, then trim back to K by descending fitness. If the
// rounds run out first, the short population is returned and a warning is
// logged. spec.md §4.7 step 7 requires this; the base
// optimize.py read for this engine does not show it explicitly, so this is
// implemented directly from spec.md's wording.
func topUpAndTrim(pop Population, pospool PositionPool, cfg OptimizeConfig, rng *rand.Rand, pool *Pool, validators Validator, log *logrus.Entry) Population {
	const maxTopUpRounds = 25
	for round := 0; len(pop) < cfg.PopulationSize && round < maxTopUpRounds; round++ {
		need := cfg.PopulationSize - len(pop)
		fresh, err := Populate(pospool, cfg.PosMap, need*2+1, rng, nil)
		if err != nil {
			break
		}
		fresh = pinLockedPlayers(fresh, cfg.PosMap, cfg.FlexPositions, cfg.LockedPlayers, pool)
		fresh = validators(fresh, pool)
		pop = append(pop, fresh...)
	}
	if len(pop) > cfg.PopulationSize {
		fit := Fitness(pop, pool, cfg.Fitness)
		idx := make([]int, len(pop))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(i, j int) bool { return fit[idx[i]] > fit[idx[j]] })
		trimmed := make(Population, cfg.PopulationSize)
		for i := 0; i < cfg.PopulationSize; i++ {
			trimmed[i] = pop[idx[i]]
		}
		pop = trimmed
	}
	if log != nil && len(pop) < cfg.PopulationSize {
		log.WithFields(logrus.Fields{"population_size": len(pop), "target": cfg.PopulationSize}).
			Warn("could not fully top up population after validation")
	}
	return pop
}

// pinLockedPlayers forces every locked player into the first lineup column
// whose slot it's eligible for (its own position, or FLEX), overwriting
// whatever was sampled there, grounded on algorithm.go's LockedPlayers
// enforcement in generateValidLineups.
func pinLockedPlayers(pop Population, posmap PositionMap, flexPositions []Position, locked map[PlayerID]bool, pool *Pool) Population {
	if len(locked) == 0 {
		return pop
	}
	flexSet := make(map[Position]bool, len(flexPositions))
	for _, p := range flexPositions {
		flexSet[p] = true
	}

	for _, lineup := range pop {
		for id := range locked {
			if containsID(lineup, id) {
				continue
			}
			idx := pool.indexOf(id)
			if idx < 0 {
				continue
			}
			playerPos := pool.Players[idx].Position
			placed := false
			for col, slot := range posmap {
				if slot == playerPos {
					lineup[col] = id
					placed = true
					break
				}
			}
			if !placed && flexSet[playerPos] {
				for col, slot := range posmap {
					if slot == "FLEX" {
						lineup[col] = id
						placed = true
						break
					}
				}
			}
		}
	}
	return pop
}

func containsID(lineup Lineup, id PlayerID) bool {
	for _, v := range lineup {
		if v == id {
			return true
		}
	}
	return false
}

func buildValidatorPipeline(cfg OptimizeConfig, log *logrus.Entry) Validator {
	stages := []namedValidator{
		{"excluded", ValidateExcluded(cfg.ExcludedPlayers)},
		{"duplicates", ValidateDuplicates},
		{"positions", ValidatePositions(cfg.PosMap, cfg.FlexPositions)},
		{"salary", ValidateSalary(cfg.Salary.Cap, cfg.Salary.Floor)},
	}
	if len(cfg.StackingRules) > 0 {
		stages = append(stages, namedValidator{"stacking", ValidateStacking(cfg.StackingRules)})
	}
	return ComposeLogged(log, stages...)
}

func argmax(xs []float64) int {
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}

func errPositive(name string) error {
	return &fieldMustBePositive{name}
}

type fieldMustBePositive struct{ name string }

func (e *fieldMustBePositive) Error() string {
	return e.name + " must be > 0"
}
