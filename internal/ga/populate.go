package ga

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// expRandSource adapts a *rand.Rand (math/rand) to the
// golang.org/x/exp/rand.Source interface expected by gonum's sampleuv, so
// callers can keep threading a single math/rand.Rand for determinism.
type expRandSource struct {
	rng *rand.Rand
}

func (s expRandSource) Uint64() uint64 {
	return s.rng.Uint64()
}

func (s expRandSource) Seed(seed uint64) {
	s.rng.Seed(int64(seed))
}

// maxFlexResamples bounds the FLEX-slot dedup retry loop pangadfs.populate
// implements via a cumulative-sum "first non-duplicate" scan; a bounded
// rejection loop is the Go equivalent for a single candidate per row.
const maxFlexResamples = 50

// Populate draws an initial Population of size popSize from pospool,
// following posmap's slot order. Non-FLEX slots are filled by weighted
// sampling without replacement within each row (so a row never repeats a
// player for two occurrences of the same position); FLEX slots are filled
// by weighted sampling with rejection against players already placed in
// that row, the Go equivalent of populate.py's duplicate-aware FLEX
// selection.
func Populate(pospool PositionPool, posmap PositionMap, popSize int, rng *rand.Rand, log *logrus.Entry) (Population, error) {
	if popSize <= 0 {
		return nil, newConfigError("population_size", fmt.Errorf("must be > 0, got %d", popSize))
	}
	if len(posmap) == 0 {
		return nil, newConfigError("posmap", fmt.Errorf("must not be empty"))
	}

	// slotOccurrences[slot] = how many lineup columns that slot occupies.
	slotOccurrences := make(map[Position]int)
	for _, slot := range posmap {
		slotOccurrences[slot]++
	}

	// Distinct non-FLEX slots in first-seen posmap order. Ranging over
	// slotOccurrences directly would iterate in Go's randomized map order,
	// consuming rng draws in a different sequence each run and breaking
	// determinism for a fixed seed.
	var orderedSlots []Position
	seenSlot := make(map[Position]bool, len(slotOccurrences))
	for _, slot := range posmap {
		if slot == "FLEX" || seenSlot[slot] {
			continue
		}
		seenSlot[slot] = true
		orderedSlots = append(orderedSlots, slot)
	}

	// Sample each non-FLEX slot's occurrences for every row up front.
	samples := make(map[Position][][]PlayerID) // slot -> row -> n distinct ids
	for _, slot := range orderedSlots {
		n := slotOccurrences[slot]
		view, ok := pospool[slot]
		if !ok {
			return nil, newDataError("populate", fmt.Errorf("no position view for slot %q", slot))
		}
		rowSamples := make([][]PlayerID, popSize)
		for row := 0; row < popSize; row++ {
			picked, err := weightedSampleWithoutReplacement(view, n, rng)
			if err != nil {
				return nil, newDataError("populate", fmt.Errorf("slot %q: %w", slot, err))
			}
			rowSamples[row] = picked
		}
		samples[slot] = rowSamples
	}

	population := make(Population, popSize)
	flexView, hasFlex := pospool["FLEX"]

	for row := 0; row < popSize; row++ {
		lineup := make(Lineup, len(posmap))
		used := make(map[PlayerID]bool, len(posmap))
		cursor := make(map[Position]int)

		for col, slot := range posmap {
			if slot == "FLEX" {
				continue
			}
			i := cursor[slot]
			cursor[slot] = i + 1
			id := samples[slot][row][i]
			lineup[col] = id
			used[id] = true
		}

		if !hasFlex {
			population[row] = lineup
			continue
		}

		for col, slot := range posmap {
			if slot != "FLEX" {
				continue
			}
			id, err := sampleDistinctFlex(flexView, used, rng)
			if err != nil {
				return nil, newDataError("populate", fmt.Errorf("FLEX: %w", err))
			}
			lineup[col] = id
			used[id] = true
		}
		population[row] = lineup
	}

	if log != nil {
		log.WithFields(logrus.Fields{"population_size": popSize, "lineup_size": len(posmap)}).Debug("initial population sampled")
	}

	return population, nil
}

// weightedSampleWithoutReplacement draws n distinct indices from view,
// weighted by view.Prob, using gonum's reservoir-style Weighted sampler —
// the efficient categorical sampler grounded on pangadfs.misc's
// multidimensional_shifting (weighted sampling without replacement, many
// rows at once; here one row per call).
func weightedSampleWithoutReplacement(view PositionView, n int, rng *rand.Rand) ([]PlayerID, error) {
	if n > len(view.Indices) {
		return nil, fmt.Errorf("need %d distinct players but only %d eligible", n, len(view.Indices))
	}
	weights := make([]float64, len(view.Prob))
	copy(weights, view.Prob)

	w := sampleuv.NewWeighted(weights, expRandSource{rng})
	out := make([]PlayerID, 0, n)
	for len(out) < n {
		i, ok := w.Take()
		if !ok {
			return nil, fmt.Errorf("weighted sampler exhausted before reaching %d draws", n)
		}
		out = append(out, view.Indices[i])
	}
	return out, nil
}

// sampleDistinctFlex draws a single weighted FLEX candidate not already
// present in used, retrying up to maxFlexResamples times before falling
// back to a linear scan for the first unused candidate in view order.
func sampleDistinctFlex(view PositionView, used map[PlayerID]bool, rng *rand.Rand) (PlayerID, error) {
	weights := make([]float64, len(view.Prob))
	copy(weights, view.Prob)
	w := sampleuv.NewWeighted(weights, expRandSource{rng})

	for attempt := 0; attempt < maxFlexResamples; attempt++ {
		i, ok := w.Take()
		if !ok {
			break
		}
		id := view.Indices[i]
		if !used[id] {
			return id, nil
		}
	}
	for _, id := range view.Indices {
		if !used[id] {
			return id, nil
		}
	}
	return 0, fmt.Errorf("no FLEX-eligible player distinct from the rest of the row")
}
