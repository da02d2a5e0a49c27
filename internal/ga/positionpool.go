package ga

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// FlexPositions lists the positions eligible to fill a "FLEX" slot when a
// PositionMap names one, mirroring pospool.py's flex_positions default.
var FlexPositions = []Position{"RB", "WR", "TE"}

// BuildPositionPool partitions Pool rows per roster slot named in posmap and
// assigns each row a normalized sampling probability
// prob[i] = (points[i]/salary[i]) / sum(points[j]/salary[j] for j in view),
// the pangadfs pospool.py weighting formula.
func BuildPositionPool(pool *Pool, posmap PositionMap, flexPositions []Position, log *logrus.Entry) (PositionPool, error) {
	if flexPositions == nil {
		flexPositions = FlexPositions
	}
	flexSet := make(map[Position]bool, len(flexPositions))
	for _, p := range flexPositions {
		flexSet[p] = true
	}

	seen := make(map[Position]bool)
	views := make(PositionPool)
	for _, slot := range posmap {
		if seen[slot] {
			continue
		}
		seen[slot] = true

		var idx []PlayerID
		var weight []float64
		for i, player := range pool.Players {
			eligible := player.Position == slot
			if slot == "FLEX" {
				eligible = flexSet[player.Position]
			}
			if !eligible {
				continue
			}
			if pool.Salaries[i] <= 0 {
				continue
			}
			idx = append(idx, pool.Players[i].ID)
			weight = append(weight, pool.Points[i]/float64(pool.Salaries[i])*1000)
		}
		if len(idx) == 0 {
			return nil, newDataError("positionpool", fmt.Errorf("no eligible players for slot %q", slot))
		}

		sum := 0.0
		for _, w := range weight {
			sum += w
		}
		if sum <= 0 {
			// Degenerate pool (e.g. all zero points): fall back to uniform
			// weighting rather than dividing by zero.
			for i := range weight {
				weight[i] = 1.0 / float64(len(weight))
			}
		} else {
			for i := range weight {
				weight[i] /= sum
			}
		}

		views[slot] = PositionView{Position: slot, Indices: idx, Prob: weight}

		if log != nil {
			log.WithFields(logrus.Fields{"slot": slot, "eligible": len(idx)}).Debug("position view built")
		}
	}

	return views, nil
}

// sortedSlotNames returns the position-pool keys in a stable order, useful
// for deterministic logging and iteration.
func sortedSlotNames(pp PositionPool) []Position {
	names := make([]Position, 0, len(pp))
	for p := range pp {
		names = append(names, p)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
