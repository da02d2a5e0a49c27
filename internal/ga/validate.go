package ga

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// Validator is a composable filter Population -> Population, matching
// pangadfs' validator-plugin design: each stage drops rows that fail a
// single concern and the pipeline is the product of several independent
// stages run in sequence.
type Validator func(pop Population, pool *Pool) Population

// ValidateDuplicates drops any lineup with an intra-lineup repeated player
// id and then any lineup that duplicates another lineup already kept,
// grounded on pangadfs.validate.DuplicatesValidate (sort-and-adjacent-
// compare for intra-lineup dupes, then a global uniqueness pass).
func ValidateDuplicates(pop Population, _ *Pool) Population {
	out := make(Population, 0, len(pop))
	seen := make(map[string]bool, len(pop))
	for _, lineup := range pop {
		sorted := append(Lineup(nil), lineup...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		hasIntraDup := false
		for i := 1; i < len(sorted); i++ {
			if sorted[i] == sorted[i-1] {
				hasIntraDup = true
				break
			}
		}
		if hasIntraDup {
			continue
		}

		key := lineupKey(sorted)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, lineup)
	}
	return out
}

// ValidateSalary keeps lineups whose summed salary is within [floor, cap].
// floor <= 0 disables the floor check. Grounded on
// pangadfs.validate.SalaryValidate (sum salaries, compare to cap) plus the
// teacher's algorithm.go isValidLineup 95%-of-cap floor.
func ValidateSalary(cap int, floor int) Validator {
	return func(pop Population, pool *Pool) Population {
		out := make(Population, 0, len(pop))
		for _, lineup := range pop {
			total := 0
			for _, id := range lineup {
				idx := pool.indexOf(id)
				if idx < 0 {
					total = cap + 1
					break
				}
				total += pool.Salaries[idx]
			}
			if total > cap {
				continue
			}
			if floor > 0 && total < floor {
				continue
			}
			out = append(out, lineup)
		}
		return out
	}
}

// ValidatePositions keeps lineups whose per-slot position counts satisfy
// posmap, with FLEX filled from flexPositions by any leftover eligible
// player, grounded on pangadfs.validate_positions.PositionValidate.
func ValidatePositions(posmap PositionMap, flexPositions []Position) Validator {
	required := make(map[Position]int)
	for _, slot := range posmap {
		required[slot]++
	}
	flexSet := make(map[Position]bool, len(flexPositions))
	for _, p := range flexPositions {
		flexSet[p] = true
	}

	return func(pop Population, pool *Pool) Population {
		out := make(Population, 0, len(pop))
		for _, lineup := range pop {
			counts := make(map[Position]int)
			for _, id := range lineup {
				idx := pool.indexOf(id)
				if idx < 0 {
					continue
				}
				counts[pool.Players[idx].Position]++
			}

			ok := true
			remaining := make(map[Position]int, len(counts))
			for p, c := range counts {
				remaining[p] = c
			}
			for slot, need := range required {
				if slot == "FLEX" {
					continue
				}
				have := remaining[slot]
				if have < need {
					ok = false
					break
				}
				remaining[slot] = have - need
			}
			if ok {
				if need, hasFlex := required["FLEX"]; hasFlex {
					avail := 0
					for p := range flexSet {
						avail += remaining[p]
					}
					if avail < need {
						ok = false
					}
				}
			}
			if ok {
				out = append(out, lineup)
			}
		}
		return out
	}
}

// ValidateExcluded drops any lineup containing a player id present in
// excluded, generalizing algorithm.go's ExcludedPlayers filter (there
// applied before generation; here usable as a defensive post-filter too).
func ValidateExcluded(excluded map[PlayerID]bool) Validator {
	return func(pop Population, _ *Pool) Population {
		if len(excluded) == 0 {
			return pop
		}
		out := make(Population, 0, len(pop))
		for _, lineup := range pop {
			bad := false
			for _, id := range lineup {
				if excluded[id] {
					bad = true
					break
				}
			}
			if !bad {
				out = append(out, lineup)
			}
		}
		return out
	}
}

// StackingRule constrains how many players a lineup may draw from one team
// (Type "team") or from the teams of a single game (Type "game"), adapted
// from algorithm.go's validateStackingRules/validateTeamStacking/
// validateGameStacking.
type StackingRule struct {
	Type       string // "team" or "game"
	Teams      []string
	MinPlayers int
	MaxPlayers int
}

// ValidateStacking applies StackingRules as an optional extra composable
// stage; nil or empty rules make this a no-op pass-through.
func ValidateStacking(rules []StackingRule) Validator {
	return func(pop Population, pool *Pool) Population {
		if len(rules) == 0 {
			return pop
		}
		out := make(Population, 0, len(pop))
		for _, lineup := range pop {
			teamCounts := make(map[string]int)
			for _, id := range lineup {
				idx := pool.indexOf(id)
				if idx < 0 {
					continue
				}
				teamCounts[pool.Players[idx].Team]++
			}
			if satisfiesStackingRules(teamCounts, rules) {
				out = append(out, lineup)
			}
		}
		return out
	}
}

func satisfiesStackingRules(teamCounts map[string]int, rules []StackingRule) bool {
	for _, rule := range rules {
		count := 0
		for _, team := range rule.Teams {
			count += teamCounts[team]
		}
		if rule.Type == "team" {
			if count < rule.MinPlayers || (rule.MaxPlayers > 0 && count > rule.MaxPlayers) {
				return false
			}
			continue
		}
		// "game": union of both teams' players must meet the thresholds.
		if count < rule.MinPlayers || (rule.MaxPlayers > 0 && count > rule.MaxPlayers) {
			return false
		}
	}
	return true
}

// Compose runs validators in order, each receiving the surviving output of
// the previous stage, matching the pipeline described in spec.md and in
// optimize.py's successive ga.validate(...) calls.
func Compose(validators ...Validator) Validator {
	return func(pop Population, pool *Pool) Population {
		for _, v := range validators {
			pop = v(pop, pool)
			if len(pop) == 0 {
				break
			}
		}
		return pop
	}
}

// namedValidator pairs a Validator with a stage name so ComposeLogged can
// report how many lineups each stage drops.
type namedValidator struct {
	name string
	fn   Validator
}

// ComposeLogged behaves like Compose but logs each stage's before/after
// counts via logValidationDrop, giving visibility into which validator is
// responsible for shrinking a population.
func ComposeLogged(log *logrus.Entry, stages ...namedValidator) Validator {
	return func(pop Population, pool *Pool) Population {
		for _, s := range stages {
			before := len(pop)
			pop = s.fn(pop, pool)
			logValidationDrop(log, s.name, before, len(pop))
			if len(pop) == 0 {
				break
			}
		}
		return pop
	}
}

func lineupKey(sorted Lineup) string {
	b := make([]byte, 0, len(sorted)*8)
	for _, id := range sorted {
		b = append(b, byte(id), byte(id>>8), byte(id>>16), byte(id>>24),
			byte(id>>32), byte(id>>40), byte(id>>48), byte(id>>56))
	}
	return string(b)
}

func logValidationDrop(log *logrus.Entry, stage string, before, after int) {
	if log == nil || before == after {
		return
	}
	log.WithFields(logrus.Fields{"stage": stage, "before": before, "after": after}).Debug("validator dropped lineups")
}
