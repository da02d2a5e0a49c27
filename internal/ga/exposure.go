package ga

import "sort"

// PlayerExposure reports how often a player appeared across a result set.
type PlayerExposure struct {
	PlayerID    PlayerID `json:"player_id"`
	PlayerName  string   `json:"player_name"`
	Count       int      `json:"count"`
	Percentage  float64  `json:"percentage"`
	MaxAllowed  float64  `json:"max_allowed,omitempty"`
	IsViolation bool     `json:"is_violation,omitempty"`
}

// TeamExposure reports how often a team appeared across a result set.
type TeamExposure struct {
	Team       string  `json:"team"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ExposureReport summarizes player and team exposure across the lineups a
// run produced, generalizing the teacher's ExposureManager reporting (which
// tracked per-player/team/stack counts incrementally as lineups were
// accepted) into a single post-hoc pass over a finished Population.
type ExposureReport struct {
	PlayerExposures []PlayerExposure `json:"player_exposures"`
	TeamExposures   []TeamExposure   `json:"team_exposures"`
	TotalLineups    int              `json:"total_lineups"`
}

// BuildExposureReport counts how often each player and team appears across
// lineups, sorted by count descending, flagging any player whose count
// exceeds its configured limit fraction of len(lineups).
func BuildExposureReport(lineups Population, pool *Pool, limits map[PlayerID]float64) ExposureReport {
	playerCounts := make(map[PlayerID]int)
	teamCounts := make(map[string]int)

	for _, lineup := range lineups {
		seenTeams := make(map[string]bool)
		for _, id := range lineup {
			playerCounts[id]++
			idx := pool.indexOf(id)
			if idx < 0 {
				continue
			}
			team := pool.Players[idx].Team
			if !seenTeams[team] {
				seenTeams[team] = true
				teamCounts[team]++
			}
		}
	}

	total := len(lineups)
	report := ExposureReport{TotalLineups: total}

	for id, count := range playerCounts {
		pct := 0.0
		if total > 0 {
			pct = float64(count) / float64(total)
		}
		name := ""
		if idx := pool.indexOf(id); idx >= 0 {
			name = pool.Players[idx].Name
		}
		entry := PlayerExposure{PlayerID: id, PlayerName: name, Count: count, Percentage: pct}
		if limit, ok := limits[id]; ok {
			entry.MaxAllowed = limit
			entry.IsViolation = pct > limit
		}
		report.PlayerExposures = append(report.PlayerExposures, entry)
	}
	sort.Slice(report.PlayerExposures, func(i, j int) bool {
		return report.PlayerExposures[i].Count > report.PlayerExposures[j].Count
	})

	for team, count := range teamCounts {
		pct := 0.0
		if total > 0 {
			pct = float64(count) / float64(total)
		}
		report.TeamExposures = append(report.TeamExposures, TeamExposure{Team: team, Count: count, Percentage: pct})
	}
	sort.Slice(report.TeamExposures, func(i, j int) bool {
		return report.TeamExposures[i].Count > report.TeamExposures[j].Count
	})

	return report
}
