package ga

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// RawPlayer is the unfiltered input row an external loader (CSV, API,
// plugin) supplies. The engine never reads CSVs itself; that collaborator
// lives outside this package per scope.
type RawPlayer struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	Team     string   `json:"team"`
	Opponent string   `json:"opponent"`
	Position Position `json:"position"`
	Salary   int      `json:"salary"`
	Points   float64  `json:"points"`
	Injured  bool     `json:"injured"`
}

// BuildPoolOptions configures the Player Pool filter.
type BuildPoolOptions struct {
	// MinPoints drops any player whose projected points are below this
	// threshold, mirroring pangadfs' pool.py `thresh` parameter.
	MinPoints float64
	// ExcludedPlayers removes specific players regardless of points,
	// the teacher's algorithm.go filterPlayers behavior generalized
	// beyond "injured".
	ExcludedPlayers map[PlayerID]bool
	// DropInjured excludes any RawPlayer marked Injured.
	DropInjured bool
}

// BuildPool filters and indexes raw player rows into a Pool. It is the Go
// analogue of pangadfs.pool.PoolDefault.pool: threshold filter and a stable
// sort by position. Players keep the IDs their input rows carry; IDs are not
// re-indexed to row positions (Pool.indexOf maps an ID to its row).
func BuildPool(raw []RawPlayer, opts BuildPoolOptions, log *logrus.Entry) (*Pool, error) {
	if len(raw) == 0 {
		return nil, newDataError("pool", fmt.Errorf("empty player pool"))
	}

	filtered := make([]RawPlayer, 0, len(raw))
	for _, p := range raw {
		if opts.DropInjured && p.Injured {
			continue
		}
		if opts.ExcludedPlayers != nil && opts.ExcludedPlayers[p.ID] {
			continue
		}
		if p.Points < opts.MinPoints {
			continue
		}
		filtered = append(filtered, p)
	}
	if len(filtered) == 0 {
		return nil, newDataError("pool", fmt.Errorf("no players survive MinPoints=%.2f filter", opts.MinPoints))
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Position < filtered[j].Position })

	pool := &Pool{
		Players:  make([]Player, len(filtered)),
		Points:   make([]float64, len(filtered)),
		Salaries: make([]int, len(filtered)),
	}
	for i, p := range filtered {
		pool.Players[i] = Player{
			ID:       p.ID,
			Name:     p.Name,
			Team:     p.Team,
			Opponent: p.Opponent,
			Position: p.Position,
			Salary:   p.Salary,
			Points:   p.Points,
		}
		pool.Points[i] = p.Points
		pool.Salaries[i] = p.Salary
	}

	if log != nil {
		log.WithFields(logrus.Fields{
			"raw_count":      len(raw),
			"filtered_count": len(filtered),
			"min_points":     opts.MinPoints,
		}).Debug("player pool built")
	}

	return pool, nil
}

// indexOf returns the row index of id within pool.Players, or -1.
func (p *Pool) indexOf(id PlayerID) int {
	for i := range p.Players {
		if p.Players[i].ID == id {
			return i
		}
	}
	return -1
}
