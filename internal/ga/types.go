// Package ga implements the lineup genetic-algorithm engine: player pool
// ingestion, weighted position sampling, population operators, the
// single-lineup generational loop, the diverse post-selector, and the
// set-based multilineup engine.
package ga

// PlayerID identifies a player by the ID its input row carries. It is not a
// row index into a Pool; Pool.indexOf maps an ID to its row.
type PlayerID = uint

// Position is a roster slot label such as "QB", "RB", "FLEX", or a
// sport-specific equivalent.
type Position string

// Player is one row of the Player Pool.
type Player struct {
	ID       PlayerID
	Name     string
	Team     string
	Opponent string
	Position Position
	Salary   int
	Points   float64
}

// Pool is the filtered, indexed player universe an optimization run draws
// from. Index i in Points/Salaries corresponds to Players[i].
type Pool struct {
	Players  []Player
	Points   []float64
	Salaries []int
}

// PositionView holds the PlayerIDs eligible for one roster slot, together
// with the normalized sampling probability for each of them.
type PositionView struct {
	Position Position
	Indices  []PlayerID
	Prob     []float64
}

// PositionPool maps every roster slot name (including "FLEX") to its
// PositionView.
type PositionPool map[Position]PositionView

// PositionMap gives the canonical, ordered list of roster slots a Lineup
// fills. Its length is L, the lineup size.
type PositionMap []Position

// Lineup is a fixed-length vector of PlayerIDs, one per slot in a
// PositionMap, in that slot order.
type Lineup []PlayerID

// Population is a K x L matrix of PlayerIDs: K lineups, L slots each.
type Population []Lineup

// LineupSet is a fixed-size collection of N lineups treated as a single
// individual by the set-based engine.
type LineupSet []Lineup

// SetPopulation is a matrix of J LineupSets, each holding N lineups.
type SetPopulation []LineupSet

// Fingerprint is a coarse similarity signature for a Lineup, cheap to
// compute and compare, used by the set-based engine's diverse sampler.
type Fingerprint struct {
	F1 int64
	F2 int64
	F3 int64
	F4 int64
}
