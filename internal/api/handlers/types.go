package handlers

import "github.com/dfs-ga/engine/internal/ga"

// OptimizeRequest is the wire shape of a POST /api/v1/optimize body,
// carrying the player pool and every tunable spec.md §6 names.
type OptimizeRequest struct {
	RunID   string         `json:"run_id"`
	Sport   string         `json:"sport"`
	Platform string        `json:"platform"`
	Players []ga.RawPlayer `json:"players" binding:"required,min=1"`

	PosMap        []string `json:"posmap"`
	FlexPositions []string `json:"flex_positions"`

	PopulationSize int     `json:"population_size"`
	NGenerations   int     `json:"n_generations"`
	StopCriteria   int     `json:"stop_criteria"`
	EliteDivisor   int     `json:"elite_divisor"`
	SelectMethod   string  `json:"select_method"`
	TournamentSize int     `json:"tournament_size"`
	MutationRate   float64 `json:"mutation_rate"`
	Seed           int64   `json:"seed"`

	SalaryCap   int `json:"salary_cap"`
	SalaryFloor int `json:"salary_floor"`

	LockedPlayers   []ga.PlayerID `json:"locked_players"`
	ExcludedPlayers []ga.PlayerID `json:"excluded_players"`

	TargetLineups       int     `json:"target_lineups"`
	DiversityWeight     float64 `json:"diversity_weight"`
	MinOverlapThreshold float64 `json:"min_overlap_threshold"`
	DiversityMethod     string  `json:"diversity_method"`
	Mode                string  `json:"mode"`
	LineupPoolSize      int     `json:"lineup_pool_size"`

	EnableProfiling bool `json:"enable_profiling"`
}

// OptimizeResponse matches spec.md §6's output contract: always a best
// lineup/score, optionally a full multi-lineup set plus diversity and
// profiling detail depending on which mode ran.
type OptimizeResponse struct {
	BestLineup []ga.PlayerID `json:"best_lineup"`
	BestScore  float64       `json:"best_score"`

	Population [][]ga.PlayerID `json:"population,omitempty"`
	Fitness    []float64       `json:"fitness,omitempty"`

	Lineups [][]ga.PlayerID `json:"lineups,omitempty"`
	Scores  []float64       `json:"scores,omitempty"`

	DiversityMetrics *ga.DiversityMetrics `json:"diversity_metrics,omitempty"`
	Profiling        *ga.ProfileSummary   `json:"profiling,omitempty"`

	Generations int  `json:"generations"`
	Stagnated   bool `json:"stagnated"`
	Cached      bool `json:"cached"`
}

// ErrorResponse is the uniform JSON error body every handler returns.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}
