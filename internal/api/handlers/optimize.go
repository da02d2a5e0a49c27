package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dfs-ga/engine/internal/cache"
	"github.com/dfs-ga/engine/internal/config"
	"github.com/dfs-ga/engine/internal/ga"
	"github.com/dfs-ga/engine/internal/logging"
	"github.com/dfs-ga/engine/internal/websocket"
)

// OptimizationHandler serves the optimize/validate/cache-status endpoints,
// adapted from the teacher's OptimizationHandler: same cache-then-run
// shape, minus the database and golf-specific branching this engine has no
// use for.
type OptimizationHandler struct {
	cache  *cache.ResultCache
	wsHub  *websocket.Hub
	config *config.ServiceConfig
	logger *logrus.Logger
}

// NewOptimizationHandler builds an OptimizationHandler.
func NewOptimizationHandler(resultCache *cache.ResultCache, wsHub *websocket.Hub, cfg *config.ServiceConfig, logger *logrus.Logger) *OptimizationHandler {
	return &OptimizationHandler{cache: resultCache, wsHub: wsHub, config: cfg, logger: logger}
}

// Optimize handles POST /api/v1/optimize: builds the player/position pools
// from the request body, dispatches to the single-lineup, post-processing,
// or set-based engine per spec.md §4.9.6, and caches the result.
func (h *OptimizationHandler) Optimize(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{"validation_error": err.Error()},
		})
		return
	}
	if req.RunID == "" {
		req.RunID = uuid.New().String()
	}

	cacheKey := h.cacheKey(req)
	if cached, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil {
		var resp OptimizeResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			resp.Cached = true
			h.logger.WithField("cache_key", cacheKey).Info("returning cached optimization result")
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	log := logging.WithRunContext(req.RunID, req.Sport, req.Platform, req.Mode)

	pool, pospool, err := h.buildPools(req, log)
	if err != nil {
		h.writeEngineError(c, err)
		return
	}

	start := time.Now()
	resp, err := h.dispatch(req, pool, pospool, log)
	if err != nil {
		h.writeEngineError(c, err)
		return
	}

	if err := h.cache.Set(c.Request.Context(), cacheKey, resp, 24*time.Hour); err != nil {
		h.logger.WithError(err).Warn("failed to cache optimization result")
	}

	h.wsHub.PublishProgress(websocket.ProgressUpdate{
		RunID:      req.RunID,
		Generation: resp.Generations,
		BestScore:  resp.BestScore,
		Stagnated:  resp.Stagnated,
		Done:       true,
	})

	h.logger.WithFields(logrus.Fields{
		"run_id":         req.RunID,
		"generations":    resp.Generations,
		"best_score":     resp.BestScore,
		"execution_time": time.Since(start),
	}).Info("optimization completed")

	c.JSON(http.StatusOK, resp)
}

func (h *OptimizationHandler) buildPools(req OptimizeRequest, log *logrus.Entry) (*ga.Pool, ga.PositionPool, error) {
	excluded := toIDSet(req.ExcludedPlayers)

	pool, err := ga.BuildPool(req.Players, ga.BuildPoolOptions{ExcludedPlayers: excluded}, log)
	if err != nil {
		return nil, nil, err
	}

	posmap, flex := h.resolvePosMap(req)

	pospool, err := ga.BuildPositionPool(pool, posmap, flex, log)
	if err != nil {
		return nil, nil, err
	}
	return pool, pospool, nil
}

// resolvePosMap prefers an explicit posmap/flex_positions from the request,
// falling back to the sport/platform slot table when the caller omits them.
func (h *OptimizationHandler) resolvePosMap(req OptimizeRequest) (ga.PositionMap, []ga.Position) {
	if len(req.PosMap) > 0 {
		posmap := make(ga.PositionMap, len(req.PosMap))
		for i, p := range req.PosMap {
			posmap[i] = ga.Position(p)
		}
		flex := toPositions(req.FlexPositions)
		if len(flex) == 0 {
			flex = ga.FlexPositions
		}
		return posmap, flex
	}
	if posmap, flex, ok := ga.DefaultPosMap(req.Sport, req.Platform); ok {
		return posmap, flex
	}
	return nil, ga.FlexPositions
}

func (h *OptimizationHandler) dispatch(req OptimizeRequest, pool *ga.Pool, pospool ga.PositionPool, log *logrus.Entry) (*OptimizeResponse, error) {
	posmap, flex := h.resolvePosMap(req)
	locked := toIDSet(req.LockedPlayers)
	excluded := toIDSet(req.ExcludedPlayers)

	decision := ga.Dispatch(ga.DispatchConfig{
		TargetLineups: req.TargetLineups,
		Mode:          ga.Mode(req.Mode),
		PoolSize:      req.LineupPoolSize,
	})

	optCfg := ga.OptimizeConfig{
		PopulationSize:  req.PopulationSize,
		NGenerations:    req.NGenerations,
		StopCriteria:    req.StopCriteria,
		EliteDivisor:    req.EliteDivisor,
		EliteMethod:     ga.SelectFittest,
		SelectMethod:    ga.SelectMethod(req.SelectMethod),
		TournamentSize:  req.TournamentSize,
		MutationRate:    req.MutationRate,
		PosMap:          posmap,
		FlexPositions:   flex,
		LockedPlayers:   locked,
		ExcludedPlayers: excluded,
		Seed:            req.Seed,
		EnableProfiling: req.EnableProfiling,
	}
	optCfg.Salary.Cap = req.SalaryCap
	optCfg.Salary.Floor = req.SalaryFloor

	if !decision.UseSetBased {
		result, err := ga.Optimize(pool, pospool, optCfg, log)
		if err != nil {
			return nil, err
		}

		resp := &OptimizeResponse{
			BestLineup:  result.BestLineup,
			BestScore:   result.BestScore,
			Population:  lineupsOf(result.Population),
			Fitness:     result.Fitness,
			Profiling:   result.Profile,
			Generations: result.Generations,
			Stagnated:   result.Stagnated,
		}

		if ga.Mode(req.Mode) == ga.ModePostProcessing && req.TargetLineups > 1 {
			psCfg := ga.DefaultPostSelectorConfig(req.TargetLineups)
			if req.DiversityWeight > 0 {
				psCfg.DiversityWeight = req.DiversityWeight
			}
			if req.MinOverlapThreshold > 0 {
				psCfg.MinOverlapThreshold = req.MinOverlapThreshold
			}
			if req.DiversityMethod != "" {
				psCfg.Method = ga.DiversityMethod(req.DiversityMethod)
			}
			selected := ga.SelectDiverse(result.Population, result.Fitness, psCfg)
			resp.Lineups = lineupsOf(selected.Lineups)
			resp.Scores = selected.Fitness
			resp.DiversityMetrics = &selected.Metrics
		}
		return resp, nil
	}

	setCfg := ga.SetOptimizeConfig{
		TargetLineups:     req.TargetLineups,
		PoolSize:          req.PopulationSize,
		InitialPoolSize:   req.LineupPoolSize,
		NGenerations:      req.NGenerations,
		StopCriteria:      req.StopCriteria,
		EliteDivisor:       req.EliteDivisor,
		MutationRate:       req.MutationRate,
		MutationIntensity:  ga.IntensityAdaptive,
		PosMap:             posmap,
		FlexPositions:      flex,
		LockedPlayers:      locked,
		ExcludedPlayers:    excluded,
		Seed:               req.Seed,
		EnableProfiling:    req.EnableProfiling,
		Diversity: ga.SetFitnessConfig{
			DiversityWeight: req.DiversityWeight,
			Method:          ga.DiversityMethod(req.DiversityMethod),
		},
	}
	setCfg.Salary.Cap = req.SalaryCap
	setCfg.Salary.Floor = req.SalaryFloor

	result, err := ga.OptimizeSets(pool, pospool, setCfg, log)
	if err != nil {
		return nil, err
	}

	return &OptimizeResponse{
		BestLineup:  result.BestSet[0],
		BestScore:   result.BestScore,
		Lineups:     lineupSetOf(result.BestSet),
		Generations: result.Generations,
		Stagnated:   result.Stagnated,
		Profiling:   result.Profile,
	}, nil
}

// Validate handles POST /api/v1/optimize/validate: checks the request's
// pools build without running the generational loop.
func (h *OptimizationHandler) Validate(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request format", Code: "INVALID_REQUEST"})
		return
	}
	if req.RunID == "" {
		req.RunID = uuid.New().String()
	}

	log := logging.WithRunContext(req.RunID, req.Sport, req.Platform, req.Mode)
	pool, _, err := h.buildPools(req, log)
	if err != nil {
		h.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "optimization request is valid",
		"player_count": len(pool.Players),
		"target_lineups": req.TargetLineups,
	})
}

// CacheStatus handles GET /api/v1/optimize/cache-status.
func (h *OptimizationHandler) CacheStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.cache.Status(c.Request.Context()))
}

func (h *OptimizationHandler) cacheKey(req OptimizeRequest) string {
	cfgJSON, _ := json.Marshal(req)
	digest := []byte(fmt.Sprintf("%d", len(req.Players)))
	return cache.Key(digest, cfgJSON)
}

func (h *OptimizationHandler) writeEngineError(c *gin.Context, err error) {
	h.logger.WithError(err).Error("optimization failed")
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "optimization failed",
		Code:    "OPTIMIZATION_ERROR",
		Details: map[string]string{"error": err.Error()},
	})
}

func toIDSet(ids []ga.PlayerID) map[ga.PlayerID]bool {
	set := make(map[ga.PlayerID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func toPositions(raw []string) []ga.Position {
	if len(raw) == 0 {
		return nil
	}
	out := make([]ga.Position, len(raw))
	for i, r := range raw {
		out[i] = ga.Position(r)
	}
	return out
}

func lineupsOf(pop ga.Population) [][]ga.PlayerID {
	out := make([][]ga.PlayerID, len(pop))
	for i, l := range pop {
		out[i] = l
	}
	return out
}

func lineupSetOf(set ga.LineupSet) [][]ga.PlayerID {
	out := make([][]ga.PlayerID, len(set))
	for i, l := range set {
		out[i] = l
	}
	return out
}
