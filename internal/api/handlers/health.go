package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// HealthStatus is the response body for /health and /ready.
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// HealthHandler serves health/readiness/metrics endpoints, adapted from
// the teacher's HealthHandler with the database check dropped — this
// engine has no database, only Redis for result caching.
type HealthHandler struct {
	redis     *redis.Client
	logger    *logrus.Logger
	startedAt time.Time
}

// NewHealthHandler builds a HealthHandler around an existing redis client.
func NewHealthHandler(redisClient *redis.Client, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{redis: redisClient, logger: logger, startedAt: time.Now()}
}

// GetHealth returns basic liveness; Redis is unreachable is a degraded, not
// fatal, status since the engine can still run optimizations uncached.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	status := HealthStatus{
		Status:    "ok",
		Service:   "ga-engine",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
		status.Status = "degraded"
		status.Checks["redis"] = "failed: " + err.Error()
	} else {
		status.Checks["redis"] = "ok"
	}

	code := http.StatusOK
	if status.Status == "degraded" {
		code = http.StatusPartialContent
	}
	c.JSON(code, status)
}

// GetReady returns readiness; the engine is ready regardless of Redis since
// optimization does not require the cache.
func (h *HealthHandler) GetReady(c *gin.Context) {
	status := HealthStatus{
		Status:    "ready",
		Service:   "ga-engine",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
		status.Checks["redis"] = "failed: " + err.Error()
	} else {
		status.Checks["redis"] = "ok"
	}
	c.JSON(http.StatusOK, status)
}

// GetMetrics returns basic process and cache metrics.
func (h *HealthHandler) GetMetrics(c *gin.Context) {
	metrics := map[string]interface{}{
		"service":   "ga-engine",
		"timestamp": time.Now(),
		"uptime_seconds": time.Since(h.startedAt).Seconds(),
	}

	if dbSize, err := h.redis.DBSize(c.Request.Context()).Result(); err == nil {
		metrics["cache"] = map[string]interface{}{"total_keys": dbSize}
	}
	if keys, err := h.redis.Keys(c.Request.Context(), "optimization:*").Result(); err == nil {
		metrics["optimization_cache"] = map[string]interface{}{"cached_results": len(keys)}
	}

	c.JSON(http.StatusOK, metrics)
}
