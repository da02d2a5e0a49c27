package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/dfs-ga/engine/internal/api/handlers"
	"github.com/dfs-ga/engine/internal/cache"
	"github.com/dfs-ga/engine/internal/config"
	"github.com/dfs-ga/engine/internal/logging"
	"github.com/dfs-ga/engine/internal/websocket"
)

func main() {
	svcCfg, err := config.LoadServiceConfig()
	if err != nil {
		logrus.Fatalf("failed to load service config: %v", err)
	}

	log := logging.Init("", svcCfg.IsDevelopment())
	log.WithFields(logrus.Fields{
		"version":     "1.0.0",
		"environment": svcCfg.Env,
		"port":        svcCfg.Port,
	}).Info("starting GA optimization engine")

	if svcCfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	opt, err := redis.ParseURL(svcCfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to parse redis url: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis unreachable at startup, continuing uncached")
	}
	defer redisClient.Close()

	resultCache := cache.NewResultCache(redisClient, log)

	wsHub := websocket.NewHub(log)
	go wsHub.Run()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	optimizationHandler := handlers.NewOptimizationHandler(resultCache, wsHub, svcCfg, log)
	healthHandler := handlers.NewHealthHandler(redisClient, log)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/optimize", optimizationHandler.Optimize)
		apiV1.POST("/optimize/validate", optimizationHandler.Validate)
		apiV1.GET("/optimize/cache-status", optimizationHandler.CacheStatus)
	}

	router.GET("/ws/optimization-progress/:run_id", wsHub.HandleWebSocket)

	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)
	router.GET("/metrics", healthHandler.GetMetrics)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", svcCfg.Port),
		Handler: router,
	}

	go func() {
		log.WithField("port", svcCfg.Port).Info("engine server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down engine server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("engine server forced to shutdown: %v", err)
	}

	log.Info("engine server exited")
}
