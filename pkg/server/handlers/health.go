package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nodelens/nodelens/pkg/driver"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// HealthHandler handles health check requests
type HealthHandler struct {
	store driver.RecordStore
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store driver.RecordStore) *HealthHandler {
	return &HealthHandler{
		store: store,
	}
}

// HealthCheck handles GET /health - basic liveness check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "nodelens",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// LivenessCheck handles GET /live - Kubernetes liveness probe
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// ReadinessCheck handles GET /ready - verifies the record store responds
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := gin.H{
		"status":    "ready",
		"service":   "nodelens",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    gin.H{},
	}

	allHealthy := true
	checks := response["checks"].(gin.H)

	if h.store != nil {
		start := time.Now()
		// ListLabels is a cheap read that exercises store connectivity
		// without side effects.
		_, err := h.store.ListLabels(ctx)
		duration := time.Since(start)

		if err != nil {
			checks["store"] = gin.H{
				"status":   "unhealthy",
				"provider": string(h.store.Provider()),
				"error":    err.Error(),
				"duration": duration.String(),
			}
			allHealthy = false
		} else {
			checks["store"] = gin.H{
				"status":   "healthy",
				"provider": string(h.store.Provider()),
				"duration": duration.String(),
			}
		}
	} else {
		checks["store"] = gin.H{
			"status": "unhealthy",
			"error":  "record store not initialized",
		}
		allHealthy = false
	}

	if !allHealthy {
		response["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DetailedHealthCheck handles GET /health/detailed
func (h *HealthHandler) DetailedHealthCheck(c *gin.Context) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "nodelens",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"build": gin.H{
			"version":    Version,
			"git_commit": GitCommit,
			"build_time": BuildTime,
			"go_version": GoVersion,
		},
		"runtime": gin.H{
			"goroutines":     runtime.NumGoroutine(),
			"heap_alloc_mb":  memStats.HeapAlloc / 1024 / 1024,
			"total_alloc_mb": memStats.TotalAlloc / 1024 / 1024,
			"num_gc":         memStats.NumGC,
			"num_cpu":        runtime.NumCPU(),
			"gomaxprocs":     runtime.GOMAXPROCS(0),
		},
	})
}
