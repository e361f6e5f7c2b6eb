package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/uleam/dictado/api/dictations"
	"github.com/uleam/dictado/api/health"
	"github.com/uleam/dictado/api/notifications"
	"github.com/uleam/dictado/api/settings"
	"github.com/uleam/dictado/api/transcripts"
	"github.com/uleam/dictado/api/types"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		return fmt.Errorf("handler dependencies are nil")
	}
	if deps.Controller == nil {
		return fmt.Errorf("job controller is not configured")
	}

	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")

	transcripts.RegisterRoutes(v1.Group("/transcripts"), deps)
	notifications.RegisterRoutes(v1.Group("/notifications"), deps)

	settingsGroup := v1.Group("/settings")
	settingsGroup.Use(RequestSizeLimit(64 * 1024))
	settings.RegisterRoutes(settingsGroup, deps)

	// Dictation starts fan out to a paid external service; keep a dedicated
	// per-client limiter on them (2 req/s, burst of 5)
	dictationsGroup := v1.Group("/dictations")
	dictationsGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 2, 5))
	dictations.RegisterRoutes(dictationsGroup, deps)

	return nil
}
