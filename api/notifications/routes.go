package notifications

import (
	"github.com/gin-gonic/gin"

	"github.com/uleam/dictado/api/types"
)

// RegisterRoutes registers notification routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", List(deps))
	router.POST("/:id/read", MarkRead(deps))
}
