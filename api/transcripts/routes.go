package transcripts

import (
	"github.com/gin-gonic/gin"

	"github.com/uleam/dictado/api/types"
)

// RegisterRoutes registers transcript history routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", List(deps))
	router.DELETE("/:id", Delete(deps))
}
