package settings

import (
	"github.com/gin-gonic/gin"

	"github.com/uleam/dictado/api/types"
)

// RegisterRoutes registers setting routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", List(deps))
	router.GET("/:key", Get(deps))
	router.PUT("/:key", Update(deps))
}
