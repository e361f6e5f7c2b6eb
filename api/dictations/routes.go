package dictations

import (
	"github.com/gin-gonic/gin"

	"github.com/uleam/dictado/api/types"
)

// RegisterRoutes registers dictation job routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Start(deps))
	router.GET("/current", Current(deps))
	router.DELETE("/current", Cancel(deps))
}
