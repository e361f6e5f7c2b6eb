package settings

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uleam/dictado/api/types"
	"github.com/uleam/dictado/internal/models"
)

// UpdateRequest is the body for writing a setting
type UpdateRequest struct {
	Value string `json:"value" binding:"required"`
}

// Get reads one setting by key
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")

		value, found, err := deps.Settings.Get(c.Request.Context(), key)
		if err != nil {
			types.RespondError(c, err)
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found", "key": key})
			return
		}

		c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
	}
}

// List returns all settings
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := deps.Settings.List(c.Request.Context())
		if err != nil {
			types.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"settings": entries, "count": len(entries)})
	}
}

// Update upserts one setting and raises a system notification so the change
// shows up in the notification feed
func Update(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")

		var req UpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must include a value"})
			return
		}

		if err := deps.Settings.Upsert(c.Request.Context(), key, req.Value); err != nil {
			types.RespondError(c, err)
			return
		}

		message := fmt.Sprintf("Setting %q updated", key)
		if _, err := deps.Notifications.Notify(c.Request.Context(), message, models.NotificationCategorySystem); err != nil {
			// The setting landed; the feed entry is best effort
			log.Printf("Setting %q saved but notification write failed: %v", key, err)
		}

		c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
	}
}
