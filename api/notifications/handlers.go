package notifications

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/uleam/dictado/api/types"
)

// List returns all notifications, newest first
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := deps.Notifications.ListNotifications(c.Request.Context())
		if err != nil {
			types.RespondError(c, err)
			return
		}

		unread := 0
		for _, n := range records {
			if !n.Read {
				unread++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"notifications": records,
			"count":         len(records),
			"unread":        unread,
		})
	}
}

// MarkRead flips the read flag on one notification
func MarkRead(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
			return
		}

		if err := deps.Notifications.MarkRead(c.Request.Context(), uint(id)); err != nil {
			types.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id, "read": true})
	}
}
