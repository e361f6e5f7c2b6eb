package transcripts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/uleam/dictado/api/types"
)

// List returns all stored transcripts, newest first. The client re-queries
// this on demand; there is no push channel for list changes.
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := deps.Transcripts.ListTranscripts(c.Request.Context())
		if err != nil {
			types.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"transcripts": records,
			"count":       len(records),
		})
	}
}

// Delete removes a transcript by ID. Deleting an absent ID is reported, not
// an error.
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transcript ID"})
			return
		}

		existed, err := deps.Transcripts.DeleteTranscript(c.Request.Context(), uint(id))
		if err != nil {
			types.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"deleted": existed,
			"id":      id,
		})
	}
}
