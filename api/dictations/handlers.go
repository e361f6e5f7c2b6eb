package dictations

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uleam/dictado/api/types"
	"github.com/uleam/dictado/internal/services/recorder"
	apperrors "github.com/uleam/dictado/pkg/errors"
)

// Start accepts a captured clip as a multipart upload and starts the
// transcription job. Responds 202 with the job snapshot; 409 when a job is
// already live.
func Start(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("audio")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Request must include an audio file"})
			return
		}
		if deps.MaxUploadBytes > 0 && file.Size > deps.MaxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("Audio file exceeds %d bytes", deps.MaxUploadBytes),
			})
			return
		}

		language := c.PostForm("language_code")
		if language == "" {
			language = deps.DefaultLanguage
		}

		dest := filepath.Join(deps.RecordingsDir, fmt.Sprintf("upload-%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename)))
		if err := c.SaveUploadedFile(file, dest); err != nil {
			types.RespondError(c, apperrors.Wrap(err, apperrors.ErrCodeInternal, "storing uploaded audio"))
			return
		}

		// The job outlives this request; detach it from the request context
		events, err := deps.Controller.Run(context.Background(), recorder.AudioRef{Path: dest}, language)
		if err != nil {
			types.RespondError(c, err)
			return
		}

		// Drain events so the run never blocks; state is observable through
		// the snapshot endpoint
		go func() {
			for event := range events {
				if event.Terminal() {
					log.Printf("Dictation %d finished: %s", event.JobID, event.State)
				}
			}
		}()

		c.JSON(http.StatusAccepted, gin.H{"job": deps.Controller.Snapshot()})
	}
}

// Current returns the snapshot of the live (or most recent) job
func Current(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot := deps.Controller.Snapshot()
		if snapshot == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No dictation has run yet"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"job": snapshot})
	}
}

// Cancel requests cancellation of the live job. Idempotent: cancelling a
// finished or absent job changes nothing.
func Cancel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.Controller.Cancel()
		c.JSON(http.StatusAccepted, gin.H{"job": deps.Controller.Snapshot()})
	}
}
