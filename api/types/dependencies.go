package types

import (
	"github.com/uleam/dictado/internal/database"
	"github.com/uleam/dictado/internal/services/dictation"
	"github.com/uleam/dictado/internal/services/notifications"
	"github.com/uleam/dictado/internal/services/settings"
	"github.com/uleam/dictado/internal/services/transcripts"
)

// Dependencies holds everything the handlers need, built once at startup
// and passed by reference. No handler reaches for globals.
type Dependencies struct {
	DB *database.DB

	Transcripts   transcripts.Service
	Notifications notifications.Service
	Settings      settings.Service
	Controller    *dictation.Controller

	// RecordingsDir is where uploaded clips are written before a job runs
	RecordingsDir string

	// DefaultLanguage is used when a dictation request omits language_code
	DefaultLanguage string

	// MaxUploadBytes bounds the accepted clip size
	MaxUploadBytes int64
}
