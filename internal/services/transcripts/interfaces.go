package transcripts

import (
	"context"

	"github.com/uleam/dictado/internal/models"
)

// Service defines the interface for transcript record operations
type Service interface {
	// SaveTranscript validates and persists a completed transcription result
	SaveTranscript(ctx context.Context, text string, duration, confidence float64) (*models.Transcript, error)

	// ListTranscripts returns all transcripts, newest first
	ListTranscripts(ctx context.Context) ([]models.Transcript, error)

	// DeleteTranscript removes a transcript by ID. Deleting an absent ID is
	// not an error; the return value reports whether a row existed.
	DeleteTranscript(ctx context.Context, id uint) (bool, error)
}

// Repository defines the interface for transcript data persistence
type Repository interface {
	// Create inserts a new transcript
	Create(ctx context.Context, transcript *models.Transcript) error

	// List retrieves all transcripts ordered newest first
	List(ctx context.Context) ([]models.Transcript, error)

	// Delete removes a transcript, reporting whether a row existed
	Delete(ctx context.Context, id uint) (bool, error)
}
