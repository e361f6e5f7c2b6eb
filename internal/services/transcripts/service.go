package transcripts

import (
	"context"

	"github.com/uleam/dictado/internal/models"
	apperrors "github.com/uleam/dictado/pkg/errors"
)

// service implements the Service interface
type service struct {
	repo Repository
}

// NewService creates a new transcript service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SaveTranscript validates and persists a completed transcription result
func (s *service) SaveTranscript(ctx context.Context, text string, duration, confidence float64) (*models.Transcript, error) {
	if text == "" {
		return nil, apperrors.ValidationError("text", "cannot be empty")
	}
	if duration < 0 {
		return nil, apperrors.ValidationError("duration", "cannot be negative")
	}
	if confidence < 0 || confidence > 100 {
		return nil, apperrors.ValidationError("confidence", "must be within 0-100")
	}

	transcript := &models.Transcript{
		Text:       text,
		Duration:   duration,
		Confidence: confidence,
	}

	if err := s.repo.Create(ctx, transcript); err != nil {
		return nil, apperrors.StoreWriteError("transcript", err)
	}

	return transcript, nil
}

// ListTranscripts returns all transcripts, newest first
func (s *service) ListTranscripts(ctx context.Context) ([]models.Transcript, error) {
	transcripts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("listing transcripts", err)
	}
	return transcripts, nil
}

// DeleteTranscript removes a transcript by ID, idempotently
func (s *service) DeleteTranscript(ctx context.Context, id uint) (bool, error) {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, apperrors.DatabaseError("deleting transcript", err)
	}
	return existed, nil
}
