package transcripts

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/uleam/dictado/internal/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new transcript repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new transcript
func (r *repository) Create(ctx context.Context, transcript *models.Transcript) error {
	if transcript == nil {
		return errors.New("transcript cannot be nil")
	}

	result := r.db.WithContext(ctx).Create(transcript)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// List retrieves all transcripts ordered newest first
func (r *repository) List(ctx context.Context) ([]models.Transcript, error) {
	var transcripts []models.Transcript

	result := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&transcripts)
	if result.Error != nil {
		return nil, result.Error
	}

	return transcripts, nil
}

// Delete removes a transcript, reporting whether a row existed
func (r *repository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Transcript{}, id)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
