package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/uleam/dictado/internal/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert inserts or replaces the entry for a key. The ON CONFLICT clause
// preserves the one-row-per-key invariant.
func (r *repository) Upsert(ctx context.Context, entry *models.ConfigEntry) error {
	if entry == nil {
		return errors.New("config entry cannot be nil")
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "modified_at"}),
	}).Create(entry)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// Get retrieves the entry for a key, or nil when absent
func (r *repository) Get(ctx context.Context, key string) (*models.ConfigEntry, error) {
	var entry models.ConfigEntry

	result := r.db.WithContext(ctx).Where("key = ?", key).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &entry, nil
}

// List retrieves all entries ordered by last modification
func (r *repository) List(ctx context.Context) ([]models.ConfigEntry, error) {
	var entries []models.ConfigEntry

	result := r.db.WithContext(ctx).Order("modified_at DESC").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}
