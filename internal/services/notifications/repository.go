package notifications

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

// NewRepository creates a new notification repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new notification
func (r *repository) Create(ctx context.Context, notification *models.Notification) error {
	if notification == nil {
		return errors.New("notification cannot be nil")
	}

	result := r.db.WithContext(ctx).Create(notification)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// List retrieves all notifications ordered newest first
func (r *repository) List(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification

	result := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&notifications)
	if result.Error != nil {
		return nil, result.Error
	}

	return notifications, nil
}

// MarkRead sets the read flag, reporting whether a row existed
func (r *repository) MarkRead(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
