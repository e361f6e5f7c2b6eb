package notifications

import (
	"context"

	"github.com/uleam/dictado/internal/models"
)

// Service defines the interface for notification record operations
type Service interface {
	// Notify inserts a new, unread notification
	Notify(ctx context.Context, message, category string) (*models.Notification, error)

	// ListNotifications returns all notifications, newest first
	ListNotifications(ctx context.Context) ([]models.Notification, error)

	// MarkRead flips the read flag on a notification
	MarkRead(ctx context.Context, id uint) error
}

// Repository defines the interface for notification data persistence
type Repository interface {
	// Create inserts a new notification
	Create(ctx context.Context, notification *models.Notification) error

	// List retrieves all notifications ordered newest first
	List(ctx context.Context) ([]models.Notification, error)

	// MarkRead sets the read flag, reporting whether a row existed
	MarkRead(ctx context.Context, id uint) (bool, error)
}
