package notifications

import (
	"context"

	"github.com/uleam/dictado/internal/models"
	apperrors "github.com/uleam/dictado/pkg/errors"
)

// service implements the Service interface
type service struct {
	repo Repository
}

// NewService creates a new notification service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Notify inserts a new, unread notification
func (s *service) Notify(ctx context.Context, message, category string) (*models.Notification, error) {
	if message == "" {
		return nil, apperrors.ValidationError("message", "cannot be empty")
	}
	if category == "" {
		category = models.NotificationCategorySystem
	}

	notification := &models.Notification{
		Message:  message,
		Category: category,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, apperrors.StoreWriteError("notification", err)
	}

	return notification, nil
}

// ListNotifications returns all notifications, newest first
func (s *service) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	notifications, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("listing notifications", err)
	}
	return notifications, nil
}

// MarkRead flips the read flag on a notification
func (s *service) MarkRead(ctx context.Context, id uint) error {
	existed, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return apperrors.DatabaseError("marking notification read", err)
	}
	if !existed {
		return apperrors.NotFound("notification", id)
	}
	return nil
}
