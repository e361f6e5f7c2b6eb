package settings

import (
	"context"

	"github.com/uleam/dictado/internal/models"
	apperrors "github.com/uleam/dictado/pkg/errors"
)

// service implements the Service interface
type service struct {
	repo Repository
}

// NewService creates a new settings service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Upsert writes a setting, replacing any previous value for the key
func (s *service) Upsert(ctx context.Context, key, value string) error {
	if key == "" {
		return apperrors.ValidationError("key", "cannot be empty")
	}

	entry := &models.ConfigEntry{
		Key:   key,
		Value: value,
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return apperrors.StoreWriteError("config", err)
	}

	return nil
}

// Get reads a setting; found is false when the key has never been written
func (s *service) Get(ctx context.Context, key string) (string, bool, error) {
	entry, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, apperrors.DatabaseError("reading setting", err)
	}
	if entry == nil {
		return "", false, nil
	}
	return entry.Value, true, nil
}

// List returns all settings
func (s *service) List(ctx context.Context) ([]models.ConfigEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("listing settings", err)
	}
	return entries, nil
}
