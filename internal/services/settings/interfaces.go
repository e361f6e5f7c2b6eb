package settings

import (
	"context"

	"github.com/uleam/dictado/internal/models"
)

// Service defines the interface for application setting operations
type Service interface {
	// Upsert writes a setting, replacing any previous value for the key
	Upsert(ctx context.Context, key, value string) error

	// Get reads a setting; found is false when the key has never been written
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// List returns all settings (newest modification first)
	List(ctx context.Context) ([]models.ConfigEntry, error)
}

// Repository defines the interface for setting persistence
type Repository interface {
	// Upsert inserts or replaces the entry for a key
	Upsert(ctx context.Context, entry *models.ConfigEntry) error

	// Get retrieves the entry for a key, or nil when absent
	Get(ctx context.Context, key string) (*models.ConfigEntry, error)

	// List retrieves all entries ordered by last modification
	List(ctx context.Context) ([]models.ConfigEntry, error)
}
