package cmd

import (
	"fmt"
	"os"

	apitypes "github.com/uleam/dictado/api/types"
	"github.com/uleam/dictado/internal/database"
	"github.com/uleam/dictado/internal/services/dictation"
	"github.com/uleam/dictado/internal/services/notifications"
	"github.com/uleam/dictado/internal/services/settings"
	"github.com/uleam/dictado/internal/services/speech"
	"github.com/uleam/dictado/internal/services/transcripts"
	"github.com/uleam/dictado/pkg/config"
)

// buildDependencies wires the store, service client and job controller from
// configuration. The returned DB is owned by the caller and must be closed.
func buildDependencies(cfg *config.Config) (*apitypes.Dependencies, *database.DB, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing database: %w", err)
	}

	if err := db.AutoMigrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrating database: %w", err)
	}

	transcriptSvc := transcripts.NewService(transcripts.NewRepository(db.DB))
	notificationSvc := notifications.NewService(notifications.NewRepository(db.DB))
	settingSvc := settings.NewService(settings.NewRepository(db.DB))

	client := speech.NewClient(speech.Config{
		BaseURL:   cfg.Speech.BaseURL,
		APIKey:    cfg.Speech.APIKey,
		UserAgent: cfg.Speech.UserAgent,
		Timeout:   cfg.Speech.Timeout,
	})

	controller := dictation.NewController(client, transcriptSvc, notificationSvc, dictation.Config{
		PollInterval:       cfg.Transcription.PollInterval,
		MaxAttempts:        cfg.Transcription.MaxAttempts,
		FallbackConfidence: cfg.Transcription.FallbackConfidence,
	})

	if err := os.MkdirAll(cfg.Recording.Dir, 0755); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("creating recordings directory: %w", err)
	}

	deps := &apitypes.Dependencies{
		DB:              db,
		Transcripts:     transcriptSvc,
		Notifications:   notificationSvc,
		Settings:        settingSvc,
		Controller:      controller,
		RecordingsDir:   cfg.Recording.Dir,
		DefaultLanguage: cfg.Transcription.Language,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
	}

	return deps, db, nil
}
