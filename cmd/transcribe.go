package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uleam/dictado/internal/models"
	"github.com/uleam/dictado/internal/services/recorder"
	"github.com/uleam/dictado/pkg/config"
)

var transcribeLanguage string

// transcribeCmd runs the full pipeline once for a local audio file
var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe a local audio file",
	Long: `Run one transcription job for a prerecorded audio file.

The clip goes through the same capture, upload and polling pipeline as a
live dictation; state changes are printed as they happen and the result is
stored in the local transcript history.

Example:
  dictado transcribe ./clips/meeting.wav
  dictado transcribe --language en ./clips/standup.wav`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().StringVar(&transcribeLanguage, "language", "", "language code (overrides config)")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	language := transcribeLanguage
	if language == "" {
		language = cfg.Transcription.Language
	}

	deps, db, err := buildDependencies(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// A file-backed device stands in for the microphone; the session
	// manager still enforces permission and exclusivity.
	manager := recorder.NewManager(recorder.NewFileDevice(args[0]), recorder.StaticPermission(true), cfg.Recording.Dir)

	ctx := cmd.Context()
	if err := manager.Start(ctx); err != nil {
		return fmt.Errorf("starting capture: %w", err)
	}
	ref, err := manager.Stop()
	if err != nil {
		return fmt.Errorf("stopping capture: %w", err)
	}

	events, err := deps.Controller.Run(context.Background(), ref, language)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for event := range events {
		switch event.State {
		case models.DictationStatePolling:
			fmt.Fprintf(out, "%s (attempt %d)\n", event.State, event.Attempt)
		case models.DictationStateCompleted:
			fmt.Fprintf(out, "completed: %q (%.1fs, confidence %.1f)\n",
				event.Transcript.Text, event.Transcript.Duration, event.Transcript.Confidence)
			if event.Err != nil {
				fmt.Fprintf(out, "warning: %v\n", event.Err)
			}
		default:
			fmt.Fprintln(out, event.State)
		}

		if event.Terminal() && event.State != models.DictationStateCompleted {
			if event.Err != nil {
				return fmt.Errorf("transcription ended %s: %w", event.State, event.Err)
			}
			return fmt.Errorf("transcription ended %s", event.State)
		}
	}

	return nil
}
