package models

import "time"

// DictationState represents the lifecycle state of an in-flight
// transcription job
type DictationState string

const (
	DictationStateIdle      DictationState = "idle"
	DictationStateUploading DictationState = "uploading"
	DictationStateSubmitted DictationState = "submitted"
	DictationStatePolling   DictationState = "polling"
	DictationStateCompleted DictationState = "completed"
	DictationStateFailed    DictationState = "failed"
	DictationStateTimedOut  DictationState = "timed_out"
	DictationStateCancelled DictationState = "cancelled"
)

// IsTerminal returns true if the state ends a job's lifecycle
func (s DictationState) IsTerminal() bool {
	switch s {
	case DictationStateCompleted, DictationStateFailed, DictationStateTimedOut, DictationStateCancelled:
		return true
	}
	return false
}

// Dictation is the transient record of a single transcription attempt.
// It lives in memory only: exactly one instance exists at a time, owned by
// the job controller, and it is discarded once a terminal state is reached.
type Dictation struct {
	ID        uint64         `json:"id"`
	State     DictationState `json:"state"`
	AudioPath string         `json:"-"`
	Language  string         `json:"language"`
	RemoteID  string         `json:"remote_id,omitempty"`
	Attempt   int            `json:"attempt"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// IsTerminal returns true if the dictation has finished
func (d *Dictation) IsTerminal() bool {
	return d.State.IsTerminal()
}
