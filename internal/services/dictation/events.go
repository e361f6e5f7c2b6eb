package dictation

import (
	"github.com/uleam/dictado/internal/models"
)

// Event is one step of a job's lifecycle. A run emits an ordered, finite
// sequence of events ending in exactly one terminal state, after which the
// channel is closed.
type Event struct {
	JobID   uint64
	State   models.DictationState
	Attempt int

	// Transcript is set on the completed event
	Transcript *models.Transcript

	// Err carries the terminal failure on failed/timed_out events. On a
	// completed event it may carry a store-write failure for the companion
	// notification: the transcript persisted, the notification did not.
	Err error
}

// Terminal reports whether this event ends the job
func (e Event) Terminal() bool {
	return e.State.IsTerminal()
}
