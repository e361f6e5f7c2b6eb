package dictation

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/uleam/dictado/internal/models"
	"github.com/uleam/dictado/internal/services/notifications"
	"github.com/uleam/dictado/internal/services/recorder"
	"github.com/uleam/dictado/internal/services/speech"
	"github.com/uleam/dictado/internal/services/transcripts"
	apperrors "github.com/uleam/dictado/pkg/errors"
)

const completedMessage = "Transcription completed successfully"

// Config holds the polling policy for the job controller
type Config struct {
	// PollInterval is the fixed delay between status polls
	PollInterval time.Duration
	// MaxAttempts is the polling ceiling; the job times out once the
	// attempt counter reaches it
	MaxAttempts int
	// FallbackConfidence is substituted when the service omits a
	// confidence value. Policy constant, not a measurement.
	FallbackConfidence float64
}

// DefaultConfig returns the stock polling policy: 2s interval, 60 attempts,
// a 120 second end-to-end ceiling.
func DefaultConfig() Config {
	return Config{
		PollInterval:       2 * time.Second,
		MaxAttempts:        60,
		FallbackConfidence: 95.0,
	}
}

// Controller drives a captured clip through upload, submission and polling
// to a terminal state, persisting the result on completion. At most one job
// is live at a time; starting another while one is non-terminal fails with
// Busy, mirroring the singleton microphone.
type Controller struct {
	client        speech.Client
	transcriptSvc transcripts.Service
	notifySvc     notifications.Service
	cfg           Config

	mu       sync.Mutex
	seq      uint64
	active   *models.Dictation
	cancelCh chan struct{}
	runCtx   context.CancelFunc
}

// NewController creates a new job controller
func NewController(client speech.Client, transcriptSvc transcripts.Service, notifySvc notifications.Service, cfg Config) *Controller {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 60
	}
	if cfg.FallbackConfidence <= 0 {
		cfg.FallbackConfidence = 95.0
	}
	return &Controller{
		client:        client,
		transcriptSvc: transcriptSvc,
		notifySvc:     notifySvc,
		cfg:           cfg,
	}
}

// Run starts a transcription job for a captured clip. It returns a channel
// of ordered state-change events; the caller observes intermediate states
// without blocking the pipeline. The channel is buffered for the worst-case
// event count and closed after the single terminal event.
func (c *Controller) Run(ctx context.Context, ref recorder.AudioRef, languageCode string) (<-chan Event, error) {
	c.mu.Lock()
	if c.active != nil && !c.active.IsTerminal() {
		c.mu.Unlock()
		return nil, apperrors.Busy("transcription job")
	}

	c.seq++
	job := &models.Dictation{
		ID:        c.seq,
		State:     models.DictationStateIdle,
		AudioPath: ref.Path,
		Language:  languageCode,
		CreatedAt: time.Now().UTC(),
	}
	cancelCh := make(chan struct{})
	runCtx, cancel := context.WithCancel(ctx)
	c.active = job
	c.cancelCh = cancelCh
	c.runCtx = cancel
	c.mu.Unlock()

	events := make(chan Event, c.cfg.MaxAttempts+4)

	go func() {
		defer close(events)
		defer cancel()
		c.run(runCtx, job, ref, cancelCh, events)
	}()

	return events, nil
}

// Cancel requests cancellation of the live job. Idempotent: cancelling a
// terminal or absent job is a no-op.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil || c.active.IsTerminal() {
		return
	}

	select {
	case <-c.cancelCh:
		// already requested
	default:
		close(c.cancelCh)
	}
	c.runCtx()
}

// Snapshot returns a copy of the live (or most recent) job, or nil if no
// job has run yet
func (c *Controller) Snapshot() *models.Dictation {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return nil
	}
	copied := *c.active
	return &copied
}

// run drives the state machine to a terminal state
func (c *Controller) run(ctx context.Context, job *models.Dictation, ref recorder.AudioRef, cancelCh chan struct{}, events chan<- Event) {
	// Upload
	c.transition(job, models.DictationStateUploading, events)

	clip, err := ref.Open()
	if err != nil {
		c.fail(job, events, apperrors.Wrap(err, apperrors.ErrCodeInternal, "opening captured audio"))
		return
	}
	audioURL, err := c.client.Upload(ctx, clip)
	clip.Close()
	if c.cancelledNow(cancelCh) {
		c.terminate(job, models.DictationStateCancelled, events, nil)
		return
	}
	if err != nil {
		c.fail(job, events, err)
		return
	}

	// Submit
	c.transition(job, models.DictationStateSubmitted, events)

	remoteID, err := c.client.Submit(ctx, audioURL, job.Language)
	if c.cancelledNow(cancelCh) {
		c.terminate(job, models.DictationStateCancelled, events, nil)
		return
	}
	if err != nil {
		c.fail(job, events, err)
		return
	}

	c.mu.Lock()
	job.RemoteID = remoteID
	c.mu.Unlock()

	// Poll until completed, error, or the attempt ceiling
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if c.cancelledNow(cancelCh) {
			c.terminate(job, models.DictationStateCancelled, events, nil)
			return
		}

		c.mu.Lock()
		job.State = models.DictationStatePolling
		job.Attempt = attempt
		c.mu.Unlock()
		events <- Event{JobID: job.ID, State: models.DictationStatePolling, Attempt: attempt}

		status, err := c.client.Poll(ctx, remoteID)
		if c.cancelledNow(cancelCh) {
			// A response that raced with cancellation is discarded
			c.terminate(job, models.DictationStateCancelled, events, nil)
			return
		}
		if err != nil {
			c.fail(job, events, err)
			return
		}

		switch {
		case status.Status == speech.StatusCompleted:
			c.complete(ctx, job, status, events)
			return
		case status.Status == speech.StatusError:
			c.fail(job, events, apperrors.RemoteJobError(remoteID, status.ErrorReason))
			return
		case status.Pending():
			// Fixed-interval suspension; cancellation cuts it short
			select {
			case <-time.After(c.cfg.PollInterval):
			case <-cancelCh:
				c.terminate(job, models.DictationStateCancelled, events, nil)
				return
			case <-ctx.Done():
				c.terminate(job, models.DictationStateCancelled, events, nil)
				return
			}
		}
	}

	elapsed := time.Duration(c.cfg.MaxAttempts) * c.cfg.PollInterval
	c.terminate(job, models.DictationStateTimedOut, events,
		apperrors.TimedOut(c.cfg.MaxAttempts, elapsed.String()))
}

// complete persists the result and emits the terminal completed event.
// The transcript and notification inserts are deliberately not transactional:
// completion is best effort, a notification failure leaves the transcript in
// place and is surfaced on the event.
func (c *Controller) complete(ctx context.Context, job *models.Dictation, status *speech.JobStatus, events chan<- Event) {
	confidence := c.cfg.FallbackConfidence
	if status.Confidence != nil {
		confidence = *status.Confidence * 100
		if confidence > 100 {
			confidence = 100
		}
		if confidence < 0 {
			confidence = 0
		}
	}

	transcript, err := c.transcriptSvc.SaveTranscript(ctx, status.Text, status.AudioDuration, confidence)
	if err != nil {
		// The remote job is done either way; there is no compensating
		// action, only a surfaced failure.
		c.fail(job, events, err)
		return
	}

	var notifyErr error
	if _, err := c.notifySvc.Notify(ctx, completedMessage, models.NotificationCategoryTranscription); err != nil {
		log.Printf("Job %d: transcript %d saved but notification write failed: %v", job.ID, transcript.ID, err)
		notifyErr = err
	}

	c.mu.Lock()
	job.State = models.DictationStateCompleted
	c.mu.Unlock()
	events <- Event{
		JobID:      job.ID,
		State:      models.DictationStateCompleted,
		Attempt:    job.Attempt,
		Transcript: transcript,
		Err:        notifyErr,
	}
}

// fail records the failure reason and emits the terminal failed event
func (c *Controller) fail(job *models.Dictation, events chan<- Event, cause error) {
	c.terminate(job, models.DictationStateFailed, events, cause)
}

// terminate moves the job to a terminal state and emits the final event
func (c *Controller) terminate(job *models.Dictation, state models.DictationState, events chan<- Event, cause error) {
	c.mu.Lock()
	job.State = state
	if cause != nil {
		job.Error = cause.Error()
	}
	c.mu.Unlock()

	if cause != nil {
		log.Printf("Job %d ended %s: %v", job.ID, state, cause)
	}
	events <- Event{JobID: job.ID, State: state, Attempt: job.Attempt, Err: cause}
}

// transition emits a non-terminal state change
func (c *Controller) transition(job *models.Dictation, state models.DictationState, events chan<- Event) {
	c.mu.Lock()
	job.State = state
	c.mu.Unlock()
	events <- Event{JobID: job.ID, State: state, Attempt: job.Attempt}
}

// cancelledNow reports whether cancellation was requested. Checked after
// every suspension point so in-flight responses are discarded rather than
// acted on.
func (c *Controller) cancelledNow(cancelCh chan struct{}) bool {
	select {
	case <-cancelCh:
		return true
	default:
		return false
	}
}

// Describe renders a short human-readable summary of a snapshot for logs
// and CLI output
func Describe(d *models.Dictation) string {
	if d == nil {
		return "no job"
	}
	if d.Error != "" {
		return fmt.Sprintf("job %d %s (attempt %d): %s", d.ID, d.State, d.Attempt, d.Error)
	}
	return fmt.Sprintf("job %d %s (attempt %d)", d.ID, d.State, d.Attempt)
}
