package dictation

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/uleam/dictado/internal/models"
	"github.com/uleam/dictado/internal/services/notifications"
	"github.com/uleam/dictado/internal/services/recorder"
	"github.com/uleam/dictado/internal/services/speech"
	"github.com/uleam/dictado/internal/services/transcripts"
	apperrors "github.com/uleam/dictado/pkg/errors"
)

// pollStep scripts one Poll call of the fake client
type pollStep struct {
	status *speech.JobStatus
	err    error
}

// fakeClient scripts the remote service without a network dependency
type fakeClient struct {
	mu        sync.Mutex
	uploadErr error
	submitErr error
	polls     []pollStep
	pollCalls int

	// when set, Poll signals on started and blocks until release is closed
	started chan struct{}
	release chan struct{}
}

func (f *fakeClient) Upload(_ context.Context, audio io.Reader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	io.Copy(io.Discard, audio)
	return "https://audio.example.com/clip", nil
}

func (f *fakeClient) Submit(context.Context, string, string) (string, error) {
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return "job-remote-1", nil
}

func (f *fakeClient) Poll(context.Context, string) (*speech.JobStatus, error) {
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	step := f.polls[len(f.polls)-1]
	if f.pollCalls < len(f.polls) {
		step = f.polls[f.pollCalls]
	}
	f.pollCalls++
	return step.status, step.err
}

func processing() pollStep {
	return pollStep{status: &speech.JobStatus{Status: speech.StatusProcessing}}
}

func completed(text string, duration float64, confidence *float64) pollStep {
	return pollStep{status: &speech.JobStatus{
		Status:        speech.StatusCompleted,
		Text:          text,
		AudioDuration: duration,
		Confidence:    confidence,
	}}
}

func floatPtr(v float64) *float64 { return &v }

type fixture struct {
	db            *gorm.DB
	controller    *Controller
	transcriptSvc transcripts.Service
	notifySvc     notifications.Service
	ref           recorder.AudioRef
}

func newFixture(t *testing.T, client speech.Client, cfg Config) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Transcript{}, &models.Notification{}))

	transcriptSvc := transcripts.NewService(transcripts.NewRepository(db))
	notifySvc := notifications.NewService(notifications.NewRepository(db))

	clip := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(clip, []byte("fake-wav-bytes"), 0644))

	return &fixture{
		db:            db,
		controller:    NewController(client, transcriptSvc, notifySvc, cfg),
		transcriptSvc: transcriptSvc,
		notifySvc:     notifySvc,
		ref:           recorder.AudioRef{Path: clip},
	}
}

func fastConfig() Config {
	return Config{PollInterval: time.Millisecond, MaxAttempts: 60, FallbackConfidence: 95.0}
}

// collect drains the event channel, failing the test if it does not close
func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()

	var collected []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return collected
			}
			collected = append(collected, event)
		case <-timeout:
			t.Fatalf("event channel never closed; got %d events", len(collected))
		}
	}
}

func (f *fixture) counts(t *testing.T) (transcripts, notifications int64) {
	t.Helper()
	require.NoError(t, f.db.Model(&models.Transcript{}).Count(&transcripts).Error)
	require.NoError(t, f.db.Model(&models.Notification{}).Count(&notifications).Error)
	return
}

func TestController_CompletedJob(t *testing.T) {
	client := &fakeClient{polls: []pollStep{
		processing(),
		processing(),
		completed("hola mundo", 3.2, floatPtr(0.925)),
	}}
	f := newFixture(t, client, fastConfig())

	events, err := f.controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)

	all := collect(t, events)
	require.GreaterOrEqual(t, len(all), 5)

	assert.Equal(t, models.DictationStateUploading, all[0].State)
	assert.Equal(t, models.DictationStateSubmitted, all[1].State)
	assert.Equal(t, models.DictationStatePolling, all[2].State)
	assert.Equal(t, 1, all[2].Attempt)
	assert.Equal(t, models.DictationStatePolling, all[3].State)

	final := all[len(all)-1]
	assert.Equal(t, models.DictationStateCompleted, final.State)
	assert.True(t, final.Terminal())
	assert.NoError(t, final.Err)
	require.NotNil(t, final.Transcript)
	assert.Equal(t, "hola mundo", final.Transcript.Text)
	assert.Equal(t, 3.2, final.Transcript.Duration)
	assert.InDelta(t, 92.5, final.Transcript.Confidence, 0.0001)

	// Exactly one event per poll attempt before the terminal
	assert.Equal(t, 3, client.pollCalls)

	tCount, nCount := f.counts(t)
	assert.Equal(t, int64(1), tCount)
	assert.Equal(t, int64(1), nCount)

	notes, err := f.notifySvc.ListNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Transcription completed successfully", notes[0].Message)
	assert.Equal(t, models.NotificationCategoryTranscription, notes[0].Category)
	assert.False(t, notes[0].Read)
}

func TestController_FallbackConfidence(t *testing.T) {
	client := &fakeClient{polls: []pollStep{completed("hola", 1.0, nil)}}
	f := newFixture(t, client, fastConfig())

	events, err := f.controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)

	all := collect(t, events)
	final := all[len(all)-1]
	require.Equal(t, models.DictationStateCompleted, final.State)
	assert.InDelta(t, 95.0, final.Transcript.Confidence, 0.0001)
}

func TestController_ConfidenceClamped(t *testing.T) {
	client := &fakeClient{polls: []pollStep{completed("hola", 1.0, floatPtr(1.3))}}
	f := newFixture(t, client, fastConfig())

	events, err := f.controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)

	all := collect(t, events)
	final := all[len(all)-1]
	require.Equal(t, models.DictationStateCompleted, final.State)
	assert.Equal(t, 100.0, final.Transcript.Confidence)
}

// failingNotifier rejects every insert; only Notify is ever reached
type failingNotifier struct {
	notifications.Service
}

func (failingNotifier) Notify(context.Context, string, string) (*models.Notification, error) {
	return nil, apperrors.StoreWriteError("notification", assert.AnError)
}

func TestController_NotificationWriteFailureKeepsTranscript(t *testing.T) {
	client := &fakeClient{polls: []pollStep{completed("hola mundo", 3.2, nil)}}
	f := newFixture(t, client, fastConfig())

	controller := NewController(client, f.transcriptSvc, failingNotifier{}, fastConfig())

	events, err := controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)

	all := collect(t, events)
	final := all[len(all)-1]

	// Completion is best effort: the transcript stays and the failed
	// notification write rides on the terminal event
	require.Equal(t, models.DictationStateCompleted, final.State)
	require.Error(t, final.Err)
	assert.Equal(t, apperrors.ErrCodeStoreWrite, apperrors.GetCode(final.Err))
	require.NotNil(t, final.Transcript)
	assert.Equal(t, "hola mundo", final.Transcript.Text)

	tCount, nCount := f.counts(t)
	assert.Equal(t, int64(1), tCount)
	assert.Zero(t, nCount)
}

func TestController_UploadFailure(t *testing.T) {
	client := &fakeClient{uploadErr: apperrors.NetworkError("upload", assert.AnError)}
	f := newFixture(t, client, fastConfig())

	events, err := f.controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)

	all := collect(t, events)
	require.Len(t, all, 2)
	assert.Equal(t, models.DictationStateUploading, all[0].State)
	assert.Equal(t, models.DictationStateFailed, all[1].State)
	assert.Equal(t, apperrors.ErrCodeNetwork, apperrors.GetCode(all[1].Err))

	tCount, nCount := f.counts(t)
	assert.Zero(t, tCount)
	assert.Zero(t, nCount)
}

func TestController_SubmitFailure(t *testing.T) {
	client := &fakeClient{submitErr: apperrors.ServiceError("submit", assert.AnError)}
	f := newFixture(t, client, fastConfig())

	events, err := f.controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)

	all := collect(t, events)
	require.Len(t, all, 3)
	assert.Equal(t, models.DictationStateUploading, all[0].State)
	assert.Equal(t, models.DictationStateSubmitted, all[1].State)
	assert.Equal(t, models.DictationStateFailed, all[2].State)
	assert.Equal(t, apperrors.ErrCodeService, apperrors.GetCode(all[2].Err))

	// A failed submission is never retried and never reaches the poll loop
	assert.Zero(t, client.pollCalls)

	tCount, nCount := f.counts(t)
	assert.Zero(t, tCount)
	assert.Zero(t, nCount)
}

func TestController_RemoteJobError(t *testing.T) {
	client := &fakeClient{polls: []pollStep{
		processing(),
		{status: &speech.JobStatus{Status: speech.StatusError, ErrorReason: "audio too short"}},
	}}
	f := newFixture(t, client, fastConfig())

	events, err := f.controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)

	all := collect(t, events)
	final := all[len(all)-1]
	assert.Equal(t, models.DictationStateFailed, final.State)
	assert.Equal(t, apperrors.ErrCodeRemoteJob, apperrors.GetCode(final.Err))
	assert.Contains(t, final.Err.Error(), "audio too short")

	tCount, nCount := f.counts(t)
	assert.Zero(t, tCount)
	assert.Zero(t, nCount)
}

func TestController_TimedOut(t *testing.T) {
	client := &fakeClient{polls: []pollStep{processing()}}
	cfg := Config{PollInterval: time.Millisecond, MaxAttempts: 5, FallbackConfidence: 95.0}
	f := newFixture(t, client, cfg)

	events, err := f.controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)

	all := collect(t, events)
	final := all[len(all)-1]
	assert.Equal(t, models.DictationStateTimedOut, final.State)
	assert.Equal(t, apperrors.ErrCodeTimedOut, apperrors.GetCode(final.Err))
	assert.Equal(t, 5, client.pollCalls)

	tCount, nCount := f.counts(t)
	assert.Zero(t, tCount)
	assert.Zero(t, nCount)
}

func TestController_BusyWhileRunning(t *testing.T) {
	client := &fakeClient{
		polls:   []pollStep{completed("hola", 1.0, nil)},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	f := newFixture(t, client, fastConfig())

	events, err := f.controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)

	<-client.started

	_, err = f.controller.Run(context.Background(), f.ref, "es")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeBusy, apperrors.GetCode(err))

	// The live job is unaffected by the rejected start
	close(client.release)
	all := collect(t, events)
	assert.Equal(t, models.DictationStateCompleted, all[len(all)-1].State)
}

func TestController_SequentialJobs(t *testing.T) {
	client := &fakeClient{polls: []pollStep{completed("primero", 1.0, nil)}}
	f := newFixture(t, client, fastConfig())

	events, err := f.controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)
	collect(t, events)

	// A terminal job releases the slot
	events, err = f.controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)
	all := collect(t, events)
	assert.Equal(t, models.DictationStateCompleted, all[len(all)-1].State)

	tCount, _ := f.counts(t)
	assert.Equal(t, int64(2), tCount)
}

func TestController_CancelDiscardsRacedResponse(t *testing.T) {
	// Poll blocks until released, then reports completed. Cancellation lands
	// while the response is in flight; the result must be discarded.
	client := &fakeClient{
		polls:   []pollStep{completed("hola", 1.0, nil)},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	f := newFixture(t, client, fastConfig())

	events, err := f.controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)

	<-client.started
	f.controller.Cancel()
	close(client.release)

	all := collect(t, events)
	final := all[len(all)-1]
	assert.Equal(t, models.DictationStateCancelled, final.State)
	assert.NoError(t, final.Err)

	tCount, nCount := f.counts(t)
	assert.Zero(t, tCount)
	assert.Zero(t, nCount)

	snap := f.controller.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, models.DictationStateCancelled, snap.State)
}

func TestController_CancelIdempotent(t *testing.T) {
	client := &fakeClient{polls: []pollStep{completed("hola", 1.0, nil)}}
	f := newFixture(t, client, fastConfig())

	// No job yet
	f.controller.Cancel()

	events, err := f.controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)
	collect(t, events)

	// Terminal job
	f.controller.Cancel()
	f.controller.Cancel()

	snap := f.controller.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, models.DictationStateCompleted, snap.State)
}

func TestController_Snapshot(t *testing.T) {
	client := &fakeClient{polls: []pollStep{completed("hola", 1.0, nil)}}
	f := newFixture(t, client, fastConfig())

	assert.Nil(t, f.controller.Snapshot())

	events, err := f.controller.Run(context.Background(), f.ref, "es")
	require.NoError(t, err)
	collect(t, events)

	snap := f.controller.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, models.DictationStateCompleted, snap.State)
	assert.Equal(t, "es", snap.Language)
	assert.Equal(t, "job-remote-1", snap.RemoteID)

	// The snapshot is a copy
	snap.State = models.DictationStateIdle
	assert.Equal(t, models.DictationStateCompleted, f.controller.Snapshot().State)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "no job", Describe(nil))

	d := &models.Dictation{ID: 3, State: models.DictationStatePolling, Attempt: 7}
	assert.Equal(t, "job 3 polling (attempt 7)", Describe(d))

	d.State = models.DictationStateFailed
	d.Error = "network unreachable"
	assert.Contains(t, Describe(d), "network unreachable")
}
