package speech

import (
	"context"
	"io"
)

// Remote job statuses reported by the transcription service
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// Client is the narrow interface the job controller consumes. Keeping the
// three calls behind an interface lets tests script arbitrary status
// sequences without a live network dependency.
type Client interface {
	// Upload streams a captured audio clip to the service and returns the
	// remote audio URL
	Upload(ctx context.Context, audio io.Reader) (string, error)

	// Submit requests transcription of an uploaded clip and returns the
	// remote job identifier
	Submit(ctx context.Context, audioURL, languageCode string) (string, error)

	// Poll reads the current state of a remote job. It never mutates remote
	// state and is safe to call repeatedly.
	Poll(ctx context.Context, jobID string) (*JobStatus, error)
}

// JobStatus is the decoded poll response
type JobStatus struct {
	Status        string
	Text          string
	AudioDuration float64
	// Confidence is nil when the service omitted the field
	Confidence  *float64
	ErrorReason string
}

// Pending reports whether the remote job is still queued or processing
func (s *JobStatus) Pending() bool {
	return s.Status == StatusQueued || s.Status == StatusProcessing
}

// Wire formats

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type submitRequest struct {
	AudioURL     string `json:"audio_url"`
	LanguageCode string `json:"language_code"`
}

type submitResponse struct {
	ID string `json:"id"`
}

type pollResponse struct {
	Status        string   `json:"status"`
	Text          *string  `json:"text"`
	AudioDuration *float64 `json:"audio_duration"`
	Confidence    *float64 `json:"confidence"`
	Error         *string  `json:"error"`
}
