package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/uleam/dictado/pkg/errors"
)

// client handles communication with the external transcription API
type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
}

// Config holds configuration for the transcription service client
type Config struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
}

// NewClient creates a new transcription service client
func NewClient(cfg Config) Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "DictadoAPI/1.0"
	}

	return &client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
	}
}

// Upload streams a captured audio clip to the service. At-most-once: a
// transport or service failure is returned as-is, never retried here.
func (c *client) Upload(ctx context.Context, audio io.Reader) (string, error) {
	endpoint := fmt.Sprintf("%s/upload", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, audio)
	if err != nil {
		return "", apperrors.ServiceError("upload", err)
	}
	c.signRequest(req)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NetworkError("upload", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperrors.ServiceError("upload", fmt.Errorf("API returned status %d", resp.StatusCode))
	}

	var uploadResp uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", apperrors.ServiceError("upload", fmt.Errorf("decoding response: %w", err))
	}
	if uploadResp.UploadURL == "" {
		return "", apperrors.ServiceError("upload", fmt.Errorf("response missing upload_url"))
	}

	return uploadResp.UploadURL, nil
}

// Submit requests transcription of an uploaded clip
func (c *client) Submit(ctx context.Context, audioURL, languageCode string) (string, error) {
	endpoint := fmt.Sprintf("%s/transcript", c.baseURL)

	body, err := json.Marshal(submitRequest{
		AudioURL:     audioURL,
		LanguageCode: languageCode,
	})
	if err != nil {
		return "", apperrors.ServiceError("submit", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.ServiceError("submit", err)
	}
	c.signRequest(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NetworkError("submit", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperrors.ServiceError("submit", fmt.Errorf("API returned status %d", resp.StatusCode))
	}

	var submitResp submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitResp); err != nil {
		return "", apperrors.ServiceError("submit", fmt.Errorf("decoding response: %w", err))
	}
	if submitResp.ID == "" {
		return "", apperrors.ServiceError("submit", fmt.Errorf("response missing job id"))
	}

	return submitResp.ID, nil
}

// Poll reads the current state of a remote job
func (c *client) Poll(ctx context.Context, jobID string) (*JobStatus, error) {
	endpoint := fmt.Sprintf("%s/transcript/%s", c.baseURL, jobID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.ServiceError("poll", err)
	}
	c.signRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NetworkError("poll", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.ServiceError("poll", fmt.Errorf("API returned status %d", resp.StatusCode))
	}

	var pollResp pollResponse
	if err := json.NewDecoder(resp.Body).Decode(&pollResp); err != nil {
		return nil, apperrors.ServiceError("poll", fmt.Errorf("decoding response: %w", err))
	}

	status := &JobStatus{
		Status:     pollResp.Status,
		Confidence: pollResp.Confidence,
	}
	if pollResp.Text != nil {
		status.Text = *pollResp.Text
	}
	if pollResp.AudioDuration != nil {
		status.AudioDuration = *pollResp.AudioDuration
	}
	if pollResp.Error != nil {
		status.ErrorReason = *pollResp.Error
	}

	switch status.Status {
	case StatusQueued, StatusProcessing, StatusCompleted, StatusError:
		return status, nil
	default:
		return nil, apperrors.ServiceError("poll", fmt.Errorf("unknown job status %q", pollResp.Status))
	}
}

// signRequest attaches the auth and agent headers
func (c *client) signRequest(req *http.Request) {
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
}
