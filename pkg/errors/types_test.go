package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := New(ErrCodeBusy, "microphone is already in use")
	assert.Equal(t, "BUSY: microphone is already in use", err.Error())

	wrapped := Wrap(errors.New("dial tcp: refused"), ErrCodeNetwork, "network failure during upload")
	assert.Equal(t, "NETWORK: network failure during upload (caused by: dial tcp: refused)", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := StoreWriteError("transcript", cause)

	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.True(t, errors.As(fmt.Errorf("saving: %w", err), &appErr))
	assert.Equal(t, ErrCodeStoreWrite, appErr.Code)
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeBusy, GetCode(Busy("microphone")))
	assert.Equal(t, ErrCodeBusy, GetCode(fmt.Errorf("starting: %w", Busy("microphone"))))
	assert.Equal(t, ErrCodeInternal, GetCode(errors.New("plain")))
}

func TestIs(t *testing.T) {
	err := TimedOut(60, "2m0s")
	assert.True(t, Is(err, ErrCodeTimedOut))
	assert.False(t, Is(err, ErrCodeNetwork))
	assert.False(t, Is(errors.New("plain"), ErrCodeTimedOut))
}

func TestGetHTTPCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Busy("microphone"), http.StatusConflict},
		{NotFound("transcript", 42), http.StatusNotFound},
		{PermissionDenied(), http.StatusForbidden},
		{NotRecording(), http.StatusBadRequest},
		{ValidationError("text", "cannot be empty"), http.StatusBadRequest},
		{TimedOut(60, "2m0s"), http.StatusGatewayTimeout},
		{NetworkError("upload", errors.New("refused")), http.StatusBadGateway},
		{ServiceError("poll", errors.New("status 500")), http.StatusBadGateway},
		{RemoteJobError("job-1", "audio too short"), http.StatusBadGateway},
		{DatabaseError("query", errors.New("locked")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetHTTPCode(tt.err), "error: %v", tt.err)
	}
}

func TestWithDetail(t *testing.T) {
	err := Busy("microphone")
	require.NotNil(t, err.Details)
	assert.Equal(t, "microphone", err.Details["resource"])

	err.WithDetail("job_id", 7)
	assert.Equal(t, 7, err.Details["job_id"])
}

func TestConstructorMessages(t *testing.T) {
	assert.Contains(t, RemoteJobError("job-1", "audio too short").Error(), "audio too short")
	assert.Contains(t, TimedOut(60, "2m0s").Error(), "60 polls")
	assert.Contains(t, ValidationError("confidence", "must be between 0 and 100").Error(), "confidence")
}
