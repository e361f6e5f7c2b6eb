package recorder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	apperrors "github.com/uleam/dictado/pkg/errors"
)

type sessionState int

const (
	stateIdle sessionState = iota
	stateRecording
)

// Manager owns the exclusive microphone resource. It converts a capture
// gesture (Start/Stop) into a durable AudioRef. One capture at a time;
// a second Start fails with Busy rather than queueing.
type Manager struct {
	mu     sync.Mutex
	state  sessionState
	device CaptureDevice
	perm   PermissionProvider
	dir    string

	permChecked bool
	permGranted bool

	currentPath string
}

// NewManager creates a new audio session manager writing clips into dir
func NewManager(device CaptureDevice, perm PermissionProvider, dir string) *Manager {
	return &Manager{
		device: device,
		perm:   perm,
		dir:    dir,
	}
}

// RequestPermission asks the permission provider for microphone access.
// The first answer is cached; calling again returns the cached grant.
func (m *Manager) RequestPermission(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.permChecked {
		return m.permGranted, nil
	}

	granted, err := m.perm.RequestPermission(ctx)
	if err != nil {
		return false, fmt.Errorf("requesting microphone permission: %w", err)
	}

	m.permChecked = true
	m.permGranted = granted
	return granted, nil
}

// Start begins a capture session
func (m *Manager) Start(ctx context.Context) error {
	granted, err := m.RequestPermission(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !granted {
		return apperrors.PermissionDenied()
	}
	if m.state == stateRecording {
		return apperrors.Busy("microphone")
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("creating recordings directory: %w", err)
	}

	dest := filepath.Join(m.dir, fmt.Sprintf("capture-%d.wav", time.Now().UnixNano()))
	if err := m.device.Start(ctx, dest); err != nil {
		return fmt.Errorf("starting capture device: %w", err)
	}

	m.state = stateRecording
	m.currentPath = dest
	return nil
}

// Stop ends the capture session and returns the clip handle
func (m *Manager) Stop() (AudioRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != stateRecording {
		return AudioRef{}, apperrors.NotRecording()
	}

	if err := m.device.Stop(); err != nil {
		m.state = stateIdle
		return AudioRef{}, fmt.Errorf("stopping capture device: %w", err)
	}

	m.state = stateIdle
	ref := AudioRef{Path: m.currentPath}
	m.currentPath = ""
	return ref, nil
}

// Recording reports whether a capture session is active
func (m *Manager) Recording() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == stateRecording
}
