package recorder

import (
	"context"
	"io"
	"os"
)

// AudioRef is an opaque handle to a captured audio clip. The service client
// reads it as a byte stream; nothing else inspects it.
type AudioRef struct {
	Path string
}

// Open returns the clip as a byte stream
func (r AudioRef) Open() (io.ReadCloser, error) {
	return os.Open(r.Path)
}

// PermissionProvider is the collaborator that answers microphone permission
// prompts. The OS/UI shell supplies the real one; tests supply a stub.
type PermissionProvider interface {
	RequestPermission(ctx context.Context) (bool, error)
}

// CaptureDevice produces audio bytes into a destination file between Start
// and Stop. Implementations do not need to be safe for concurrent use; the
// session manager serializes access.
type CaptureDevice interface {
	Start(ctx context.Context, destPath string) error
	Stop() error
}

// StaticPermission is a PermissionProvider with a fixed answer
type StaticPermission bool

// RequestPermission returns the configured grant state
func (p StaticPermission) RequestPermission(context.Context) (bool, error) {
	return bool(p), nil
}
