package recorder

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// FFmpegDevice captures microphone audio by shelling out to ffmpeg with the
// platform's capture backend. The recording runs until Stop interrupts the
// process or the configured duration ceiling elapses.
type FFmpegDevice struct {
	mu          sync.Mutex
	ffmpegPath  string
	input       string
	maxDuration time.Duration
	cmd         *exec.Cmd
}

// NewFFmpegDevice creates a capture device reading from the named input
// device ("default" for the system microphone)
func NewFFmpegDevice(ffmpegPath, input string, maxDuration time.Duration) *FFmpegDevice {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if input == "" {
		input = "default"
	}
	return &FFmpegDevice{
		ffmpegPath:  ffmpegPath,
		input:       input,
		maxDuration: maxDuration,
	}
}

// ValidateBinary checks that ffmpeg is available
func (d *FFmpegDevice) ValidateBinary() error {
	if _, err := exec.LookPath(d.ffmpegPath); err != nil {
		return fmt.Errorf("ffmpeg not found: %s", d.ffmpegPath)
	}
	return nil
}

// Start launches ffmpeg writing PCM audio to destPath
func (d *FFmpegDevice) Start(ctx context.Context, destPath string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cmd != nil {
		return fmt.Errorf("capture already running")
	}

	args := []string{
		"-f", captureBackend(),
		"-i", d.input,
		"-ac", "1",
		"-ar", "16000",
	}
	if d.maxDuration > 0 {
		args = append(args, "-t", fmt.Sprintf("%.0f", d.maxDuration.Seconds()))
	}
	args = append(args, "-y", destPath)

	cmd := exec.CommandContext(ctx, d.ffmpegPath, args...)
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting ffmpeg: %w", err)
	}

	d.cmd = cmd
	return nil
}

// Stop interrupts ffmpeg and waits for it to flush the output file
func (d *FFmpegDevice) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cmd == nil {
		return fmt.Errorf("capture not running")
	}

	cmd := d.cmd
	d.cmd = nil

	// SIGINT makes ffmpeg finalize the container before exiting
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		_ = cmd.Process.Kill()
	}
	// ffmpeg exits non-zero when interrupted; the file is still complete
	_ = cmd.Wait()
	return nil
}

// captureBackend returns the ffmpeg input format for the current platform
func captureBackend() string {
	switch runtime.GOOS {
	case "darwin":
		return "avfoundation"
	case "windows":
		return "dshow"
	default:
		return "alsa"
	}
}

// FileDevice is a CaptureDevice that copies a prerecorded file instead of
// touching real audio hardware. Used by tests and the transcribe CLI path.
type FileDevice struct {
	mu     sync.Mutex
	source string
	dest   string
}

// NewFileDevice creates a device that "captures" the given source file
func NewFileDevice(source string) *FileDevice {
	return &FileDevice{source: source}
}

// Start remembers the destination for Stop
func (d *FileDevice) Start(_ context.Context, destPath string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dest != "" {
		return fmt.Errorf("capture already running")
	}
	d.dest = destPath
	return nil
}

// Stop copies the source clip into place
func (d *FileDevice) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dest == "" {
		return fmt.Errorf("capture not running")
	}
	dest := d.dest
	d.dest = ""

	src, err := os.Open(d.source)
	if err != nil {
		return fmt.Errorf("opening source clip: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating destination clip: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("copying clip: %w", err)
	}
	return nil
}
