package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrCameraUnavailable means the snapshot source is missing or unreadable.
var ErrCameraUnavailable = errors.New("camera unavailable")

// ErrStreamStopped is returned when capturing from a stopped stream.
var ErrStreamStopped = errors.New("camera stream stopped")

// Facing selects the front or rear camera.
type Facing string

const (
	// FacingUser is the front camera.
	FacingUser Facing = "user"
	// FacingEnvironment is the rear camera, used by default.
	FacingEnvironment Facing = "environment"
)

// Toggle returns the opposite facing.
func (f Facing) Toggle() Facing {
	if f == FacingUser {
		return FacingEnvironment
	}
	return FacingUser
}

// Camera opens streams.
type Camera interface {
	Start(ctx context.Context, facing Facing) (Stream, error)
}

// Stream yields frames until stopped.
type Stream interface {
	Capture(ctx context.Context) (Frame, error)
	Stop() error
}

// DirCamera reads snapshots that some other tool writes to disk. Each
// facing points at either an image file or a directory whose newest image
// is treated as the live frame.
type DirCamera struct {
	Sources map[Facing]string
}

// NewDirCamera builds a camera from the two configured sources. Either may
// be empty.
func NewDirCamera(environment, user string) *DirCamera {
	return &DirCamera{Sources: map[Facing]string{
		FacingEnvironment: environment,
		FacingUser:        user,
	}}
}

// Start checks the source for facing is readable.
func (c *DirCamera) Start(ctx context.Context, facing Facing) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source := strings.TrimSpace(c.Sources[facing])
	if source == "" {
		return nil, fmt.Errorf("%w: no %s camera configured", ErrCameraUnavailable, facing)
	}
	if _, err := os.Stat(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCameraUnavailable, err)
	}
	return &dirStream{source: source}, nil
}

type dirStream struct {
	source  string
	mu      sync.Mutex
	stopped bool
}

func (s *dirStream) Capture(ctx context.Context) (Frame, error) {
	s.mu.Lock()
	stopped := s.stopped
	s.mu.Unlock()
	if stopped {
		return Frame{}, ErrStreamStopped
	}
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	path, err := latestImage(s.source)
	if err != nil {
		return Frame{}, err
	}
	return FromFile(path)
}

func (s *dirStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// latestImage resolves source to a file, picking the most recently
// modified image when source is a directory.
func latestImage(source string) (string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCameraUnavailable, err)
	}
	if !info.IsDir() {
		return source, nil
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCameraUnavailable, err)
	}

	var (
		newest   string
		newestAt time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || fi.ModTime().After(newestAt) {
			newest = filepath.Join(source, entry.Name())
			newestAt = fi.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("%w: no images in %s", ErrCameraUnavailable, source)
	}
	return newest, nil
}

// ListImages returns the image files directly inside dir, sorted by name.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() && isImageFile(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}
