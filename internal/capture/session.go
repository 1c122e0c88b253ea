package capture

import (
	"context"
	"errors"
	"sync"
)

// ErrSessionClosed is returned when using a session after Close.
var ErrSessionClosed = errors.New("capture session closed")

// Session owns one open stream. The stream is stopped after a successful
// capture and on Close. Close is idempotent.
type Session struct {
	stream Stream
	mu     sync.Mutex
	closed bool
}

// Open starts a stream on camera facing the given way.
func Open(ctx context.Context, camera Camera, facing Facing) (*Session, error) {
	stream, err := camera.Start(ctx, facing)
	if err != nil {
		return nil, err
	}
	return &Session{stream: stream}, nil
}

// Capture grabs one frame and ends the session on success. A failed capture
// leaves the stream open so the user can try again.
func (s *Session) Capture(ctx context.Context) (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Frame{}, ErrSessionClosed
	}
	frame, err := s.stream.Capture(ctx)
	if err != nil {
		return Frame{}, err
	}
	_ = s.closeLocked()
	return frame, nil
}

// Close stops the stream.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Session) closeLocked() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.stream.Stop()
}
