package clipboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnavailable is returned when the system clipboard cannot be reached
var ErrUnavailable = errors.New("clipboard unavailable")

// Clipboard reads and writes plain text
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// System is the OS clipboard. The native layer is initialized on first use.
type System struct {
	once    sync.Once
	initErr error
}

// NewSystem returns the OS clipboard
func NewSystem() *System {
	return &System{}
}

func (s *System) init() error {
	s.once.Do(func() {
		if err := nativeInit(); err != nil {
			s.initErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	})
	return s.initErr
}

// ReadText returns the clipboard text, empty when the clipboard holds none
func (s *System) ReadText(ctx context.Context) (string, error) {
	if err := s.init(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(nativeReadText()), nil
}

// WriteText replaces the clipboard content with text
func (s *System) WriteText(ctx context.Context, text string) error {
	if err := s.init(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	nativeWriteText([]byte(text))
	return nil
}

// Unavailable is the clipboard used when the automation backend failed to
// initialize
type Unavailable struct {
	Reason error
}

// ReadText implements Clipboard
func (u Unavailable) ReadText(context.Context) (string, error) {
	return "", u.err()
}

// WriteText implements Clipboard
func (u Unavailable) WriteText(context.Context, string) error {
	return u.err()
}

func (u Unavailable) err() error {
	if u.Reason == nil {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, u.Reason)
}

// Memory is an in-process clipboard
type Memory struct {
	mu   sync.Mutex
	text string
}

// ReadText implements Clipboard
func (m *Memory) ReadText(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// WriteText implements Clipboard
func (m *Memory) WriteText(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}
