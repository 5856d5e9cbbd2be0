package display

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	metrics "github.com/inference-gateway/desktop-mcp/internal/metrics"
)

// ErrUnsupported is returned by backends for primitives the native layer
// cannot perform
var ErrUnsupported = errors.New("operation not supported by this backend")

// ErrEmptyCapture is reported when a capture succeeds without pixels
var ErrEmptyCapture = errors.New("capture returned no pixels")

// Backend abstracts the native input, capture and window primitives of one
// platform (robotgo, Win32, X11, virtual). Coordinates are already validated
// by the caller.
type Backend interface {
	// Name identifies the backend, e.g. "x11"
	Name() string

	// Mouse operations
	MoveMouse(ctx context.Context, x, y int) error
	MouseToggle(ctx context.Context, button MouseButton, down bool) error
	ClickMouse(ctx context.Context, button MouseButton, clicks int) error
	ScrollMouse(ctx context.Context, amount int) error
	SetMouseSpeed(ctx context.Context, speed int) error
	GetCursorPosition(ctx context.Context) (x, y int, err error)

	// Keyboard operations, keys use canonical names
	TypeText(ctx context.Context, text string) error
	KeyToggle(ctx context.Context, key string, down bool) error
	KeyTap(ctx context.Context, key string) error

	// Screen operations
	GetScreenDimensions(ctx context.Context) (width, height int, err error)
	CaptureRaw(ctx context.Context, region *Rect) (*RawImage, error)

	// Window operations
	ListWindows(ctx context.Context) ([]WindowHandle, error)
	WindowTitle(ctx context.Context, h WindowHandle) (string, error)
	WindowRect(ctx context.Context, h WindowHandle) (Rect, error)
	ActiveWindow(ctx context.Context) (WindowHandle, error)
	FocusWindow(ctx context.Context, h WindowHandle) error
	SetWindowRect(ctx context.Context, h WindowHandle, r Rect) error

	// Lifecycle
	Close() error
}

// WindowClassifier is implemented by backends that can report a window class
type WindowClassifier interface {
	WindowClass(ctx context.Context, h WindowHandle) (string, error)
}

// MetricsProvider is implemented by backends that can read OS display metrics
type MetricsProvider interface {
	Metrics() (metrics.Reader, error)
}

// WindowHandle is an opaque native window identifier
type WindowHandle int64

// Rect represents a rectangular area on the screen
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rect has no area
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// String renders the rect as "WxH+X+Y"
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d%+d%+d", r.Width, r.Height, r.X, r.Y)
}

// MouseButton represents a mouse button
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
)

// String returns the string representation of a mouse button
func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseMouseButton parses a button name; only left, middle and right are accepted
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "left":
		return MouseButtonLeft, nil
	case "middle":
		return MouseButtonMiddle, nil
	case "right":
		return MouseButtonRight, nil
	default:
		return MouseButtonLeft, fmt.Errorf("invalid mouse button %q: must be left, right or middle", s)
	}
}

// Driver creates Backend instances for a specific display server/protocol
type Driver interface {
	// Open creates a new Backend
	Open(opts OpenOptions) (Backend, error)

	// Info returns information about the backend
	Info() DriverInfo

	// IsAvailable returns true if this backend can run on the current system
	IsAvailable() bool
}

// OpenOptions configures a backend at construction
type OpenOptions struct {
	// Display names the display server connection, e.g. ":0"; empty uses
	// the environment default
	Display string
	// TypeDelay is the pause between synthesized keystrokes
	TypeDelay time.Duration
	// MouseSpeed is the initial pointer speed, 1 (slow) to 100 (instant)
	MouseSpeed int
}

// DriverInfo contains metadata about a backend
type DriverInfo struct {
	Name string
	// Priority orders automatic detection, lower wins
	Priority        int
	SupportsWindows bool
	// Explicit drivers are never picked by automatic detection
	Explicit bool
}
