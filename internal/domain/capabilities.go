package domain

import "context"

// Mouse groups pointer operations. Coordinates arrive unvalidated as float64
// so NaN and out-of-range values can be rejected before reaching a backend.
type Mouse interface {
	MoveMouse(ctx context.Context, x, y float64) Result
	ClickMouse(ctx context.Context, button string) Result
	DoubleClick(ctx context.Context, at *Point) Result
	DragMouse(ctx context.Context, from, to Point, button string) Result
	ScrollMouse(ctx context.Context, amount float64) Result
	SetMouseSpeed(ctx context.Context, speed float64) Result
	GetCursorPosition(ctx context.Context) Result
	ClickAt(ctx context.Context, x, y float64, button string) Result
}

// Keyboard groups key and text input operations
type Keyboard interface {
	TypeText(ctx context.Context, text string) Result
	PressKey(ctx context.Context, key string) Result
	PressKeyCombination(ctx context.Context, keys []string) Result
	HoldKey(ctx context.Context, key, state string, durationMs float64) Result
}

// Screen groups display, capture and window operations
type Screen interface {
	GetScreenSize(ctx context.Context) Result
	GetAllDisplays(ctx context.Context) Result
	GetScreenshot(ctx context.Context, opts ScreenshotOptions) Result
	GetActiveWindow(ctx context.Context) Result
	ListWindows(ctx context.Context) Result
	FocusWindow(ctx context.Context, title string) Result
	ResizeWindow(ctx context.Context, title string, width, height float64) Result
	RepositionWindow(ctx context.Context, title string, x, y float64) Result
}

// Clipboard groups text clipboard operations
type Clipboard interface {
	GetClipboardContent(ctx context.Context) Result
	SetClipboardContent(ctx context.Context, text string) Result
	HasClipboardText(ctx context.Context) Result
	ClearClipboard(ctx context.Context) Result
}

// AutomationProvider is a backend implementing every capability
type AutomationProvider interface {
	Mouse
	Keyboard
	Screen
	Clipboard

	// Name identifies the native backend in use
	Name() string
}
