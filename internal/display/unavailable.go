package display

import (
	"context"
	"fmt"
)

// Unavailable is the backend used when no native backend could be opened.
// Every primitive fails with the initialization error.
type Unavailable struct {
	reason error
}

// NewUnavailable wraps the reason native initialization failed
func NewUnavailable(reason error) *Unavailable {
	if reason == nil {
		reason = fmt.Errorf("no backend")
	}
	return &Unavailable{reason: reason}
}

func (u *Unavailable) err() error {
	return fmt.Errorf("automation backend unavailable: %w", u.reason)
}

func (u *Unavailable) Name() string { return "unavailable" }

func (u *Unavailable) MoveMouse(context.Context, int, int) error                 { return u.err() }
func (u *Unavailable) MouseToggle(context.Context, MouseButton, bool) error      { return u.err() }
func (u *Unavailable) ClickMouse(context.Context, MouseButton, int) error        { return u.err() }
func (u *Unavailable) ScrollMouse(context.Context, int) error                    { return u.err() }
func (u *Unavailable) SetMouseSpeed(context.Context, int) error                  { return u.err() }
func (u *Unavailable) GetCursorPosition(context.Context) (int, int, error)       { return 0, 0, u.err() }
func (u *Unavailable) TypeText(context.Context, string) error                    { return u.err() }
func (u *Unavailable) KeyToggle(context.Context, string, bool) error             { return u.err() }
func (u *Unavailable) KeyTap(context.Context, string) error                      { return u.err() }
func (u *Unavailable) GetScreenDimensions(context.Context) (int, int, error)     { return 0, 0, u.err() }
func (u *Unavailable) CaptureRaw(context.Context, *Rect) (*RawImage, error)      { return nil, u.err() }
func (u *Unavailable) ListWindows(context.Context) ([]WindowHandle, error)       { return nil, u.err() }
func (u *Unavailable) WindowTitle(context.Context, WindowHandle) (string, error) { return "", u.err() }
func (u *Unavailable) WindowRect(context.Context, WindowHandle) (Rect, error)    { return Rect{}, u.err() }
func (u *Unavailable) ActiveWindow(context.Context) (WindowHandle, error)        { return 0, u.err() }
func (u *Unavailable) FocusWindow(context.Context, WindowHandle) error           { return u.err() }
func (u *Unavailable) SetWindowRect(context.Context, WindowHandle, Rect) error   { return u.err() }
func (u *Unavailable) Close() error                                              { return nil }
