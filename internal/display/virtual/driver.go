package virtual

import (
	display "github.com/inference-gateway/desktop-mcp/internal/display"
)

// Driver opens a fresh virtual desktop. It is never auto-detected.
type Driver struct{}

func init() {
	display.Register(&Driver{})
}

// Open implements display.Driver
func (Driver) Open(opts display.OpenOptions) (display.Backend, error) {
	d := New(
		WithWindows(
			&Window{Title: "Terminal", Class: "terminal", Rect: display.Rect{X: 40, Y: 40, Width: 1024, Height: 640}},
			&Window{Title: "Notes - Editor", Class: "editor", Rect: display.Rect{X: 600, Y: 200, Width: 900, Height: 700}},
		),
	)
	if opts.MouseSpeed > 0 {
		d.speed = opts.MouseSpeed
	}
	return d, nil
}

// Info implements display.Driver
func (Driver) Info() display.DriverInfo {
	return display.DriverInfo{
		Name:            "virtual",
		Priority:        100,
		SupportsWindows: true,
		Explicit:        true,
	}
}

// IsAvailable implements display.Driver
func (Driver) IsAvailable() bool {
	return true
}
