package robot

import (
	display "github.com/inference-gateway/desktop-mcp/internal/display"
)

// Driver opens the cross-platform robotgo backend
type Driver struct{}

var _ display.Driver = (*Driver)(nil)

func init() {
	display.Register(&Driver{})
}

// Info returns the driver registration metadata
func (d *Driver) Info() display.DriverInfo {
	return display.DriverInfo{
		Name:     "robotgo",
		Priority: 30,
	}
}

// IsAvailable reports whether robotgo support was compiled in (cgo on macOS,
// or the robotgo build tag elsewhere) and a desktop session is reachable
func (d *Driver) IsAvailable() bool {
	return available()
}

// Open creates a robotgo backend
func (d *Driver) Open(opts display.OpenOptions) (display.Backend, error) {
	return open(opts)
}
