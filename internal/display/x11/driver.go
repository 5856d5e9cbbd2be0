package x11

import (
	"os"
	"runtime"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
)

// Driver implements display.Driver for X11
type Driver struct{}

var _ display.Driver = (*Driver)(nil)

// Open connects to the X server
func (d *Driver) Open(opts display.OpenOptions) (display.Backend, error) {
	return NewClient(opts)
}

// Info returns information about the X11 backend
func (d *Driver) Info() display.DriverInfo {
	return display.DriverInfo{
		Name:            "x11",
		Priority:        20,
		SupportsWindows: true,
	}
}

// IsAvailable returns true if an X server is reachable through DISPLAY
func (d *Driver) IsAvailable() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return false
	}
	return os.Getenv("DISPLAY") != ""
}

func init() {
	display.Register(&Driver{})
}
