package win32

import (
	"runtime"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
)

// Driver opens the native Windows backend
type Driver struct{}

func init() {
	display.Register(&Driver{})
}

// Info returns the driver registration metadata
func (d *Driver) Info() display.DriverInfo {
	return display.DriverInfo{
		Name:            "win32",
		Priority:        10,
		SupportsWindows: true,
	}
}

// IsAvailable reports whether the process runs on Windows
func (d *Driver) IsAvailable() bool {
	return runtime.GOOS == "windows"
}

// Open creates a Win32 backend
func (d *Driver) Open(opts display.OpenOptions) (display.Backend, error) {
	return open(opts)
}
