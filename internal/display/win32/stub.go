//go:build !windows

package win32

import (
	"fmt"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	metrics "github.com/inference-gateway/desktop-mcp/internal/metrics"
)

func open(display.OpenOptions) (display.Backend, error) {
	return nil, fmt.Errorf("win32 backend: %w", display.ErrUnsupported)
}

// NewMetricsReader reports that system metrics are only readable on Windows
func NewMetricsReader() (metrics.Reader, error) {
	return nil, fmt.Errorf("win32 system metrics: %w", metrics.ErrUnavailable)
}
