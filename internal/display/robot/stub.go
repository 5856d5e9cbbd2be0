//go:build !cgo || !(darwin || robotgo)

package robot

import (
	"fmt"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
)

func available() bool { return false }

func open(display.OpenOptions) (display.Backend, error) {
	return nil, fmt.Errorf("robotgo backend not compiled in (needs cgo, and -tags robotgo outside macOS): %w", display.ErrUnsupported)
}
