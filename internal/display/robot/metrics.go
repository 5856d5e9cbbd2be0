//go:build cgo && (darwin || robotgo)

package robot

import (
	"context"
	"fmt"

	robotgo "github.com/go-vgo/robotgo"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	metrics "github.com/inference-gateway/desktop-mcp/internal/metrics"
)

type metricsReader struct{}

func (metricsReader) Metric(ctx context.Context, m metrics.Metric) (int, error) {
	switch m {
	case metrics.PrimaryWidth, metrics.PrimaryHeight:
		w, h := robotgo.GetScreenSize()
		if m == metrics.PrimaryWidth {
			return w, nil
		}
		return h, nil
	case metrics.MonitorCount:
		return robotgo.DisplaysNum(), nil
	case metrics.VirtualLeft, metrics.VirtualTop, metrics.VirtualWidth, metrics.VirtualHeight:
		v := virtualScreen()
		switch m {
		case metrics.VirtualLeft:
			return v.X, nil
		case metrics.VirtualTop:
			return v.Y, nil
		case metrics.VirtualWidth:
			return v.Width, nil
		default:
			return v.Height, nil
		}
	}
	return 0, fmt.Errorf("%s: %w", m, metrics.ErrUnavailable)
}

// virtualScreen is the bounding box of every display
func virtualScreen() display.Rect {
	var minX, minY, maxX, maxY int
	for i := range robotgo.DisplaysNum() {
		x, y, w, h := robotgo.GetDisplayBounds(i)
		if i == 0 || x < minX {
			minX = x
		}
		if i == 0 || y < minY {
			minY = y
		}
		if i == 0 || x+w > maxX {
			maxX = x + w
		}
		if i == 0 || y+h > maxY {
			maxY = y + h
		}
	}
	return display.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
