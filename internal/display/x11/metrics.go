package x11

import (
	"context"
	"fmt"

	randr "github.com/BurntSushi/xgb/randr"
	ewmh "github.com/BurntSushi/xgbutil/ewmh"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	metrics "github.com/inference-gateway/desktop-mcp/internal/metrics"
)

// Metrics implements display.MetricsProvider using RandR
func (c *Client) Metrics() (metrics.Reader, error) {
	if err := randr.Init(c.conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}
	return &metricsReader{client: c}, nil
}

type metricsReader struct {
	client *Client
}

// Metric implements metrics.Reader
func (m *metricsReader) Metric(_ context.Context, metric metrics.Metric) (int, error) {
	c := m.client

	switch metric {
	case metrics.VirtualLeft, metrics.VirtualTop:
		return 0, nil
	case metrics.VirtualWidth:
		return int(c.screen.WidthInPixels), nil
	case metrics.VirtualHeight:
		return int(c.screen.HeightInPixels), nil
	case metrics.WorkWidth, metrics.WorkHeight:
		areas, err := ewmh.WorkareaGet(c.xu)
		if err != nil || len(areas) == 0 {
			return 0, fmt.Errorf("work area not reported: %v", err)
		}
		if metric == metrics.WorkWidth {
			return int(areas[0].Width), nil
		}
		return int(areas[0].Height), nil
	}

	monitors, primary, err := m.monitors()
	if err != nil {
		return 0, err
	}

	switch metric {
	case metrics.MonitorCount:
		return len(monitors), nil
	case metrics.PrimaryWidth:
		if primary == nil {
			return int(c.screen.WidthInPixels), nil
		}
		return primary.Width, nil
	case metrics.PrimaryHeight:
		if primary == nil {
			return int(c.screen.HeightInPixels), nil
		}
		return primary.Height, nil
	}

	return 0, fmt.Errorf("metric %s not supported", metric)
}

// monitors lists active CRTCs; primary is the CRTC driving the RandR
// primary output, else the first active one
func (m *metricsReader) monitors() ([]display.Rect, *display.Rect, error) {
	c := m.client

	resources, err := randr.GetScreenResources(c.conn, c.screen.Root).Reply()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primaryOutput randr.Output
	if reply, err := randr.GetOutputPrimary(c.conn, c.screen.Root).Reply(); err == nil {
		primaryOutput = reply.Output
	}

	var monitors []display.Rect
	primary := -1
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		for _, out := range info.Outputs {
			if primaryOutput != 0 && out == primaryOutput {
				primary = len(monitors)
			}
		}
		monitors = append(monitors, display.Rect{
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}

	if len(monitors) == 0 {
		return nil, nil, nil
	}
	if primary < 0 {
		primary = 0
	}
	return monitors, &monitors[primary], nil
}
