//go:build windows

package win32

import (
	"context"
	"fmt"

	metrics "github.com/inference-gateway/desktop-mcp/internal/metrics"
)

var systemMetricIndex = map[metrics.Metric]int{
	metrics.PrimaryWidth:  smCxScreen,
	metrics.PrimaryHeight: smCyScreen,
	metrics.MonitorCount:  smCMonitors,
	metrics.VirtualLeft:   smXVirtualScreen,
	metrics.VirtualTop:    smYVirtualScreen,
	metrics.VirtualWidth:  smCxVirtualScreen,
	metrics.VirtualHeight: smCyVirtualScreen,
	metrics.WorkWidth:     smCxFullScreen,
	metrics.WorkHeight:    smCyFullScreen,
}

type metricsReader struct{}

// NewMetricsReader returns a reader backed by GetSystemMetrics
func NewMetricsReader() (metrics.Reader, error) {
	if err := procGetSystemMetrics.Find(); err != nil {
		return nil, fmt.Errorf("GetSystemMetrics: %w", err)
	}
	return metricsReader{}, nil
}

func (metricsReader) Metric(ctx context.Context, m metrics.Metric) (int, error) {
	idx, ok := systemMetricIndex[m]
	if !ok {
		return 0, fmt.Errorf("%s: %w", m, metrics.ErrUnavailable)
	}
	return systemMetric(idx), nil
}
