package metrics

import (
	"context"
	"errors"
	"fmt"
)

// Metric identifies one OS display metric
type Metric int

const (
	PrimaryWidth Metric = iota
	PrimaryHeight
	MonitorCount
	VirtualLeft
	VirtualTop
	VirtualWidth
	VirtualHeight
	// WorkWidth and WorkHeight may read as zero when the OS does not report
	// a work area; the primary size is used instead.
	WorkWidth
	WorkHeight
)

// String returns the metric name
func (m Metric) String() string {
	switch m {
	case PrimaryWidth:
		return "primary_width"
	case PrimaryHeight:
		return "primary_height"
	case MonitorCount:
		return "monitor_count"
	case VirtualLeft:
		return "virtual_left"
	case VirtualTop:
		return "virtual_top"
	case VirtualWidth:
		return "virtual_width"
	case VirtualHeight:
		return "virtual_height"
	case WorkWidth:
		return "work_width"
	case WorkHeight:
		return "work_height"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// ErrUnavailable is returned by readers that cannot reach the OS
var ErrUnavailable = errors.New("display metrics unavailable")

// Reader reads raw OS display metrics
type Reader interface {
	Metric(ctx context.Context, m Metric) (int, error)
}

// Unavailable is the reader used when native initialization failed
type Unavailable struct {
	Reason error
}

// NewUnavailable returns a reader that always fails with reason
func NewUnavailable(reason error) *Unavailable {
	return &Unavailable{Reason: reason}
}

// Metric implements Reader
func (u *Unavailable) Metric(context.Context, Metric) (int, error) {
	if u.Reason == nil {
		return 0, ErrUnavailable
	}
	return 0, fmt.Errorf("%w: %v", ErrUnavailable, u.Reason)
}

// Static is a reader over a fixed table, for backends whose metrics are
// computed once at startup
type Static map[Metric]int

// Metric implements Reader
func (s Static) Metric(_ context.Context, m Metric) (int, error) {
	v, ok := s[m]
	if !ok {
		return 0, fmt.Errorf("metric %s not reported", m)
	}
	return v, nil
}
