package metrics

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
)

var (
	// ErrZeroScreenSize is returned when the primary screen reads as 0 wide or high
	ErrZeroScreenSize = errors.New("screen size reported as zero")
	// ErrNoMonitors is returned when the monitor count reads as zero
	ErrNoMonitors = errors.New("no monitors reported")
)

// Service derives screen size and multi-monitor layout from raw metrics
type Service struct {
	reader Reader
}

// NewService creates a metrics service over reader
func NewService(reader Reader) *Service {
	return &Service{reader: reader}
}

// ScreenSize returns the primary screen size. A zero dimension is an error
// even when the underlying read succeeded.
func (s *Service) ScreenSize(ctx context.Context) (domain.Size, error) {
	w, err := s.reader.Metric(ctx, PrimaryWidth)
	if err != nil {
		return domain.Size{}, fmt.Errorf("read primary width: %w", err)
	}
	h, err := s.reader.Metric(ctx, PrimaryHeight)
	if err != nil {
		return domain.Size{}, fmt.Errorf("read primary height: %w", err)
	}
	if w <= 0 || h <= 0 {
		return domain.Size{}, fmt.Errorf("%w (%dx%d)", ErrZeroScreenSize, w, h)
	}
	return domain.Size{Width: w, Height: h}, nil
}

// Displays builds the monitor layout. Only the primary monitor geometry is
// reported by the OS; a second monitor is assumed to sit to the right of the
// primary and take the rest of the virtual screen. Monitors beyond the
// second carry zeroed geometry.
func (s *Service) Displays(ctx context.Context) (domain.DisplayInfo, error) {
	size, err := s.ScreenSize(ctx)
	if err != nil {
		return domain.DisplayInfo{}, err
	}

	count, err := s.reader.Metric(ctx, MonitorCount)
	if err != nil {
		return domain.DisplayInfo{}, fmt.Errorf("read monitor count: %w", err)
	}
	if count <= 0 {
		return domain.DisplayInfo{}, ErrNoMonitors
	}

	virtual := s.virtualScreen(ctx, size)

	primary := domain.Display{
		Index:    0,
		Width:    size.Width,
		Height:   size.Height,
		Bounds:   domain.Region{Width: size.Width, Height: size.Height},
		WorkArea: s.workArea(ctx, size),
		Primary:  true,
	}

	info := domain.DisplayInfo{
		MonitorCount:   count,
		PrimaryDisplay: primary,
		Monitors:       []domain.Display{primary},
		VirtualScreen:  virtual,
	}

	for i := 1; i < count; i++ {
		d := domain.Display{Index: i, Estimated: true}
		if i == 1 {
			w := virtual.Width - size.Width
			if w < 0 {
				w = 0
			}
			d.Width = w
			d.Height = virtual.Height
			d.Bounds = domain.Region{X: size.Width, Y: 0, Width: w, Height: virtual.Height}
			d.WorkArea = d.Bounds
		}
		info.SecondaryDisplays = append(info.SecondaryDisplays, d)
		info.Monitors = append(info.Monitors, d)
	}

	return info, nil
}

// virtualScreen falls back to the primary bounds when the virtual metrics
// cannot be read
func (s *Service) virtualScreen(ctx context.Context, primary domain.Size) domain.Region {
	region := domain.Region{Width: primary.Width, Height: primary.Height}

	if v, err := s.reader.Metric(ctx, VirtualLeft); err == nil {
		region.X = v
	}
	if v, err := s.reader.Metric(ctx, VirtualTop); err == nil {
		region.Y = v
	}
	if v, err := s.reader.Metric(ctx, VirtualWidth); err == nil && v > 0 {
		region.Width = v
	}
	if v, err := s.reader.Metric(ctx, VirtualHeight); err == nil && v > 0 {
		region.Height = v
	}

	return region
}

func (s *Service) workArea(ctx context.Context, primary domain.Size) domain.Region {
	area := domain.Region{Width: primary.Width, Height: primary.Height}

	w, werr := s.reader.Metric(ctx, WorkWidth)
	h, herr := s.reader.Metric(ctx, WorkHeight)
	if werr == nil && herr == nil && w > 0 && h > 0 {
		area.Width = w
		area.Height = h
	}

	return area
}
