//go:build cgo && (darwin || robotgo)

package robot

import (
	"context"
	"fmt"
	"image"

	robotgo "github.com/go-vgo/robotgo"
	draw "golang.org/x/image/draw"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
)

// CaptureRaw captures the primary screen or a region as RGBA
func (c *Client) CaptureRaw(ctx context.Context, region *display.Rect) (*display.RawImage, error) {
	var args []int
	if region != nil {
		if region.Empty() {
			return nil, fmt.Errorf("empty capture region %s", region)
		}
		args = []int{region.X, region.Y, region.Width, region.Height}
	}

	img, err := robotgo.CaptureImg(args...)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	if img == nil {
		return nil, fmt.Errorf("failed to capture screen")
	}

	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	return &display.RawImage{
		Pix:    rgba.Pix,
		Width:  b.Dx(),
		Height: b.Dy(),
		Stride: rgba.Stride,
		Order:  display.OrderRGBA,
	}, nil
}

// ListWindows returns the process ids that own a titled window. RobotGo
// addresses windows by owning process.
func (c *Client) ListWindows(ctx context.Context) ([]display.WindowHandle, error) {
	pids, err := robotgo.Pids()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	var handles []display.WindowHandle
	for _, pid := range pids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if robotgo.GetTitle(pid) != "" {
			handles = append(handles, display.WindowHandle(pid))
		}
	}
	return handles, nil
}

func (c *Client) WindowTitle(ctx context.Context, h display.WindowHandle) (string, error) {
	return robotgo.GetTitle(int(h)), nil
}

func (c *Client) WindowRect(ctx context.Context, h display.WindowHandle) (display.Rect, error) {
	x, y, w, hgt := robotgo.GetBounds(int(h))
	return display.Rect{X: x, Y: y, Width: w, Height: hgt}, nil
}

func (c *Client) ActiveWindow(ctx context.Context) (display.WindowHandle, error) {
	pid := robotgo.GetPid()
	if pid <= 0 {
		return 0, fmt.Errorf("no active window")
	}
	return display.WindowHandle(pid), nil
}

func (c *Client) FocusWindow(ctx context.Context, h display.WindowHandle) error {
	if err := robotgo.ActivePid(int(h)); err != nil {
		return fmt.Errorf("failed to activate window %d: %w", h, err)
	}
	return nil
}

// SetWindowRect is not exposed by RobotGo
func (c *Client) SetWindowRect(ctx context.Context, h display.WindowHandle, r display.Rect) error {
	return fmt.Errorf("resize window %d: %w", h, display.ErrUnsupported)
}
