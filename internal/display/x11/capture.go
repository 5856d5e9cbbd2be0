package x11

import (
	"context"
	"fmt"

	xproto "github.com/BurntSushi/xgb/xproto"
	xgraphics "github.com/BurntSushi/xgbutil/xgraphics"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
)

// CaptureRaw grabs the root window, or a region of it, as BGRA
func (c *Client) CaptureRaw(_ context.Context, region *display.Rect) (*display.RawImage, error) {
	ximg, err := xgraphics.NewDrawable(c.xu, xproto.Drawable(c.screen.Root))
	if err != nil {
		return nil, fmt.Errorf("failed to capture root window: %w", err)
	}

	b := ximg.Bounds()
	full := display.Rect{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}
	if region == nil {
		return &display.RawImage{
			Pix:    ximg.Pix,
			Width:  full.Width,
			Height: full.Height,
			Stride: ximg.Stride,
			Order:  display.OrderBGRA,
		}, nil
	}

	r, ok := intersect(*region, full)
	if !ok {
		return nil, fmt.Errorf("capture region %s is outside the screen", region)
	}

	stride := r.Width * display.Channels
	pix := make([]byte, stride*r.Height)
	for row := 0; row < r.Height; row++ {
		src := (r.Y+row-b.Min.Y)*ximg.Stride + (r.X-b.Min.X)*display.Channels
		copy(pix[row*stride:(row+1)*stride], ximg.Pix[src:src+stride])
	}

	return &display.RawImage{
		Pix:    pix,
		Width:  r.Width,
		Height: r.Height,
		Stride: stride,
		Order:  display.OrderBGRA,
	}, nil
}

func intersect(a, b display.Rect) (display.Rect, bool) {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.X+a.Width, b.X+b.Width), min(a.Y+a.Height, b.Y+b.Height)
	if x1 <= x0 || y1 <= y0 {
		return display.Rect{}, false
	}
	return display.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}
