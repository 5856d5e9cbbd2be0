package virtual

import (
	"context"
	"fmt"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
)

// GetScreenDimensions implements display.Backend
func (d *Desktop) GetScreenDimensions(context.Context) (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("GetScreenDimensions"); err != nil {
		return 0, 0, err
	}
	return d.width, d.height, nil
}

// CaptureRaw implements display.Backend. The synthetic frame is a BGRA
// gradient so channel reordering is observable.
func (d *Desktop) CaptureRaw(_ context.Context, region *display.Rect) (*display.RawImage, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("CaptureRaw"); err != nil {
		return nil, err
	}
	if d.capture != nil {
		return d.capture(region)
	}

	w, h := d.width, d.height
	if region != nil {
		if region.Empty() {
			return nil, fmt.Errorf("empty capture region %s", region)
		}
		w, h = region.Width, region.Height
	}
	return Gradient(w, h, display.OrderBGRA), nil
}

// Gradient builds a w x h raw frame with a horizontal red ramp and a
// vertical green ramp
func Gradient(w, h int, order display.PixelOrder) *display.RawImage {
	stride := w * display.Channels
	pix := make([]byte, stride*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*stride + x*display.Channels
			r := byte(x * 255 / max(w-1, 1))
			g := byte(y * 255 / max(h-1, 1))
			b := byte(128)
			if order == display.OrderBGRA {
				pix[i], pix[i+1], pix[i+2] = b, g, r
			} else {
				pix[i], pix[i+1], pix[i+2] = r, g, b
			}
			// some platforms leave alpha at zero
			pix[i+3] = 0
		}
	}
	return &display.RawImage{Pix: pix, Width: w, Height: h, Stride: stride, Order: order}
}

// ListWindows implements display.Backend
func (d *Desktop) ListWindows(context.Context) ([]display.WindowHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("ListWindows"); err != nil {
		return nil, err
	}
	handles := make([]display.WindowHandle, 0, len(d.windows))
	for _, w := range d.windows {
		handles = append(handles, w.Handle)
	}
	return handles, nil
}

// WindowTitle implements display.Backend
func (d *Desktop) WindowTitle(_ context.Context, h display.WindowHandle) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("WindowTitle"); err != nil {
		return "", err
	}
	w := d.find(h)
	if w == nil {
		return "", fmt.Errorf("no window with handle %#x", int64(h))
	}
	if w.TitleErr != nil {
		return "", w.TitleErr
	}
	return w.Title, nil
}

// WindowClass implements display.WindowClassifier
func (d *Desktop) WindowClass(_ context.Context, h display.WindowHandle) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("WindowClass"); err != nil {
		return "", err
	}
	w := d.find(h)
	if w == nil {
		return "", fmt.Errorf("no window with handle %#x", int64(h))
	}
	return w.Class, nil
}

// WindowRect implements display.Backend
func (d *Desktop) WindowRect(_ context.Context, h display.WindowHandle) (display.Rect, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("WindowRect"); err != nil {
		return display.Rect{}, err
	}
	w := d.find(h)
	if w == nil {
		return display.Rect{}, fmt.Errorf("no window with handle %#x", int64(h))
	}
	if w.RectErr != nil {
		return display.Rect{}, w.RectErr
	}
	return w.Rect, nil
}

// ActiveWindow implements display.Backend
func (d *Desktop) ActiveWindow(context.Context) (display.WindowHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("ActiveWindow"); err != nil {
		return 0, err
	}
	if d.find(d.active) == nil {
		return 0, fmt.Errorf("no foreground window")
	}
	return d.active, nil
}

// FocusWindow implements display.Backend
func (d *Desktop) FocusWindow(_ context.Context, h display.WindowHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("FocusWindow"); err != nil {
		return err
	}
	if d.find(h) == nil {
		return fmt.Errorf("no window with handle %#x", int64(h))
	}
	d.active = h
	return nil
}

// SetWindowRect implements display.Backend
func (d *Desktop) SetWindowRect(_ context.Context, h display.WindowHandle, r display.Rect) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("SetWindowRect"); err != nil {
		return err
	}
	w := d.find(h)
	if w == nil {
		return fmt.Errorf("no window with handle %#x", int64(h))
	}
	if !w.Pinned {
		w.Rect = r
	}
	return nil
}
