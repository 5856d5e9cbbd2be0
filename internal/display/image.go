package display

import "fmt"

// PixelOrder is the channel layout of a raw capture
type PixelOrder int

const (
	OrderRGBA PixelOrder = iota
	OrderBGRA
)

// Channels is the number of bytes per pixel of every raw capture
const Channels = 4

// RawImage is an uncompressed 4-channel capture as returned by a backend
type RawImage struct {
	Pix    []byte
	Width  int
	Height int
	// Stride is the number of bytes between vertically adjacent pixels
	Stride int
	Order  PixelOrder
}

// Validate checks the buffer is large enough for the declared geometry
func (r *RawImage) Validate() error {
	if r == nil {
		return fmt.Errorf("nil capture")
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("invalid capture dimensions %dx%d", r.Width, r.Height)
	}
	if r.Stride < r.Width*Channels {
		return fmt.Errorf("stride %d too small for width %d", r.Stride, r.Width)
	}
	if need := r.Stride*(r.Height-1) + r.Width*Channels; len(r.Pix) < need {
		return fmt.Errorf("capture buffer holds %d bytes, need %d", len(r.Pix), need)
	}
	return nil
}

// RGBA returns the colour of pixel (x, y) with channels reordered to RGB.
// Alpha is not part of the result; captures are treated as opaque.
func (r *RawImage) RGBA(x, y int) (red, green, blue uint8) {
	i := y*r.Stride + x*Channels
	p := r.Pix[i : i+3 : i+3]
	if r.Order == OrderBGRA {
		return p[2], p[1], p[0]
	}
	return p[0], p[1], p[2]
}
