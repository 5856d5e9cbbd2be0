package screenshot

import (
	"image"
	"image/color"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
)

// raster exposes a raw capture as an opaque image.Image in RGB order
// without copying the buffer
type raster struct {
	raw *display.RawImage
}

func (r raster) ColorModel() color.Model {
	return color.RGBAModel
}

func (r raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.raw.Width, r.raw.Height)
}

func (r raster) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(r.Bounds())) {
		return color.RGBA{}
	}
	red, green, blue := r.raw.RGBA(x, y)
	return color.RGBA{R: red, G: green, B: blue, A: 0xff}
}
