//go:build windows

package win32

import (
	"context"
	"fmt"
	"unsafe"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
)

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [1]uint32
}

// CaptureRaw copies the primary screen, or a region of the virtual screen,
// into a top-down BGRA buffer
func (b *Backend) CaptureRaw(ctx context.Context, region *display.Rect) (*display.RawImage, error) {
	area := display.Rect{Width: systemMetric(smCxScreen), Height: systemMetric(smCyScreen)}
	if region != nil {
		area = *region
	}
	if area.Empty() {
		return nil, fmt.Errorf("empty capture area %s", area)
	}

	screenDC, _, _ := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, fmt.Errorf("GetDC failed")
	}
	defer procReleaseDC.Call(0, screenDC)

	memDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return nil, fmt.Errorf("CreateCompatibleDC failed")
	}
	defer procDeleteDC.Call(memDC)

	bi := bitmapInfo{Header: bitmapInfoHeader{
		Width:       int32(area.Width),
		Height:      -int32(area.Height),
		Planes:      1,
		BitCount:    32,
		Compression: 0,
	}}
	bi.Header.Size = uint32(unsafe.Sizeof(bi.Header))

	var bits unsafe.Pointer
	bitmap, _, _ := procCreateDIBSection.Call(memDC, uintptr(unsafe.Pointer(&bi)), dibRGBColors, uintptr(unsafe.Pointer(&bits)), 0, 0)
	if bitmap == 0 || bits == nil {
		return nil, fmt.Errorf("CreateDIBSection %dx%d failed", area.Width, area.Height)
	}
	defer procDeleteObject.Call(bitmap)

	old, _, _ := procSelectObject.Call(memDC, bitmap)
	defer procSelectObject.Call(memDC, old)

	ok, _, err := procBitBlt.Call(memDC, 0, 0,
		uintptr(area.Width), uintptr(area.Height),
		screenDC, uintptr(int32(area.X)), uintptr(int32(area.Y)),
		srcCopy|captureBlt)
	if ok == 0 {
		return nil, fmt.Errorf("BitBlt: %w", err)
	}

	stride := area.Width * display.Channels
	pix := make([]byte, stride*area.Height)
	copy(pix, unsafe.Slice((*byte)(bits), len(pix)))

	return &display.RawImage{
		Pix:    pix,
		Width:  area.Width,
		Height: area.Height,
		Stride: stride,
		Order:  display.OrderBGRA,
	}, nil
}
