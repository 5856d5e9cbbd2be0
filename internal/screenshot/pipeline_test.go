package screenshot

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	config "github.com/inference-gateway/desktop-mcp/config"
	display "github.com/inference-gateway/desktop-mcp/internal/display"
	virtual "github.com/inference-gateway/desktop-mcp/internal/display/virtual"
	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPipeline() *Pipeline {
	return NewPipeline(config.DefaultConfig().Screenshot)
}

func decode(t *testing.T, out *Output) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(out.Base64)
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestProcessDownsamplesToMaxWidth(t *testing.T) {
	raw := virtual.Gradient(2560, 1440, display.OrderBGRA)

	out := newPipeline().Process(logger.NopContext(), raw, domain.DefaultScreenshotOptions())

	require.False(t, out.Degraded)
	assert.Equal(t, "image/jpeg", out.MimeType)
	assert.Equal(t, 1280, out.Width)
	assert.Equal(t, 720, out.Height)
	assert.Equal(t, 2560, out.OriginalWidth)

	img := decode(t, out)
	assert.Equal(t, 1280, img.Bounds().Dx())
	assert.Equal(t, 720, img.Bounds().Dy())
}

func TestProcessKeepsSmallCaptures(t *testing.T) {
	raw := virtual.Gradient(300, 200, display.OrderRGBA)

	out := newPipeline().Process(logger.NopContext(), raw, domain.DefaultScreenshotOptions())

	require.False(t, out.Degraded)
	assert.Equal(t, 300, out.Width)
	assert.Equal(t, 200, out.Height)
}

func TestProcessSwapsBGRAAndDropsAlpha(t *testing.T) {
	raw := &display.RawImage{
		Pix:    []byte{0x10, 0x20, 0xF0, 0x00},
		Width:  1,
		Height: 1,
		Stride: 4,
		Order:  display.OrderBGRA,
	}
	opts := domain.DefaultScreenshotOptions()
	opts.Format = FormatPNG
	opts.Grayscale = false

	out := newPipeline().Process(logger.NopContext(), raw, opts)
	require.False(t, out.Degraded)

	data, err := base64.StdEncoding.DecodeString(out.Base64)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xF0), r>>8)
	assert.Equal(t, uint32(0x20), g>>8)
	assert.Equal(t, uint32(0x10), b>>8)
	assert.Equal(t, uint32(0xFF), a>>8, "captures are treated as opaque")
}

func TestProcessGrayscale(t *testing.T) {
	raw := virtual.Gradient(64, 32, display.OrderBGRA)
	opts := domain.DefaultScreenshotOptions()
	opts.Format = FormatPNG

	out := newPipeline().Process(logger.NopContext(), raw, opts)
	require.False(t, out.Degraded)

	img := decode(t, out)
	_, isGray := img.(*image.Gray)
	assert.True(t, isGray)
}

func TestProcessEncodesJPEGQuality(t *testing.T) {
	raw := virtual.Gradient(200, 200, display.OrderBGRA)
	low := domain.DefaultScreenshotOptions()
	low.Quality = 10
	high := domain.DefaultScreenshotOptions()
	high.Quality = 100

	p := newPipeline()
	lowOut := p.Process(logger.NopContext(), raw, low)
	highOut := p.Process(logger.NopContext(), raw, high)

	assert.Less(t, len(lowOut.Base64), len(highOut.Base64))

	data, err := base64.StdEncoding.DecodeString(lowOut.Base64)
	require.NoError(t, err)
	_, err = jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestProcessResizeFits(t *testing.T) {
	tests := []struct {
		name   string
		resize domain.ResizeSpec
		wantW  int
		wantH  int
	}{
		{name: "width only keeps aspect", resize: domain.ResizeSpec{Width: 200}, wantW: 200, wantH: 100},
		{name: "height only keeps aspect", resize: domain.ResizeSpec{Height: 50}, wantW: 100, wantH: 50},
		{name: "fill stretches", resize: domain.ResizeSpec{Width: 100, Height: 100, Fit: domain.FitFill}, wantW: 100, wantH: 100},
		{name: "contain letterboxes", resize: domain.ResizeSpec{Width: 100, Height: 100, Fit: domain.FitContain}, wantW: 100, wantH: 100},
		{name: "cover crops", resize: domain.ResizeSpec{Width: 100, Height: 100, Fit: domain.FitCover}, wantW: 100, wantH: 100},
		{name: "inside shrinks within box", resize: domain.ResizeSpec{Width: 100, Height: 100, Fit: domain.FitInside}, wantW: 100, wantH: 50},
		{name: "outside covers box", resize: domain.ResizeSpec{Width: 100, Height: 100, Fit: domain.FitOutside}, wantW: 200, wantH: 100},
		{name: "default fit is contain", resize: domain.ResizeSpec{Width: 100, Height: 100}, wantW: 100, wantH: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := virtual.Gradient(400, 200, display.OrderBGRA)
			opts := domain.DefaultScreenshotOptions()
			opts.Format = FormatPNG
			resize := tt.resize
			opts.Resize = &resize

			out := newPipeline().Process(logger.NopContext(), raw, opts)

			require.False(t, out.Degraded, "cause: %v", out.Cause)
			assert.Equal(t, tt.wantW, out.Width)
			assert.Equal(t, tt.wantH, out.Height)
			img := decode(t, out)
			assert.Equal(t, tt.wantW, img.Bounds().Dx())
			assert.Equal(t, tt.wantH, img.Bounds().Dy())
		})
	}
}

func TestComputeLayoutContainCentres(t *testing.T) {
	l, err := computeLayout(400, 200, domain.ResizeSpec{Width: 100, Height: 100, Fit: domain.FitContain})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 100, 100), l.canvas)
	assert.Equal(t, image.Rect(0, 25, 100, 75), l.dst)
}

func TestComputeLayoutCoverCropsCentre(t *testing.T) {
	l, err := computeLayout(400, 200, domain.ResizeSpec{Width: 100, Height: 100, Fit: domain.FitCover})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(100, 0, 300, 200), l.src)
}

func TestProcessFallsBackOnInvalidBuffer(t *testing.T) {
	raw := &display.RawImage{
		Pix:    make([]byte, 16),
		Width:  3000,
		Height: 1500,
		Stride: 12000,
		Order:  display.OrderBGRA,
	}
	ctx, logs := logger.TestContext()

	out := newPipeline().Process(ctx, raw, domain.DefaultScreenshotOptions())

	assert.True(t, out.Degraded)
	assert.Equal(t, MimeRaw, out.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw.Pix), out.Base64)
	assert.Equal(t, 1280, out.Width)
	assert.Equal(t, 640, out.Height)
	assert.Equal(t, 1, logs.FilterMessage("Screenshot normalization failed, returning raw capture").Len())
}

func TestProcessFallsBackOnTruncatedBuffer(t *testing.T) {
	raw := virtual.Gradient(10, 10, display.OrderBGRA)
	raw.Pix = raw.Pix[:len(raw.Pix)-1]

	out := newPipeline().Process(context.Background(), raw, domain.DefaultScreenshotOptions())

	assert.True(t, out.Degraded)
	assert.Equal(t, 10, out.Width)
	assert.Equal(t, 10, out.Height)
}

func TestProcessFallbackWithNilCapture(t *testing.T) {
	out := newPipeline().Process(context.Background(), nil, domain.DefaultScreenshotOptions())

	assert.True(t, out.Degraded)
	assert.Empty(t, out.Base64)
}

func TestValidateOptions(t *testing.T) {
	valid := domain.DefaultScreenshotOptions()

	tests := []struct {
		name    string
		mutate  func(o *domain.ScreenshotOptions)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*domain.ScreenshotOptions) {}},
		{name: "png", mutate: func(o *domain.ScreenshotOptions) { o.Format = "png" }},
		{name: "bad format", mutate: func(o *domain.ScreenshotOptions) { o.Format = "gif" }, wantErr: true},
		{name: "quality zero", mutate: func(o *domain.ScreenshotOptions) { o.Quality = 0 }, wantErr: true},
		{name: "compression ten", mutate: func(o *domain.ScreenshotOptions) { o.CompressionLevel = 10 }, wantErr: true},
		{name: "empty region", mutate: func(o *domain.ScreenshotOptions) { o.Region = &domain.Region{Width: 0, Height: 10} }, wantErr: true},
		{name: "empty resize", mutate: func(o *domain.ScreenshotOptions) { o.Resize = &domain.ResizeSpec{} }, wantErr: true},
		{name: "bad fit", mutate: func(o *domain.ScreenshotOptions) { o.Resize = &domain.ResizeSpec{Width: 10, Fit: "stretch"} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.mutate(&opts)
			err := ValidateOptions(opts)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSafeRunReportsLayoutErrors(t *testing.T) {
	raw := virtual.Gradient(4, 4, display.OrderBGRA)
	p := newPipeline()

	out, err := p.safeRun(raw, domain.ScreenshotOptions{
		Format:  FormatJPEG,
		Quality: 80,
		Resize:  &domain.ResizeSpec{Width: 2, Height: 2, Fit: "bogus"},
	})

	assert.Nil(t, out)
	assert.Error(t, err)
}

func TestPNGCompressionMapping(t *testing.T) {
	assert.Equal(t, png.NoCompression, pngCompression(0))
	assert.Equal(t, png.BestSpeed, pngCompression(2))
	assert.Equal(t, png.DefaultCompression, pngCompression(6))
	assert.Equal(t, png.BestCompression, pngCompression(9))
}
