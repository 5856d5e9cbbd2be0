package screenshot

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	config "github.com/inference-gateway/desktop-mcp/config"
	display "github.com/inference-gateway/desktop-mcp/internal/display"
	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
	zap "go.uber.org/zap"
	"golang.org/x/image/draw"
)

const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"

	// MimeRaw tags an unprocessed capture returned by the fallback path
	MimeRaw = "application/octet-stream"
	// EncodingRaw describes the payload of a fallback capture
	EncodingRaw = "raw-rgba"
)

// Output is a normalized, encoded capture
type Output struct {
	Base64   string
	MimeType string
	Format   string
	Width    int
	Height   int
	// OriginalWidth and OriginalHeight are the raw capture dimensions
	OriginalWidth  int
	OriginalHeight int
	// Degraded is set when normalization failed and Base64 holds the raw
	// capture buffer
	Degraded bool
	Cause    error
}

// Pipeline normalizes raw captures for consumption by a model
type Pipeline struct {
	maxWidth      int
	fallbackBound int
}

// NewPipeline creates a pipeline from screenshot settings
func NewPipeline(cfg config.ScreenshotConfig) *Pipeline {
	p := &Pipeline{maxWidth: cfg.MaxWidth, fallbackBound: cfg.FallbackBound}
	if p.maxWidth <= 0 {
		p.maxWidth = 1280
	}
	if p.fallbackBound <= 0 {
		p.fallbackBound = 1280
	}
	return p
}

// ValidateOptions checks caller supplied options before anything is captured
func ValidateOptions(opts domain.ScreenshotOptions) error {
	switch strings.ToLower(opts.Format) {
	case FormatJPEG, "jpg", FormatPNG:
	default:
		return fmt.Errorf("unsupported format %q: must be jpeg or png", opts.Format)
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		return fmt.Errorf("quality %d out of range 1-100", opts.Quality)
	}
	if opts.CompressionLevel < 0 || opts.CompressionLevel > 9 {
		return fmt.Errorf("compression level %d out of range 0-9", opts.CompressionLevel)
	}
	if opts.Region != nil && !opts.Region.Valid() {
		return fmt.Errorf("region must have positive width and height, got %dx%d", opts.Region.Width, opts.Region.Height)
	}
	if r := opts.Resize; r != nil {
		if r.Width < 0 || r.Height < 0 {
			return fmt.Errorf("resize dimensions must not be negative")
		}
		if r.Width == 0 && r.Height == 0 {
			return fmt.Errorf("resize requires a width or a height")
		}
		if !validFit(r.Fit) {
			return fmt.Errorf("unknown resize fit %q", r.Fit)
		}
	}
	return nil
}

// Process normalizes and encodes raw. It never fails: when any step errors
// or panics the raw buffer is returned as-is with approximate dimensions.
func (p *Pipeline) Process(ctx context.Context, raw *display.RawImage, opts domain.ScreenshotOptions) *Output {
	out, err := p.safeRun(raw, opts)
	if err == nil {
		return out
	}

	logger.FromContext(ctx).Warn("Screenshot normalization failed, returning raw capture", zap.Error(err))
	return p.fallback(raw, err)
}

func (p *Pipeline) safeRun(raw *display.RawImage, opts domain.ScreenshotOptions) (out *Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("normalization panicked: %v", r)
		}
	}()
	return p.run(raw, opts)
}

func (p *Pipeline) run(raw *display.RawImage, opts domain.ScreenshotOptions) (*Output, error) {
	if err := raw.Validate(); err != nil {
		return nil, err
	}

	var img image.Image = downsample(raster{raw: raw}, p.maxWidth)

	if opts.Grayscale {
		img = toGray(img)
	}

	if opts.Resize != nil {
		b := img.Bounds()
		l, err := computeLayout(b.Dx(), b.Dy(), *opts.Resize)
		if err != nil {
			return nil, err
		}
		img = applyLayout(img, l)
	}

	data, format, mime, err := encode(img, opts)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &Output{
		Base64:         base64.StdEncoding.EncodeToString(data),
		MimeType:       mime,
		Format:         format,
		Width:          b.Dx(),
		Height:         b.Dy(),
		OriginalWidth:  raw.Width,
		OriginalHeight: raw.Height,
	}, nil
}

// downsample scales src to width when it is wider, always yielding an
// opaque *image.RGBA
func downsample(src image.Image, width int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > width {
		h = max(1, h*width/w)
		w = width
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func encode(img image.Image, opts domain.ScreenshotOptions) ([]byte, string, string, error) {
	var buf bytes.Buffer

	if strings.ToLower(opts.Format) == FormatPNG {
		enc := png.Encoder{CompressionLevel: pngCompression(opts.CompressionLevel)}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, "", "", fmt.Errorf("failed to encode PNG: %w", err)
		}
		return buf.Bytes(), FormatPNG, "image/png", nil
	}

	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return nil, "", "", fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), FormatJPEG, "image/jpeg", nil
}

// pngCompression maps a 0-9 level onto the encoder's presets
func pngCompression(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

func (p *Pipeline) fallback(raw *display.RawImage, cause error) *Output {
	out := &Output{
		MimeType: MimeRaw,
		Format:   EncodingRaw,
		Degraded: true,
		Cause:    cause,
	}
	if raw == nil {
		return out
	}

	out.Base64 = base64.StdEncoding.EncodeToString(raw.Pix)
	out.OriginalWidth, out.OriginalHeight = raw.Width, raw.Height
	out.Width, out.Height = bounded(raw.Width, raw.Height, p.fallbackBound)
	return out
}

// bounded scales w x h down so neither side exceeds bound
func bounded(w, h, bound int) (int, int) {
	if w <= 0 || h <= 0 {
		return max(w, 0), max(h, 0)
	}
	longest := max(w, h)
	if longest <= bound {
		return w, h
	}
	return max(1, w*bound/longest), max(1, h*bound/longest)
}
