package automation

import (
	"context"
	"fmt"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
	screenshot "github.com/inference-gateway/desktop-mcp/internal/screenshot"
)

// GetScreenSize reports the primary screen size from OS metrics
func (p *Provider) GetScreenSize(ctx context.Context) domain.Result {
	size, err := p.metrics.ScreenSize(ctx)
	if err != nil {
		return backendFailure(ctx, "Failed to get screen size", err)
	}

	return domain.Ok(fmt.Sprintf("Screen size: %dx%d", size.Width, size.Height), size.Map())
}

// GetAllDisplays reports the monitor layout. Geometry of secondary
// monitors is estimated.
func (p *Provider) GetAllDisplays(ctx context.Context) domain.Result {
	info, err := p.metrics.Displays(ctx)
	if err != nil {
		return backendFailure(ctx, "Failed to get display information", err)
	}

	return domain.Ok(fmt.Sprintf("Found %d display(s)", info.MonitorCount), info.Map())
}

// DefaultScreenshotOptions returns capture options from configuration
func (p *Provider) DefaultScreenshotOptions() domain.ScreenshotOptions {
	opts := domain.DefaultScreenshotOptions()
	if p.shots.Format != "" {
		opts.Format = p.shots.Format
	}
	if p.shots.Quality > 0 {
		opts.Quality = p.shots.Quality
	}
	opts.Grayscale = p.shots.Grayscale
	opts.CompressionLevel = p.shots.CompressionLevel
	return opts
}

// GetScreenshot captures the screen or a region and normalizes it. Only a
// capture failure fails the call; normalization problems degrade to the raw
// buffer.
func (p *Provider) GetScreenshot(ctx context.Context, opts domain.ScreenshotOptions) domain.Result {
	if err := screenshot.ValidateOptions(opts); err != nil {
		return invalid(ctx, err)
	}

	var region *display.Rect
	if r := opts.Region; r != nil {
		x, err := p.coordinate("region x", float64(r.X))
		if err != nil {
			return invalid(ctx, err)
		}
		y, err := p.coordinate("region y", float64(r.Y))
		if err != nil {
			return invalid(ctx, err)
		}
		region = &display.Rect{X: x, Y: y, Width: r.Width, Height: r.Height}
	}

	raw, err := p.backend.CaptureRaw(ctx, region)
	if err != nil {
		return backendFailure(ctx, "Failed to capture screenshot", err)
	}
	if raw == nil || len(raw.Pix) == 0 {
		return backendFailure(ctx, "Failed to capture screenshot", display.ErrEmptyCapture)
	}

	out := p.pipeline.Process(ctx, raw, opts)

	width, height := out.Width, out.Height
	if opts.Region != nil {
		width, height = opts.Region.Width, opts.Region.Height
	}

	message := fmt.Sprintf("Screenshot captured (%dx%d %s)", width, height, out.Format)
	if out.Degraded {
		message = fmt.Sprintf("Screenshot captured without processing (%dx%d approx.): %v", width, height, out.Cause)
	}

	res := domain.Ok(message, map[string]any{
		"width":          width,
		"height":         height,
		"format":         out.Format,
		"originalWidth":  out.OriginalWidth,
		"originalHeight": out.OriginalHeight,
		"degraded":       out.Degraded,
	})
	if out.Degraded {
		res.Data["encoding"] = screenshot.EncodingRaw
	}
	res.Screenshot = out.Base64
	res.Encoding = "base64"
	res.Content = []domain.ContentItem{{
		Type:     domain.ContentKindImage,
		Data:     out.Base64,
		MimeType: out.MimeType,
	}}
	return res
}
