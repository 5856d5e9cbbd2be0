package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
	windowing "github.com/inference-gateway/desktop-mcp/internal/windowing"
	zap "go.uber.org/zap"
)

const degradedGeometryNote = " (window geometry unavailable, using fallback size)"

// describe builds a fresh descriptor for a native window
func (p *Provider) describe(ctx context.Context, h display.WindowHandle, title string, rect display.Rect, foreground display.WindowHandle) domain.WindowDescriptor {
	open := true
	w := domain.WindowDescriptor{
		Title:        title,
		Handle:       int64(h),
		Position:     domain.Position{X: rect.X, Y: rect.Y},
		Size:         domain.Size{Width: rect.Width, Height: rect.Height},
		IsForeground: foreground != 0 && h == foreground,
		IsOpen:       &open,
	}

	if c, ok := p.backend.(display.WindowClassifier); ok {
		if class, err := c.WindowClass(ctx, h); err == nil {
			w.ClassName = class
		}
	}

	return w
}

func (p *Provider) foreground(ctx context.Context) display.WindowHandle {
	h, err := p.backend.ActiveWindow(ctx)
	if err != nil {
		logger.FromContext(ctx).Debug("Foreground window unavailable", zap.Error(err))
		return 0
	}
	return h
}

// ListWindows enumerates all top-level windows, titled or not
func (p *Provider) ListWindows(ctx context.Context) domain.Result {
	handles, err := p.backend.ListWindows(ctx)
	if err != nil {
		return backendFailure(ctx, "Failed to list windows", err)
	}

	fg := p.foreground(ctx)
	windows := make([]map[string]any, 0, len(handles))
	for _, h := range handles {
		title, err := p.backend.WindowTitle(ctx, h)
		if err != nil {
			title = ""
		}
		rect, err := p.backend.WindowRect(ctx, h)
		if err != nil {
			rect = display.Rect{}
		}
		windows = append(windows, p.describe(ctx, h, title, rect, fg).Map())
	}

	return domain.Ok(fmt.Sprintf("Found %d windows", len(windows)), map[string]any{
		"windows": windows,
	})
}

// GetActiveWindow reports the window the user is most plausibly working in.
// When nothing can be resolved an Unknown placeholder is reported.
func (p *Provider) GetActiveWindow(ctx context.Context) domain.Result {
	fg := p.foreground(ctx)

	m, err := p.resolver.FindActive(ctx, fg)
	if err != nil {
		logger.FromContext(ctx).Debug("No active window resolved", zap.Error(err))
		return domain.Ok("No active window found", domain.UnknownWindow().Map())
	}

	w := p.describe(ctx, m.Handle, m.Title, m.Rect, fg)
	message := fmt.Sprintf("Active window: %s", w.Title)
	if m.Degraded {
		message += degradedGeometryNote
	}
	return domain.Ok(message, w.Map())
}

// FocusWindow brings the window best matching title to the foreground and
// makes it the provider's current window
func (p *Provider) FocusWindow(ctx context.Context, title string) domain.Result {
	if strings.TrimSpace(title) == "" {
		return invalid(ctx, &ValidationError{Field: "title", Value: `""`, Reason: "must not be empty"})
	}

	m, res, ok := p.resolve(ctx, title)
	if !ok {
		return res
	}

	if err := p.backend.FocusWindow(ctx, m.Handle); err != nil {
		return backendFailure(ctx, fmt.Sprintf("Failed to focus window %q", m.Title), err)
	}

	w := p.describe(ctx, m.Handle, m.Title, m.Rect, p.foreground(ctx))
	p.setCurrent(w)

	message := fmt.Sprintf("Focused window: %s", w.Title)
	if m.Degraded {
		message += degradedGeometryNote
	}
	return domain.Ok(message, w.Map())
}

// ResizeWindow changes a window's size, keeping its position
func (p *Provider) ResizeWindow(ctx context.Context, title string, width, height float64) domain.Result {
	w, err := p.dimension("width", width)
	if err != nil {
		return invalid(ctx, err)
	}
	h, err := p.dimension("height", height)
	if err != nil {
		return invalid(ctx, err)
	}

	return p.updateGeometry(ctx, title, "Resized", func(cur display.Rect) display.Rect {
		cur.Width, cur.Height = w, h
		return cur
	}, domain.Size{Width: w, Height: h}.Map())
}

// RepositionWindow moves a window, keeping its size
func (p *Provider) RepositionWindow(ctx context.Context, title string, x, y float64) domain.Result {
	nx, err := p.coordinate("x", x)
	if err != nil {
		return invalid(ctx, err)
	}
	ny, err := p.coordinate("y", y)
	if err != nil {
		return invalid(ctx, err)
	}

	return p.updateGeometry(ctx, title, "Repositioned", func(cur display.Rect) display.Rect {
		cur.X, cur.Y = nx, ny
		return cur
	}, domain.Position{X: nx, Y: ny}.Map())
}

// updateGeometry resolves and focuses the window, merges the change over its
// current rect, applies it, waits for the window manager to settle and reads
// back the resulting geometry
func (p *Provider) updateGeometry(ctx context.Context, title, verb string, merge func(display.Rect) display.Rect, requested map[string]any) domain.Result {
	if strings.TrimSpace(title) == "" {
		return invalid(ctx, &ValidationError{Field: "title", Value: `""`, Reason: "must not be empty"})
	}

	m, res, ok := p.resolve(ctx, title)
	if !ok {
		return res
	}
	log := logger.FromContext(ctx).With(zap.Int64("handle", int64(m.Handle)), zap.String("title", m.Title))

	if err := p.backend.FocusWindow(ctx, m.Handle); err != nil {
		log.Warn("Failed to focus window before changing geometry", zap.Error(err))
	}

	current, err := p.backend.WindowRect(ctx, m.Handle)
	if err != nil {
		log.Debug("Current window geometry unavailable", zap.Error(err))
		current = display.Rect{}
	}

	target := merge(current)
	if err := p.backend.SetWindowRect(ctx, m.Handle, target); err != nil {
		return backendFailure(ctx, fmt.Sprintf("Failed to update window %q", m.Title), err)
	}

	if err := wait(ctx, time.Duration(p.window.SettleDelayMs)*time.Millisecond); err != nil {
		return backendFailure(ctx, "Window update interrupted", err)
	}

	actual, err := p.backend.WindowRect(ctx, m.Handle)
	if err != nil {
		log.Debug("Could not re-read window geometry, reporting requested values", zap.Error(err))
		actual = target
	}

	w := p.describe(ctx, m.Handle, m.Title, actual, p.foreground(ctx))
	p.setCurrent(w)

	data := w.Map()
	data["requested"] = requested

	message := fmt.Sprintf("%s window %s to %dx%d at (%d, %d)", verb, w.Title, actual.Width, actual.Height, actual.X, actual.Y)
	if actual != target {
		message += fmt.Sprintf(" (requested %dx%d at (%d, %d))", target.Width, target.Height, target.X, target.Y)
	}
	return domain.Ok(message, data)
}

// resolve runs the resolution engine and turns misses into failure results
func (p *Provider) resolve(ctx context.Context, title string) (*windowing.Match, domain.Result, bool) {
	m, err := p.resolver.Find(ctx, title)
	if err == nil {
		return m, domain.Result{}, true
	}

	var nf *windowing.NotFoundError
	switch {
	case errors.As(err, &nf), errors.Is(err, windowing.ErrNoWindows), errors.Is(err, windowing.ErrNoTitledWindows):
		logger.FromContext(ctx).Debug("Window not found", zap.String("title", title), zap.Error(err))
		return nil, domain.Fail(fmt.Sprintf("No window found matching %q", title), err), false
	default:
		return nil, backendFailure(ctx, fmt.Sprintf("Failed to look up window %q", title), err), false
	}
}

func (p *Provider) dimension(field string, v float64) (int, error) {
	n, err := p.coordinate(field, v)
	if err != nil {
		return 0, err
	}
	if n <= 0 || math.IsNaN(v) {
		return 0, &ValidationError{Field: field, Value: v, Reason: "must be positive"}
	}
	return n, nil
}
