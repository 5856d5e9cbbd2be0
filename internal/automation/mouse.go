package automation

import (
	"context"
	"fmt"
	"math"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
	zap "go.uber.org/zap"
)

// MoveMouse moves the cursor to an absolute screen position
func (p *Provider) MoveMouse(ctx context.Context, x, y float64) domain.Result {
	pos, err := p.position(ctx, "", domain.Point{X: x, Y: y})
	if err != nil {
		return invalid(ctx, err)
	}

	if err := p.backend.MoveMouse(ctx, pos.X, pos.Y); err != nil {
		return backendFailure(ctx, "Failed to move mouse", err)
	}

	return domain.Ok(fmt.Sprintf("Mouse moved to (%d, %d)", pos.X, pos.Y), map[string]any{
		"position": pos.Map(),
	})
}

// ClickMouse clicks at the current cursor position
func (p *Provider) ClickMouse(ctx context.Context, name string) domain.Result {
	b, err := button(name)
	if err != nil {
		return invalid(ctx, err)
	}

	if err := p.backend.ClickMouse(ctx, b, 1); err != nil {
		return backendFailure(ctx, "Failed to click mouse", err)
	}

	return domain.Ok(fmt.Sprintf("Clicked %s mouse button", b), map[string]any{
		"button": b.String(),
	})
}

// DoubleClick double-clicks the left button, first moving to at when given
func (p *Provider) DoubleClick(ctx context.Context, at *domain.Point) domain.Result {
	var pos *domain.Position
	if at != nil {
		validated, err := p.position(ctx, "", *at)
		if err != nil {
			return invalid(ctx, err)
		}
		pos = &validated
	}

	if pos != nil {
		if err := p.backend.MoveMouse(ctx, pos.X, pos.Y); err != nil {
			return backendFailure(ctx, "Failed to move mouse", err)
		}
	}

	if err := p.backend.ClickMouse(ctx, display.MouseButtonLeft, 2); err != nil {
		return backendFailure(ctx, "Failed to double-click", err)
	}

	if pos == nil {
		return domain.Ok("Double-clicked at current position", nil)
	}
	return domain.Ok(fmt.Sprintf("Double-clicked at (%d, %d)", pos.X, pos.Y), map[string]any{
		"position": pos.Map(),
	})
}

// DragMouse presses a button at from, moves to to and releases. The button
// is released even when the move fails.
func (p *Provider) DragMouse(ctx context.Context, from, to domain.Point, name string) domain.Result {
	start, err := p.position(ctx, "from", from)
	if err != nil {
		return invalid(ctx, err)
	}
	end, err := p.position(ctx, "to", to)
	if err != nil {
		return invalid(ctx, err)
	}
	b, err := button(name)
	if err != nil {
		return invalid(ctx, err)
	}

	if err := p.backend.MoveMouse(ctx, start.X, start.Y); err != nil {
		return backendFailure(ctx, "Failed to move to drag start", err)
	}
	if err := p.backend.MouseToggle(ctx, b, true); err != nil {
		return backendFailure(ctx, "Failed to press mouse button", err)
	}

	moveErr := p.backend.MoveMouse(ctx, end.X, end.Y)
	upErr := p.backend.MouseToggle(ctx, b, false)
	if moveErr != nil {
		return backendFailure(ctx, "Failed to move to drag end", moveErr)
	}
	if upErr != nil {
		return backendFailure(ctx, "Failed to release mouse button", upErr)
	}

	return domain.Ok(fmt.Sprintf("Dragged from (%d, %d) to (%d, %d)", start.X, start.Y, end.X, end.Y), map[string]any{
		"from":   start.Map(),
		"to":     end.Map(),
		"button": b.String(),
	})
}

// ScrollMouse scrolls vertically; positive amounts scroll down
func (p *Provider) ScrollMouse(ctx context.Context, amount float64) domain.Result {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return invalid(ctx, &ValidationError{Field: "scroll amount", Value: amount, Reason: "must be a finite number"})
	}

	limit := float64(p.input.MaxScroll)
	if limit <= 0 {
		limit = 1000
	}
	if math.Abs(amount) > limit {
		return invalid(ctx, &ValidationError{Field: "scroll amount", Value: amount, Reason: fmt.Sprintf("magnitude exceeds %.0f", limit)})
	}

	steps := int(amount)
	if err := p.backend.ScrollMouse(ctx, steps); err != nil {
		return backendFailure(ctx, "Failed to scroll", err)
	}

	return domain.Ok(fmt.Sprintf("Scrolled by %d", steps), map[string]any{
		"amount": steps,
	})
}

// SetMouseSpeed sets pointer movement speed on a 1 (slow) to 100 (fast) scale
func (p *Provider) SetMouseSpeed(ctx context.Context, speed float64) domain.Result {
	if math.IsNaN(speed) || speed < 1 || speed > 100 {
		return invalid(ctx, &ValidationError{Field: "speed", Value: speed, Reason: "must be between 1 and 100"})
	}

	s := int(math.Round(speed))
	if err := p.backend.SetMouseSpeed(ctx, s); err != nil {
		return backendFailure(ctx, "Failed to set mouse speed", err)
	}

	return domain.Ok(fmt.Sprintf("Mouse speed set to %d", s), map[string]any{
		"speed": s,
	})
}

// GetCursorPosition reports the cursor position
func (p *Provider) GetCursorPosition(ctx context.Context) domain.Result {
	x, y, err := p.backend.GetCursorPosition(ctx)
	if err != nil {
		return backendFailure(ctx, "Failed to get cursor position", err)
	}

	return domain.Ok(fmt.Sprintf("Cursor at (%d, %d)", x, y), map[string]any{
		"x": x,
		"y": y,
	})
}

// ClickAt moves to a position, clicks and puts the cursor back where it was
func (p *Provider) ClickAt(ctx context.Context, x, y float64, name string) domain.Result {
	pos, err := p.position(ctx, "", domain.Point{X: x, Y: y})
	if err != nil {
		return invalid(ctx, err)
	}
	b, err := button(name)
	if err != nil {
		return invalid(ctx, err)
	}

	origX, origY, posErr := p.backend.GetCursorPosition(ctx)
	canRestore := posErr == nil
	if !canRestore {
		logger.FromContext(ctx).Warn("Cursor position unavailable, click will not restore it", zap.Error(posErr))
	}

	restore := func() map[string]any {
		if !canRestore {
			return nil
		}
		if err := p.backend.MoveMouse(ctx, origX, origY); err != nil {
			logger.FromContext(ctx).Warn("Failed to restore cursor position", zap.Error(err))
			return nil
		}
		return domain.Position{X: origX, Y: origY}.Map()
	}

	if err := p.backend.MoveMouse(ctx, pos.X, pos.Y); err != nil {
		restore()
		return backendFailure(ctx, "Failed to move mouse", err)
	}
	if err := p.backend.ClickMouse(ctx, b, 1); err != nil {
		restore()
		return backendFailure(ctx, "Failed to click mouse", err)
	}

	data := map[string]any{
		"position": pos.Map(),
		"button":   b.String(),
	}
	if restored := restore(); restored != nil {
		data["restoredTo"] = restored
	}

	return domain.Ok(fmt.Sprintf("Clicked %s at (%d, %d)", b, pos.X, pos.Y), data)
}
