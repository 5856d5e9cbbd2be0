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

// ValidationError reports a rejected argument before any backend call
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (p *Provider) maxCoordinate() float64 {
	if p.input.MaxCoordinate > 0 {
		return float64(p.input.MaxCoordinate)
	}
	return 10000
}

// coordinate checks a single axis value against the sanity bound
func (p *Provider) coordinate(field string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: field, Value: v, Reason: "must be a finite number"}
	}
	limit := p.maxCoordinate()
	if v < -limit || v > limit {
		return 0, &ValidationError{Field: field, Value: v, Reason: fmt.Sprintf("must be within ±%.0f", limit)}
	}
	return int(math.Round(v)), nil
}

// position validates a point, including live screen bounds when the screen
// size can be read
func (p *Provider) position(ctx context.Context, prefix string, pt domain.Point) (domain.Position, error) {
	x, err := p.coordinate(prefix+"x", pt.X)
	if err != nil {
		return domain.Position{}, err
	}
	y, err := p.coordinate(prefix+"y", pt.Y)
	if err != nil {
		return domain.Position{}, err
	}

	size, ok := p.screenBounds(ctx)
	if !ok {
		return domain.Position{X: x, Y: y}, nil
	}
	if x < 0 || x >= size.Width {
		return domain.Position{}, &ValidationError{Field: prefix + "x", Value: x, Reason: fmt.Sprintf("outside screen width %d", size.Width)}
	}
	if y < 0 || y >= size.Height {
		return domain.Position{}, &ValidationError{Field: prefix + "y", Value: y, Reason: fmt.Sprintf("outside screen height %d", size.Height)}
	}
	return domain.Position{X: x, Y: y}, nil
}

// screenBounds prefers OS metrics and falls back to the backend; when
// neither answers the bounds check is skipped
func (p *Provider) screenBounds(ctx context.Context) (domain.Size, bool) {
	size, err := p.metrics.ScreenSize(ctx)
	if err == nil {
		return size, true
	}

	w, h, berr := p.backend.GetScreenDimensions(ctx)
	if berr == nil && w > 0 && h > 0 {
		return domain.Size{Width: w, Height: h}, true
	}

	logger.FromContext(ctx).Warn("Screen size unavailable, skipping bounds check",
		zap.Error(err), zap.NamedError("backend_error", berr))
	return domain.Size{}, false
}

func button(name string) (display.MouseButton, error) {
	if name == "" {
		return display.MouseButtonLeft, nil
	}
	b, err := display.ParseMouseButton(name)
	if err != nil {
		return b, &ValidationError{Field: "button", Value: name, Reason: "must be left, right or middle"}
	}
	return b, nil
}

func key(name string) (string, error) {
	k, err := domain.NormalizeKey(name)
	if err != nil {
		return "", &ValidationError{Field: "key", Value: fmt.Sprintf("%q", name), Reason: err.Error()}
	}
	return k, nil
}

func invalid(ctx context.Context, err error) domain.Result {
	logger.FromContext(ctx).Debug("Rejected input", zap.Error(err))
	return domain.Fail("Invalid input", err)
}

func backendFailure(ctx context.Context, message string, err error) domain.Result {
	logger.FromContext(ctx).Warn(message, zap.Error(err))
	return domain.Fail(message, err)
}
