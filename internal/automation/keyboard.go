package automation

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
)

// TypeText types text at the keyboard focus
func (p *Provider) TypeText(ctx context.Context, text string) domain.Result {
	if text == "" {
		return invalid(ctx, &ValidationError{Field: "text", Value: `""`, Reason: "must not be empty"})
	}

	if err := p.backend.TypeText(ctx, text); err != nil {
		return backendFailure(ctx, "Failed to type text", err)
	}

	n := len([]rune(text))
	return domain.Ok(fmt.Sprintf("Typed %d characters", n), map[string]any{
		"length": n,
	})
}

// PressKey taps a single key
func (p *Provider) PressKey(ctx context.Context, name string) domain.Result {
	k, err := key(name)
	if err != nil {
		return invalid(ctx, err)
	}

	if err := p.backend.KeyTap(ctx, k); err != nil {
		return backendFailure(ctx, "Failed to press key", err)
	}

	return domain.Ok(fmt.Sprintf("Pressed key %s", k), map[string]any{
		"key": k,
	})
}

// PressKeyCombination presses keys in order and releases them in reverse.
// Every key pressed is released even when a later press fails.
func (p *Provider) PressKeyCombination(ctx context.Context, names []string) domain.Result {
	if len(names) == 0 {
		return invalid(ctx, &ValidationError{Field: "keys", Value: "[]", Reason: "at least one key is required"})
	}

	keys := make([]string, 0, len(names))
	for _, n := range names {
		k, err := key(n)
		if err != nil {
			return invalid(ctx, err)
		}
		keys = append(keys, k)
	}

	pressed := make([]string, 0, len(keys))
	var pressErr error
	for _, k := range keys {
		if err := p.backend.KeyToggle(ctx, k, true); err != nil {
			pressErr = fmt.Errorf("press %s: %w", k, err)
			break
		}
		pressed = append(pressed, k)
	}

	var releaseErr error
	for i := len(pressed) - 1; i >= 0; i-- {
		if err := p.backend.KeyToggle(ctx, pressed[i], false); err != nil && releaseErr == nil {
			releaseErr = fmt.Errorf("release %s: %w", pressed[i], err)
		}
	}

	if pressErr != nil {
		return backendFailure(ctx, "Failed to press key combination", pressErr)
	}
	if releaseErr != nil {
		return backendFailure(ctx, "Failed to release key combination", releaseErr)
	}

	combo := strings.Join(keys, "+")
	return domain.Ok(fmt.Sprintf("Pressed key combination %s", combo), map[string]any{
		"keys": keys,
	})
}

// HoldKey presses or releases a key. With state down and a positive
// duration the key is released again after durationMs.
func (p *Provider) HoldKey(ctx context.Context, name, state string, durationMs float64) domain.Result {
	k, err := key(name)
	if err != nil {
		return invalid(ctx, err)
	}

	state = strings.ToLower(state)
	if state != "down" && state != "up" {
		return invalid(ctx, &ValidationError{Field: "state", Value: state, Reason: "must be down or up"})
	}

	if state == "up" {
		if err := p.backend.KeyToggle(ctx, k, false); err != nil {
			return backendFailure(ctx, "Failed to release key", err)
		}
		return domain.Ok(fmt.Sprintf("Released key %s", k), map[string]any{
			"key":   k,
			"state": state,
		})
	}

	if err := p.holdDuration(durationMs); err != nil {
		return invalid(ctx, err)
	}

	if err := p.backend.KeyToggle(ctx, k, true); err != nil {
		return backendFailure(ctx, "Failed to press key", err)
	}

	if durationMs == 0 {
		return domain.Ok(fmt.Sprintf("Pressed key %s", k), map[string]any{
			"key":   k,
			"state": state,
		})
	}

	d := time.Duration(durationMs * float64(time.Millisecond))
	waitErr := wait(ctx, d)
	if err := p.backend.KeyToggle(context.WithoutCancel(ctx), k, false); err != nil {
		return backendFailure(ctx, "Failed to release key after hold", err)
	}
	if waitErr != nil {
		return backendFailure(ctx, "Key hold interrupted", waitErr)
	}

	ms := int(math.Round(durationMs))
	return domain.Ok(fmt.Sprintf("Held key %s for %d ms", k, ms), map[string]any{
		"key":      k,
		"state":    state,
		"duration": ms,
	})
}

// holdDuration checks the press duration of a held key
func (p *Provider) holdDuration(durationMs float64) error {
	if math.IsNaN(durationMs) || math.IsInf(durationMs, 0) || durationMs < 0 {
		return &ValidationError{Field: "duration", Value: durationMs, Reason: "must be a non-negative number of milliseconds"}
	}
	maxHold := float64(p.input.MaxHoldMs)
	if maxHold <= 0 {
		maxHold = 10000
	}
	if durationMs > maxHold {
		return &ValidationError{Field: "duration", Value: durationMs, Reason: fmt.Sprintf("exceeds %.0f ms", maxHold)}
	}
	return nil
}
