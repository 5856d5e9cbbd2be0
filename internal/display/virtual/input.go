package virtual

import (
	"context"
	"fmt"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
)

// MoveMouse implements display.Backend
func (d *Desktop) MoveMouse(_ context.Context, x, y int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("MoveMouse"); err != nil {
		return err
	}
	d.cursorX, d.cursorY = x, y
	d.events = append(d.events, fmt.Sprintf("move %d,%d", x, y))
	return nil
}

// MouseToggle implements display.Backend
func (d *Desktop) MouseToggle(_ context.Context, button display.MouseButton, down bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("MouseToggle"); err != nil {
		return err
	}
	d.buttons[button] = down
	d.events = append(d.events, fmt.Sprintf("button %s %s", button, upDown(down)))
	return nil
}

// ClickMouse implements display.Backend
func (d *Desktop) ClickMouse(_ context.Context, button display.MouseButton, clicks int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("ClickMouse"); err != nil {
		return err
	}
	d.events = append(d.events, fmt.Sprintf("click %s x%d at %d,%d", button, clicks, d.cursorX, d.cursorY))
	return nil
}

// ScrollMouse implements display.Backend
func (d *Desktop) ScrollMouse(_ context.Context, amount int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("ScrollMouse"); err != nil {
		return err
	}
	d.scrolled += amount
	d.events = append(d.events, fmt.Sprintf("scroll %d", amount))
	return nil
}

// SetMouseSpeed implements display.Backend
func (d *Desktop) SetMouseSpeed(_ context.Context, speed int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("SetMouseSpeed"); err != nil {
		return err
	}
	d.speed = speed
	return nil
}

// GetCursorPosition implements display.Backend
func (d *Desktop) GetCursorPosition(context.Context) (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("GetCursorPosition"); err != nil {
		return 0, 0, err
	}
	return d.cursorX, d.cursorY, nil
}

// TypeText implements display.Backend
func (d *Desktop) TypeText(_ context.Context, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("TypeText"); err != nil {
		return err
	}
	d.typed.WriteString(text)
	return nil
}

// KeyToggle implements display.Backend
func (d *Desktop) KeyToggle(_ context.Context, key string, down bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("KeyToggle"); err != nil {
		return err
	}
	d.keys[key] = down
	d.events = append(d.events, fmt.Sprintf("key %s %s", key, upDown(down)))
	return nil
}

// KeyTap implements display.Backend
func (d *Desktop) KeyTap(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("KeyTap"); err != nil {
		return err
	}
	d.events = append(d.events, "tap "+key)
	return nil
}

func upDown(down bool) string {
	if down {
		return "down"
	}
	return "up"
}
