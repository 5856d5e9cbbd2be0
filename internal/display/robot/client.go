//go:build cgo && (darwin || robotgo)

package robot

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	robotgo "github.com/go-vgo/robotgo"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	metrics "github.com/inference-gateway/desktop-mcp/internal/metrics"
)

// Client provides screen control through RobotGo
type Client struct {
	typeDelay time.Duration

	mu    sync.Mutex
	speed int
}

var (
	_ display.Backend         = (*Client)(nil)
	_ display.MetricsProvider = (*Client)(nil)
)

func available() bool {
	if runtime.GOOS == "linux" || runtime.GOOS == "freebsd" {
		return os.Getenv("DISPLAY") != ""
	}
	return true
}

func open(opts display.OpenOptions) (display.Backend, error) {
	if w, h := robotgo.GetScreenSize(); w <= 0 || h <= 0 {
		return nil, fmt.Errorf("robotgo reported screen size %dx%d", w, h)
	}

	speed := opts.MouseSpeed
	if speed <= 0 {
		speed = 100
	}
	robotgo.MouseSleep = 0

	return &Client{typeDelay: opts.TypeDelay, speed: speed}, nil
}

// Name returns the backend identifier
func (c *Client) Name() string { return "robotgo" }

// Close is a no-op for RobotGo
func (c *Client) Close() error { return nil }

// Metrics returns a reader over the displays RobotGo can enumerate
func (c *Client) Metrics() (metrics.Reader, error) {
	return metricsReader{}, nil
}

func (c *Client) GetScreenDimensions(ctx context.Context) (int, int, error) {
	w, h := robotgo.GetScreenSize()
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("robotgo reported screen size %dx%d", w, h)
	}
	return w, h, nil
}

func (c *Client) GetCursorPosition(ctx context.Context) (int, int, error) {
	x, y := robotgo.Location()
	return x, y, nil
}

// MoveMouse moves the cursor to the specified coordinates, gliding there
// below full speed
func (c *Client) MoveMouse(ctx context.Context, x, y int) error {
	c.mu.Lock()
	speed := c.speed
	c.mu.Unlock()

	fromX, fromY := robotgo.Location()
	if err := display.Glide(ctx, fromX, fromY, x, y, speed, warp); err != nil {
		return err
	}
	return warp(x, y)
}

func warp(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (c *Client) SetMouseSpeed(ctx context.Context, speed int) error {
	c.mu.Lock()
	c.speed = speed
	c.mu.Unlock()
	return nil
}

func buttonName(button display.MouseButton) string {
	if button == display.MouseButtonMiddle {
		return "center"
	}
	return button.String()
}

func (c *Client) MouseToggle(ctx context.Context, button display.MouseButton, down bool) error {
	state := "up"
	if down {
		state = "down"
	}
	if err := robotgo.Toggle(buttonName(button), state); err != nil {
		return fmt.Errorf("failed to toggle %s button: %w", button, err)
	}
	return nil
}

// ClickMouse clicks the specified mouse button
func (c *Client) ClickMouse(ctx context.Context, button display.MouseButton, clicks int) error {
	for i := range clicks {
		if i > 0 {
			time.Sleep(100 * time.Millisecond)
		}
		robotgo.Click(buttonName(button), false)
	}
	return nil
}

// ScrollMouse scrolls the mouse wheel; positive amounts scroll down
func (c *Client) ScrollMouse(ctx context.Context, amount int) error {
	if amount == 0 {
		return nil
	}

	dir := "down"
	if amount < 0 {
		dir = "up"
		amount = -amount
	}
	robotgo.ScrollDir(amount, dir)
	return nil
}

// TypeText types the specified text with delay between characters
func (c *Client) TypeText(ctx context.Context, text string) error {
	if c.typeDelay <= 0 {
		robotgo.Type(text)
		return nil
	}

	for _, char := range text {
		if err := ctx.Err(); err != nil {
			return err
		}
		robotgo.Type(string(char))
		time.Sleep(c.typeDelay)
	}
	return nil
}

func (c *Client) KeyToggle(ctx context.Context, key string, down bool) error {
	state := "up"
	if down {
		state = "down"
	}
	if err := robotgo.KeyToggle(keyName(key), state); err != nil {
		return fmt.Errorf("failed to toggle key %s: %w", key, err)
	}
	return nil
}

func (c *Client) KeyTap(ctx context.Context, key string) error {
	if err := robotgo.KeyTap(keyName(key)); err != nil {
		return fmt.Errorf("failed to tap key %s: %w", key, err)
	}
	return nil
}
