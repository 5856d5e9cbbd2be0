package x11

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	xgb "github.com/BurntSushi/xgb"
	xproto "github.com/BurntSushi/xgb/xproto"
	xtest "github.com/BurntSushi/xgb/xtest"
	xgbutil "github.com/BurntSushi/xgbutil"
	keybind "github.com/BurntSushi/xgbutil/keybind"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
)

// Client wraps an X11 connection and implements display.Backend
type Client struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	screen  *xproto.ScreenInfo
	display string

	typeDelay time.Duration

	mu    sync.Mutex
	speed int
}

var (
	_ display.Backend          = (*Client)(nil)
	_ display.WindowClassifier = (*Client)(nil)
	_ display.MetricsProvider  = (*Client)(nil)
)

// NewClient creates a new X11 client connection
func NewClient(opts display.OpenOptions) (*Client, error) {
	// xgbutil prints connection diagnostics to stderr
	oldStderr := os.Stderr
	devNull, devErr := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if devErr == nil {
		os.Stderr = devNull
	}

	xu, err := xgbutil.NewConnDisplay(opts.Display)

	if devErr == nil {
		os.Stderr = oldStderr
		_ = devNull.Close()
	}

	if err != nil {
		logger.Error("Failed to connect to X11 display", "display", opts.Display, "error", err)
		return nil, fmt.Errorf("failed to connect to X11 display %q: %w", opts.Display, err)
	}

	if err := xtest.Init(xu.Conn()); err != nil {
		logger.Error("Failed to initialize XTEST extension", "error", err)
		xu.Conn().Close()
		return nil, fmt.Errorf("failed to initialize XTEST extension: %w", err)
	}

	keybind.Initialize(xu)

	speed := opts.MouseSpeed
	if speed <= 0 {
		speed = 100
	}

	return &Client{
		xu:        xu,
		conn:      xu.Conn(),
		screen:    xproto.Setup(xu.Conn()).DefaultScreen(xu.Conn()),
		display:   opts.Display,
		typeDelay: opts.TypeDelay,
		speed:     speed,
	}, nil
}

// Name implements display.Backend
func (c *Client) Name() string {
	return "x11"
}

// Close closes the X11 connection
func (c *Client) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}

// GetScreenDimensions returns the root window size
func (c *Client) GetScreenDimensions(context.Context) (int, int, error) {
	return int(c.screen.WidthInPixels), int(c.screen.HeightInPixels), nil
}

// GetCursorPosition returns the current cursor position
func (c *Client) GetCursorPosition(context.Context) (int, int, error) {
	pointer, err := xproto.QueryPointer(c.conn, c.screen.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query pointer: %w", err)
	}

	return int(pointer.RootX), int(pointer.RootY), nil
}

// SetMouseSpeed sets how many intermediate steps a move takes
func (c *Client) SetMouseSpeed(_ context.Context, speed int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = speed
	return nil
}

// MoveMouse moves the cursor to the specified absolute coordinates. Below
// full speed the pointer glides there in small steps.
func (c *Client) MoveMouse(ctx context.Context, x, y int) error {
	c.mu.Lock()
	speed := c.speed
	c.mu.Unlock()

	if fromX, fromY, err := c.GetCursorPosition(ctx); err == nil {
		if err := display.Glide(ctx, fromX, fromY, x, y, speed, c.warp); err != nil {
			return err
		}
	}

	return c.warp(x, y)
}

func (c *Client) warp(x, y int) error {
	err := xproto.WarpPointerChecked(
		c.conn,
		xproto.WindowNone,
		c.screen.Root,
		0, 0,
		0, 0,
		int16(x), int16(y),
	).Check()
	if err != nil {
		return fmt.Errorf("failed to move mouse: %w", err)
	}

	c.conn.Sync()
	return nil
}

func buttonCode(button display.MouseButton) (byte, error) {
	switch button {
	case display.MouseButtonLeft:
		return 1, nil
	case display.MouseButtonMiddle:
		return 2, nil
	case display.MouseButtonRight:
		return 3, nil
	default:
		return 0, fmt.Errorf("invalid button: %s", button)
	}
}

func (c *Client) fakeButton(code byte, down bool) error {
	event := byte(xproto.ButtonRelease)
	if down {
		event = xproto.ButtonPress
	}
	if err := xtest.FakeInputChecked(c.conn, event, code, 0, c.screen.Root, 0, 0, 0).Check(); err != nil {
		return fmt.Errorf("failed to send button event: %w", err)
	}
	return nil
}

// MouseToggle presses or releases a button
func (c *Client) MouseToggle(_ context.Context, button display.MouseButton, down bool) error {
	code, err := buttonCode(button)
	if err != nil {
		return err
	}
	if err := c.fakeButton(code, down); err != nil {
		return err
	}
	c.conn.Sync()
	return nil
}

// ClickMouse performs clicks at the current cursor position
func (c *Client) ClickMouse(_ context.Context, button display.MouseButton, clicks int) error {
	code, err := buttonCode(button)
	if err != nil {
		return err
	}

	for i := 0; i < clicks; i++ {
		if err := c.fakeButton(code, true); err != nil {
			return err
		}
		time.Sleep(50 * time.Millisecond)

		if err := c.fakeButton(code, false); err != nil {
			return err
		}

		if i < clicks-1 {
			time.Sleep(100 * time.Millisecond)
		}
	}

	c.conn.Sync()
	return nil
}

// ScrollMouse scrolls the mouse wheel.
// Button 4 scrolls up and button 5 scrolls down.
func (c *Client) ScrollMouse(_ context.Context, amount int) error {
	var code byte = 5
	if amount < 0 {
		code = 4
		amount = -amount
	}

	for i := 0; i < amount; i++ {
		if err := c.fakeButton(code, true); err != nil {
			return err
		}
		if err := c.fakeButton(code, false); err != nil {
			return err
		}

		if i < amount-1 {
			time.Sleep(5 * time.Millisecond)
		}
	}

	c.conn.Sync()
	return nil
}
