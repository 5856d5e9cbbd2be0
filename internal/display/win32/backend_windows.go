//go:build windows

package win32

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unsafe"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	metrics "github.com/inference-gateway/desktop-mcp/internal/metrics"
)

// Backend drives the Windows desktop through user32 and gdi32
type Backend struct {
	typeDelay time.Duration

	mu    sync.Mutex
	speed int
}

var (
	_ display.Backend          = (*Backend)(nil)
	_ display.WindowClassifier = (*Backend)(nil)
	_ display.MetricsProvider  = (*Backend)(nil)
)

func open(opts display.OpenOptions) (display.Backend, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("failed to load user32.dll: %w", err)
	}
	enableDPIAwareness()

	speed := opts.MouseSpeed
	if speed <= 0 {
		speed = 100
	}
	return &Backend{typeDelay: opts.TypeDelay, speed: speed}, nil
}

// Name returns the backend identifier
func (b *Backend) Name() string { return "win32" }

// Close releases nothing; DLL handles live for the process
func (b *Backend) Close() error { return nil }

// Metrics returns a GetSystemMetrics reader
func (b *Backend) Metrics() (metrics.Reader, error) {
	return NewMetricsReader()
}

func (b *Backend) MoveMouse(ctx context.Context, x, y int) error {
	b.mu.Lock()
	speed := b.speed
	b.mu.Unlock()

	if fromX, fromY, err := b.GetCursorPosition(ctx); err == nil {
		if err := display.Glide(ctx, fromX, fromY, x, y, speed, setCursor); err != nil {
			return err
		}
	}
	return setCursor(x, y)
}

func setCursor(x, y int) error {
	r, _, err := procSetCursorPos.Call(uintptr(int32(x)), uintptr(int32(y)))
	if r == 0 {
		return fmt.Errorf("SetCursorPos(%d, %d): %w", x, y, err)
	}
	return nil
}

func (b *Backend) GetCursorPosition(ctx context.Context) (int, int, error) {
	var p point
	r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	if r == 0 {
		return 0, 0, fmt.Errorf("GetCursorPos: %w", err)
	}
	return int(p.X), int(p.Y), nil
}

func (b *Backend) SetMouseSpeed(ctx context.Context, speed int) error {
	b.mu.Lock()
	b.speed = speed
	b.mu.Unlock()
	return nil
}

func (b *Backend) MouseToggle(ctx context.Context, button display.MouseButton, down bool) error {
	downFlag, upFlag := buttonFlags(button)
	if down {
		return sendMouse(downFlag, 0)
	}
	return sendMouse(upFlag, 0)
}

func (b *Backend) ClickMouse(ctx context.Context, button display.MouseButton, clicks int) error {
	downFlag, upFlag := buttonFlags(button)
	for i := 0; i < clicks; i++ {
		if err := sendMouse(downFlag, 0); err != nil {
			return err
		}
		if err := sendMouse(upFlag, 0); err != nil {
			return err
		}
		if i < clicks-1 {
			time.Sleep(50 * time.Millisecond)
		}
	}
	return nil
}

// ScrollMouse scrolls by whole wheel notches; positive amounts scroll down
func (b *Backend) ScrollMouse(ctx context.Context, amount int) error {
	if amount == 0 {
		return nil
	}
	return sendMouse(mouseWheel, uint32(int32(-amount*wheelDelta)))
}

func (b *Backend) TypeText(ctx context.Context, text string) error {
	if b.typeDelay <= 0 {
		return sendKeys(unicodeEvents(text))
	}

	for _, r := range text {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sendKeys(unicodeEvents(string(r))); err != nil {
			return err
		}
		time.Sleep(b.typeDelay)
	}
	return nil
}

func (b *Backend) KeyToggle(ctx context.Context, key string, down bool) error {
	vk, err := virtualKey(key)
	if err != nil {
		return err
	}
	return sendKeys([]keyINPUT{keyEvent(vk, !down)})
}

func (b *Backend) KeyTap(ctx context.Context, key string) error {
	vk, err := virtualKey(key)
	if err != nil {
		return err
	}
	return sendKeys([]keyINPUT{keyEvent(vk, false), keyEvent(vk, true)})
}

func (b *Backend) GetScreenDimensions(ctx context.Context) (int, int, error) {
	w, h := systemMetric(smCxScreen), systemMetric(smCyScreen)
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("GetSystemMetrics returned %dx%d", w, h)
	}
	return w, h, nil
}
