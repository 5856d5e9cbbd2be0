//go:build windows

package win32

import (
	"context"
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	windows "golang.org/x/sys/windows"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
)

// NewCallback slots are never freed. One shared enumeration callback fills
// enumHandles while enumMu is held.
var (
	enumOnce    sync.Once
	enumProc    uintptr
	enumMu      sync.Mutex
	enumHandles []display.WindowHandle
)

func enumWindowsProc() uintptr {
	enumOnce.Do(func() {
		enumProc = windows.NewCallback(func(hwnd syscall.Handle, _ uintptr) uintptr {
			if visible, _, _ := procIsWindowVisible.Call(uintptr(hwnd)); visible != 0 {
				enumHandles = append(enumHandles, display.WindowHandle(hwnd))
			}
			return 1
		})
	})
	return enumProc
}

// ListWindows enumerates visible top-level windows in z-order
func (b *Backend) ListWindows(ctx context.Context) ([]display.WindowHandle, error) {
	cb := enumWindowsProc()

	enumMu.Lock()
	defer enumMu.Unlock()

	enumHandles = nil
	r, _, err := procEnumWindows.Call(cb, 0)
	handles := enumHandles
	enumHandles = nil
	if r == 0 {
		return nil, fmt.Errorf("EnumWindows: %w", err)
	}
	return handles, nil
}

func (b *Backend) WindowTitle(ctx context.Context, h display.WindowHandle) (string, error) {
	if err := validWindow(h); err != nil {
		return "", err
	}

	n, _, _ := procGetWindowTextLengthW.Call(uintptr(h))
	if n == 0 {
		return "", nil
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf), nil
}

func (b *Backend) WindowClass(ctx context.Context, h display.WindowHandle) (string, error) {
	buf := make([]uint16, 256)
	n, _, err := procGetClassNameW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return "", fmt.Errorf("GetClassNameW(%#x): %w", h, err)
	}
	return windows.UTF16ToString(buf[:n]), nil
}

func (b *Backend) WindowRect(ctx context.Context, h display.WindowHandle) (display.Rect, error) {
	var r rect
	ok, _, err := procGetWindowRect.Call(uintptr(h), uintptr(unsafe.Pointer(&r)))
	if ok == 0 {
		return display.Rect{}, fmt.Errorf("GetWindowRect(%#x): %w", h, err)
	}
	return display.Rect{
		X:      int(r.Left),
		Y:      int(r.Top),
		Width:  int(r.Right - r.Left),
		Height: int(r.Bottom - r.Top),
	}, nil
}

func (b *Backend) ActiveWindow(ctx context.Context) (display.WindowHandle, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return 0, fmt.Errorf("no foreground window")
	}
	return display.WindowHandle(hwnd), nil
}

// FocusWindow restores a minimized window and brings it to the foreground.
// Windows may refuse the foreground change when another process owns input.
func (b *Backend) FocusWindow(ctx context.Context, h display.WindowHandle) error {
	if err := validWindow(h); err != nil {
		return err
	}

	if iconic, _, _ := procIsIconic.Call(uintptr(h)); iconic != 0 {
		procShowWindow.Call(uintptr(h), swRestore)
	}

	r, _, err := procSetForegroundWindow.Call(uintptr(h))
	if r == 0 {
		return fmt.Errorf("SetForegroundWindow(%#x): %w", h, err)
	}
	return nil
}

func (b *Backend) SetWindowRect(ctx context.Context, h display.WindowHandle, r display.Rect) error {
	if err := validWindow(h); err != nil {
		return err
	}

	ok, _, err := procSetWindowPos.Call(
		uintptr(h), 0,
		uintptr(int32(r.X)), uintptr(int32(r.Y)),
		uintptr(int32(r.Width)), uintptr(int32(r.Height)),
		swpNoZOrder|swpNoActivate,
	)
	if ok == 0 {
		return fmt.Errorf("SetWindowPos(%#x, %s): %w", h, r, err)
	}
	return nil
}

func validWindow(h display.WindowHandle) error {
	if ok, _, _ := procIsWindow.Call(uintptr(h)); ok == 0 {
		return fmt.Errorf("invalid window handle %#x", h)
	}
	return nil
}
