//go:build windows

package win32

import (
	windows "golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procSetCursorPos              = user32.NewProc("SetCursorPos")
	procGetCursorPos              = user32.NewProc("GetCursorPos")
	procSendInput                 = user32.NewProc("SendInput")
	procVkKeyScanW                = user32.NewProc("VkKeyScanW")
	procGetSystemMetrics          = user32.NewProc("GetSystemMetrics")
	procEnumWindows               = user32.NewProc("EnumWindows")
	procIsWindowVisible           = user32.NewProc("IsWindowVisible")
	procIsWindow                  = user32.NewProc("IsWindow")
	procIsIconic                  = user32.NewProc("IsIconic")
	procGetWindowTextW            = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW      = user32.NewProc("GetWindowTextLengthW")
	procGetClassNameW             = user32.NewProc("GetClassNameW")
	procGetWindowRect             = user32.NewProc("GetWindowRect")
	procGetForegroundWindow       = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow       = user32.NewProc("SetForegroundWindow")
	procShowWindow                = user32.NewProc("ShowWindow")
	procSetWindowPos              = user32.NewProc("SetWindowPos")
	procGetDC                     = user32.NewProc("GetDC")
	procReleaseDC                 = user32.NewProc("ReleaseDC")
	procSetProcessDpiAwarenessCtx = user32.NewProc("SetProcessDpiAwarenessContext")

	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procCreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procBitBlt             = gdi32.NewProc("BitBlt")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
)

const (
	smCxScreen        = 0
	smCyScreen        = 1
	smCxFullScreen    = 16
	smCyFullScreen    = 17
	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCxVirtualScreen = 78
	smCyVirtualScreen = 79
	smCMonitors       = 80

	swRestore = 9

	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010

	srcCopy      = 0x00CC0020
	captureBlt   = 0x40000000
	dibRGBColors = 0

	dpiAwarenessPerMonitorV2 = ^uintptr(3) // DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 (-4)
)

type point struct {
	X, Y int32
}

type rect struct {
	Left, Top, Right, Bottom int32
}

func systemMetric(index int) int {
	r, _, _ := procGetSystemMetrics.Call(uintptr(index))
	return int(int32(r))
}

// enableDPIAwareness makes coordinates physical pixels on scaled displays.
// It fails harmlessly when the process is already DPI aware.
func enableDPIAwareness() {
	if procSetProcessDpiAwarenessCtx.Find() != nil {
		return
	}
	_, _, _ = procSetProcessDpiAwarenessCtx.Call(dpiAwarenessPerMonitorV2)
}
