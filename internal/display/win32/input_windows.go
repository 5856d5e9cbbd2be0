//go:build windows

package win32

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unsafe"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseLeftDown   = 0x0002
	mouseLeftUp     = 0x0004
	mouseRightDown  = 0x0008
	mouseRightUp    = 0x0010
	mouseMiddleDown = 0x0020
	mouseMiddleUp   = 0x0040
	mouseWheel      = 0x0800

	wheelDelta = 120

	keyExtended = 0x0001
	keyUp       = 0x0002
	keyUnicode  = 0x0004
)

type mouseInput struct {
	Dx, Dy    int32
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type keybdInput struct {
	Vk, Scan  uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// mouseINPUT and keyINPUT mirror the INPUT union. keyINPUT is padded so
// both have the size SendInput expects as cbSize.
type mouseINPUT struct {
	Type uint32
	Mi   mouseInput
}

type keyINPUT struct {
	Type uint32
	Ki   keybdInput
	_    [8]byte
}

var inputSize = unsafe.Sizeof(mouseINPUT{})

var virtualKeys = map[string]uint16{
	domain.KeyEnter:     0x0D,
	domain.KeyEscape:    0x1B,
	domain.KeyTab:       0x09,
	domain.KeySpace:     0x20,
	domain.KeyBackspace: 0x08,
	domain.KeyDelete:    0x2E,
	domain.KeyInsert:    0x2D,
	domain.KeyHome:      0x24,
	domain.KeyEnd:       0x23,
	domain.KeyPageUp:    0x21,
	domain.KeyPageDown:  0x22,
	domain.KeyUp:        0x26,
	domain.KeyDown:      0x28,
	domain.KeyLeft:      0x25,
	domain.KeyRight:     0x27,
	domain.KeyShift:     0x10,
	domain.KeyControl:   0x11,
	domain.KeyAlt:       0x12,
	domain.KeyCommand:   0x5B,
	domain.KeyCapsLock:  0x14,
	domain.KeyPrint:     0x2C,
	domain.KeyMenu:      0x5D,
}

var extendedKeys = map[uint16]bool{
	0x2E: true, 0x2D: true, 0x24: true, 0x23: true, 0x21: true,
	0x22: true, 0x26: true, 0x28: true, 0x25: true, 0x27: true,
}

func sendMouse(flags, data uint32) error {
	in := mouseINPUT{Type: inputMouse, Mi: mouseInput{Flags: flags, MouseData: data}}
	n, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), inputSize)
	if n != 1 {
		return fmt.Errorf("SendInput mouse: %w", err)
	}
	return nil
}

func sendKeys(events []keyINPUT) error {
	if len(events) == 0 {
		return nil
	}
	n, _, err := procSendInput.Call(uintptr(len(events)), uintptr(unsafe.Pointer(&events[0])), inputSize)
	if int(n) != len(events) {
		return fmt.Errorf("SendInput keyboard (%d/%d events): %w", n, len(events), err)
	}
	return nil
}

func keyEvent(vk uint16, up bool) keyINPUT {
	ev := keyINPUT{Type: inputKeyboard, Ki: keybdInput{Vk: vk}}
	if extendedKeys[vk] {
		ev.Ki.Flags |= keyExtended
	}
	if up {
		ev.Ki.Flags |= keyUp
	}
	return ev
}

func unicodeEvents(text string) []keyINPUT {
	units := utf16.Encode([]rune(text))
	events := make([]keyINPUT, 0, len(units)*2)
	for _, u := range units {
		events = append(events,
			keyINPUT{Type: inputKeyboard, Ki: keybdInput{Scan: u, Flags: keyUnicode}},
			keyINPUT{Type: inputKeyboard, Ki: keybdInput{Scan: u, Flags: keyUnicode | keyUp}},
		)
	}
	return events
}

func buttonFlags(button display.MouseButton) (down, up uint32) {
	switch button {
	case display.MouseButtonRight:
		return mouseRightDown, mouseRightUp
	case display.MouseButtonMiddle:
		return mouseMiddleDown, mouseMiddleUp
	default:
		return mouseLeftDown, mouseLeftUp
	}
}

// virtualKey maps a canonical key name to a virtual-key code
func virtualKey(key string) (uint16, error) {
	if vk, ok := virtualKeys[key]; ok {
		return vk, nil
	}

	if strings.HasPrefix(key, "f") && len(key) > 1 {
		var n int
		if _, err := fmt.Sscanf(key, "f%d", &n); err == nil && n >= 1 && n <= 24 {
			return uint16(0x70 + n - 1), nil
		}
	}

	r := []rune(key)
	if len(r) != 1 {
		return 0, fmt.Errorf("unsupported key %q", key)
	}
	switch c := r[0]; {
	case c >= 'a' && c <= 'z':
		return uint16(c - 'a' + 'A'), nil
	case c >= '0' && c <= '9':
		return uint16(c), nil
	}

	res, _, _ := procVkKeyScanW.Call(uintptr(r[0]))
	if int16(res) == -1 {
		return 0, fmt.Errorf("no virtual key for %q", key)
	}
	return uint16(res & 0xFF), nil
}
