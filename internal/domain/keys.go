package domain

import (
	"fmt"
	"strings"
)

// Canonical key names understood by every backend
const (
	KeyEnter     = "enter"
	KeyEscape    = "escape"
	KeyTab       = "tab"
	KeySpace     = "space"
	KeyBackspace = "backspace"
	KeyDelete    = "delete"
	KeyInsert    = "insert"
	KeyHome      = "home"
	KeyEnd       = "end"
	KeyPageUp    = "pageup"
	KeyPageDown  = "pagedown"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyShift     = "shift"
	KeyControl   = "control"
	KeyAlt       = "alt"
	KeyCommand   = "command"
	KeyCapsLock  = "capslock"
	KeyPrint     = "printscreen"
	KeyMenu      = "menu"
)

var namedKeys = map[string]string{
	"enter":       KeyEnter,
	"return":      KeyEnter,
	"escape":      KeyEscape,
	"esc":         KeyEscape,
	"tab":         KeyTab,
	"space":       KeySpace,
	"spacebar":    KeySpace,
	"backspace":   KeyBackspace,
	"delete":      KeyDelete,
	"del":         KeyDelete,
	"insert":      KeyInsert,
	"ins":         KeyInsert,
	"home":        KeyHome,
	"end":         KeyEnd,
	"pageup":      KeyPageUp,
	"page_up":     KeyPageUp,
	"pgup":        KeyPageUp,
	"pagedown":    KeyPageDown,
	"page_down":   KeyPageDown,
	"pgdn":        KeyPageDown,
	"up":          KeyUp,
	"down":        KeyDown,
	"left":        KeyLeft,
	"right":       KeyRight,
	"shift":       KeyShift,
	"control":     KeyControl,
	"ctrl":        KeyControl,
	"alt":         KeyAlt,
	"option":      KeyAlt,
	"command":     KeyCommand,
	"cmd":         KeyCommand,
	"super":       KeyCommand,
	"meta":        KeyCommand,
	"win":         KeyCommand,
	"windows":     KeyCommand,
	"capslock":    KeyCapsLock,
	"caps_lock":   KeyCapsLock,
	"printscreen": KeyPrint,
	"print":       KeyPrint,
	"menu":        KeyMenu,
}

// NormalizeKey maps a caller supplied key name to its canonical form.
// Single printable characters are accepted as-is (lower-cased letters),
// as are f1..f24.
func NormalizeKey(name string) (string, error) {
	k := strings.ToLower(strings.TrimSpace(name))
	if k == "" {
		if name == " " {
			return KeySpace, nil
		}
		return "", fmt.Errorf("key name must not be empty")
	}

	if canonical, ok := namedKeys[k]; ok {
		return canonical, nil
	}

	if len([]rune(k)) == 1 {
		r := []rune(k)[0]
		if r > 0x20 && r < 0x7f {
			return k, nil
		}
	}

	if isFunctionKey(k) {
		return k, nil
	}

	return "", fmt.Errorf("unsupported key: %q", name)
}

// IsModifier reports whether a canonical key is a modifier
func IsModifier(key string) bool {
	switch key {
	case KeyShift, KeyControl, KeyAlt, KeyCommand:
		return true
	}
	return false
}

func isFunctionKey(k string) bool {
	if len(k) < 2 || len(k) > 3 || k[0] != 'f' {
		return false
	}
	n := 0
	for _, c := range k[1:] {
		if c < '0' || c > '9' {
			return false
		}
		n = n*10 + int(c-'0')
	}
	return n >= 1 && n <= 24
}
