package x11

import (
	"context"
	"fmt"
	"strings"
	"time"

	xproto "github.com/BurntSushi/xgb/xproto"
	xtest "github.com/BurntSushi/xgb/xtest"
	keybind "github.com/BurntSushi/xgbutil/keybind"

	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
)

// Character mapping tables for X11 key names
var (
	shiftChars = map[rune]string{
		'!': "exclam", '@': "at", '#': "numbersign", '$': "dollar",
		'%': "percent", '^': "asciicircum", '&': "ampersand", '*': "asterisk",
		'(': "parenleft", ')': "parenright", '_': "underscore", '+': "plus",
		'{': "braceleft", '}': "braceright", '|': "bar", ':': "colon",
		'"': "quotedbl", '<': "less", '>': "greater", '?': "question",
		'~': "asciitilde",
	}

	punctuationChars = map[rune]string{
		'.': "period", ',': "comma", ';': "semicolon", '\'': "apostrophe",
		'/': "slash", '\\': "backslash", '-': "minus", '=': "equal",
		'[': "bracketleft", ']': "bracketright", '`': "grave",
	}

	namedKeysyms = map[string]string{
		domain.KeyEnter:     "Return",
		domain.KeyEscape:    "Escape",
		domain.KeyTab:       "Tab",
		domain.KeySpace:     "space",
		domain.KeyBackspace: "BackSpace",
		domain.KeyDelete:    "Delete",
		domain.KeyInsert:    "Insert",
		domain.KeyHome:      "Home",
		domain.KeyEnd:       "End",
		domain.KeyPageUp:    "Prior",
		domain.KeyPageDown:  "Next",
		domain.KeyUp:        "Up",
		domain.KeyDown:      "Down",
		domain.KeyLeft:      "Left",
		domain.KeyRight:     "Right",
		domain.KeyShift:     "Shift_L",
		domain.KeyControl:   "Control_L",
		domain.KeyAlt:       "Alt_L",
		domain.KeyCommand:   "Super_L",
		domain.KeyCapsLock:  "Caps_Lock",
		domain.KeyPrint:     "Print",
		domain.KeyMenu:      "Menu",
	}
)

// keysymName converts a canonical key name to an X keysym name
func keysymName(key string) string {
	if name, ok := namedKeysyms[key]; ok {
		return name
	}
	if len(key) >= 2 && key[0] == 'f' {
		return "F" + key[1:]
	}
	if r := []rune(key); len(r) == 1 {
		if name, ok := shiftChars[r[0]]; ok {
			return name
		}
		if name, ok := punctuationChars[r[0]]; ok {
			return name
		}
	}
	return key
}

// charToKeyInfo maps a character to its X11 key string and shift requirement
type charToKeyInfo struct {
	keyStr     string
	needsShift bool
}

// mapCharToKey converts a character to its X11 key name and shift requirement
func mapCharToKey(char rune) charToKeyInfo {
	if char >= 'A' && char <= 'Z' {
		return charToKeyInfo{keyStr: strings.ToLower(string(char)), needsShift: true}
	}

	if shiftChar, ok := shiftChars[char]; ok {
		return charToKeyInfo{keyStr: shiftChar, needsShift: true}
	}

	if punctChar, ok := punctuationChars[char]; ok {
		return charToKeyInfo{keyStr: punctChar}
	}

	switch char {
	case '\n':
		return charToKeyInfo{keyStr: "Return"}
	case '\t':
		return charToKeyInfo{keyStr: "Tab"}
	case ' ':
		return charToKeyInfo{keyStr: "space"}
	default:
		return charToKeyInfo{keyStr: string(char)}
	}
}

func (c *Client) keycode(name string) (xproto.Keycode, error) {
	keycodes := keybind.StrToKeycodes(c.xu, name)
	if len(keycodes) == 0 {
		return 0, fmt.Errorf("no keycode found for key: %s", name)
	}
	return keycodes[0], nil
}

func (c *Client) fakeKey(code xproto.Keycode, down bool) error {
	event := byte(xproto.KeyRelease)
	if down {
		event = xproto.KeyPress
	}
	if err := xtest.FakeInputChecked(c.conn, event, byte(code), 0, c.screen.Root, 0, 0, 0).Check(); err != nil {
		return fmt.Errorf("failed to send key event: %w", err)
	}
	return nil
}

// KeyToggle presses or releases a key
func (c *Client) KeyToggle(_ context.Context, key string, down bool) error {
	code, err := c.keycode(keysymName(key))
	if err != nil {
		return err
	}
	if err := c.fakeKey(code, down); err != nil {
		return err
	}
	c.conn.Sync()
	return nil
}

// KeyTap presses and releases a key
func (c *Client) KeyTap(ctx context.Context, key string) error {
	if err := c.KeyToggle(ctx, key, true); err != nil {
		return err
	}
	time.Sleep(20 * time.Millisecond)
	return c.KeyToggle(ctx, key, false)
}

// TypeText types text character by character. Characters without a keycode
// in the current keymap are skipped.
func (c *Client) TypeText(ctx context.Context, text string) error {
	shift, shiftErr := c.keycode("Shift_L")

	for _, char := range text {
		if err := ctx.Err(); err != nil {
			return err
		}

		info := mapCharToKey(char)
		code, err := c.keycode(info.keyStr)
		if err != nil {
			logger.Debug("No keycode found for character", "char", string(char), "keyStr", info.keyStr)
			continue
		}

		if info.needsShift && shiftErr == nil {
			if err := c.fakeKey(shift, true); err != nil {
				return err
			}
		}
		if err := c.fakeKey(code, true); err != nil {
			return err
		}
		if err := c.fakeKey(code, false); err != nil {
			return err
		}
		if info.needsShift && shiftErr == nil {
			if err := c.fakeKey(shift, false); err != nil {
				return err
			}
		}

		if c.typeDelay > 0 {
			time.Sleep(c.typeDelay)
		}
	}

	c.conn.Sync()
	return nil
}
