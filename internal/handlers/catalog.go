package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
)

// Tool is one named operation of the catalog
type Tool struct {
	Name        string
	Description string
	// Mutates marks tools that send input or move windows; they count
	// against the rate limit
	Mutates bool
	// Standalone tools answer without a provider
	Standalone bool
	// Args is the argument struct type, used for schema generation
	Args reflect.Type

	decode func(raw json.RawMessage) (any, error)
	run    func(ctx context.Context, p domain.AutomationProvider, args any) domain.Result
}

// Decode parses raw JSON arguments into the tool's argument struct. Empty
// input decodes to the zero value.
func (t Tool) Decode(raw json.RawMessage) (any, error) {
	return t.decode(raw)
}

func define[A any](name, description string, run func(ctx context.Context, p domain.AutomationProvider, args A) domain.Result) Tool {
	return Tool{
		Name:        name,
		Description: description,
		Args:        reflect.TypeFor[A](),
		decode: func(raw json.RawMessage) (any, error) {
			var args A
			if len(raw) == 0 || string(raw) == "null" {
				return args, nil
			}
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, err
			}
			return args, nil
		},
		run: func(ctx context.Context, p domain.AutomationProvider, args any) domain.Result {
			a, ok := args.(A)
			if !ok {
				return domain.Failf("Invalid arguments for %s: got %T", name, args)
			}
			return run(ctx, p, a)
		},
	}
}

func mutating(t Tool) Tool {
	t.Mutates = true
	return t
}

func standalone(t Tool) Tool {
	t.Standalone = true
	return t
}

func invalid(err error) domain.Result {
	return domain.Fail("Invalid input", err)
}

func unsupported(name string) func(context.Context, domain.AutomationProvider, TitleArgs) domain.Result {
	return func(context.Context, domain.AutomationProvider, TitleArgs) domain.Result {
		return domain.Failf("%s is not supported by this server", name)
	}
}

// screenshotDefaults is implemented by providers whose capture defaults come
// from configuration
type screenshotDefaults interface {
	DefaultScreenshotOptions() domain.ScreenshotOptions
}

// Catalog returns every tool in presentation order
func Catalog() []Tool {
	return []Tool{
		mutating(define("move_mouse", "Move the mouse cursor to absolute screen coordinates",
			func(ctx context.Context, p domain.AutomationProvider, a PointArgs) domain.Result {
				v, err := required([]string{"x", "y"}, a.X, a.Y)
				if err != nil {
					return invalid(err)
				}
				return p.MoveMouse(ctx, v[0], v[1])
			})),
		mutating(define("click_mouse", "Click a mouse button at the current cursor position",
			func(ctx context.Context, p domain.AutomationProvider, a ButtonArgs) domain.Result {
				return p.ClickMouse(ctx, a.Button)
			})),
		mutating(define("double_click", "Double-click the left button, optionally moving to coordinates first",
			func(ctx context.Context, p domain.AutomationProvider, a DoubleClickArgs) domain.Result {
				if (a.X == nil) != (a.Y == nil) {
					return invalid(fmt.Errorf("x and y must be given together"))
				}
				var at *domain.Point
				if a.X != nil {
					at = &domain.Point{X: *a.X, Y: *a.Y}
				}
				return p.DoubleClick(ctx, at)
			})),
		mutating(define("drag_mouse", "Press a button at one point, move to another and release",
			func(ctx context.Context, p domain.AutomationProvider, a DragArgs) domain.Result {
				v, err := required([]string{"fromX", "fromY", "toX", "toY"}, a.FromX, a.FromY, a.ToX, a.ToY)
				if err != nil {
					return invalid(err)
				}
				return p.DragMouse(ctx, domain.Point{X: v[0], Y: v[1]}, domain.Point{X: v[2], Y: v[3]}, a.Button)
			})),
		mutating(define("scroll_mouse", "Scroll the mouse wheel by a number of notches",
			func(ctx context.Context, p domain.AutomationProvider, a ScrollArgs) domain.Result {
				v, err := required([]string{"amount"}, a.Amount)
				if err != nil {
					return invalid(err)
				}
				return p.ScrollMouse(ctx, v[0])
			})),
		define("set_mouse_speed", "Set how fast the pointer glides to its target",
			func(ctx context.Context, p domain.AutomationProvider, a SpeedArgs) domain.Result {
				v, err := required([]string{"speed"}, a.Speed)
				if err != nil {
					return invalid(err)
				}
				return p.SetMouseSpeed(ctx, v[0])
			}),
		mutating(define("click_at", "Move to coordinates, click, and restore the cursor position",
			func(ctx context.Context, p domain.AutomationProvider, a ClickAtArgs) domain.Result {
				v, err := required([]string{"x", "y"}, a.X, a.Y)
				if err != nil {
					return invalid(err)
				}
				return p.ClickAt(ctx, v[0], v[1], a.Button)
			})),
		mutating(define("type_text", "Type text at the current keyboard focus",
			func(ctx context.Context, p domain.AutomationProvider, a TextArgs) domain.Result {
				return p.TypeText(ctx, a.Text)
			})),
		mutating(define("press_key", "Press and release a single key",
			func(ctx context.Context, p domain.AutomationProvider, a KeyArgs) domain.Result {
				if err := requiredString("key", a.Key); err != nil {
					return invalid(err)
				}
				return p.PressKey(ctx, a.Key)
			})),
		mutating(define("press_key_combination", "Press keys together, such as control+c",
			func(ctx context.Context, p domain.AutomationProvider, a KeyCombinationArgs) domain.Result {
				if len(a.Keys) == 0 {
					return invalid(&ArgumentError{Name: "keys"})
				}
				return p.PressKeyCombination(ctx, a.Keys)
			})),
		mutating(define("hold_key", "Press or release a key, optionally releasing after a duration",
			func(ctx context.Context, p domain.AutomationProvider, a HoldKeyArgs) domain.Result {
				if err := requiredString("key", a.Key); err != nil {
					return invalid(err)
				}
				if err := requiredString("state", a.State); err != nil {
					return invalid(err)
				}
				var duration float64
				if a.Duration != nil {
					duration = *a.Duration
				}
				return p.HoldKey(ctx, a.Key, a.State, duration)
			})),
		define("get_screen_size", "Get the primary screen size in pixels",
			func(ctx context.Context, p domain.AutomationProvider, _ NoArgs) domain.Result {
				return p.GetScreenSize(ctx)
			}),
		define("get_all_displays", "Describe every connected monitor and the virtual screen",
			func(ctx context.Context, p domain.AutomationProvider, _ NoArgs) domain.Result {
				return p.GetAllDisplays(ctx)
			}),
		define("get_screenshot", "Capture the screen or a region as a base64 image",
			func(ctx context.Context, p domain.AutomationProvider, a ScreenshotArgs) domain.Result {
				defaults := domain.DefaultScreenshotOptions()
				if d, ok := p.(screenshotDefaults); ok {
					defaults = d.DefaultScreenshotOptions()
				}
				return p.GetScreenshot(ctx, a.options(defaults))
			}),
		define("get_cursor_position", "Get the current cursor position",
			func(ctx context.Context, p domain.AutomationProvider, _ NoArgs) domain.Result {
				return p.GetCursorPosition(ctx)
			}),
		define("get_active_window", "Describe the window that currently has focus",
			func(ctx context.Context, p domain.AutomationProvider, _ NoArgs) domain.Result {
				return p.GetActiveWindow(ctx)
			}),
		define("list_windows", "List top-level windows with their geometry",
			func(ctx context.Context, p domain.AutomationProvider, _ NoArgs) domain.Result {
				return p.ListWindows(ctx)
			}),
		mutating(define("focus_window", "Bring the window matching a title to the foreground",
			func(ctx context.Context, p domain.AutomationProvider, a TitleArgs) domain.Result {
				if err := requiredString("title", a.Title); err != nil {
					return invalid(err)
				}
				return p.FocusWindow(ctx, a.Title)
			})),
		mutating(define("resize_window", "Resize the window matching a title",
			func(ctx context.Context, p domain.AutomationProvider, a WindowSizeArgs) domain.Result {
				if err := requiredString("title", a.Title); err != nil {
					return invalid(err)
				}
				v, err := required([]string{"width", "height"}, a.Width, a.Height)
				if err != nil {
					return invalid(err)
				}
				return p.ResizeWindow(ctx, a.Title, v[0], v[1])
			})),
		mutating(define("reposition_window", "Move the window matching a title",
			func(ctx context.Context, p domain.AutomationProvider, a WindowPositionArgs) domain.Result {
				if err := requiredString("title", a.Title); err != nil {
					return invalid(err)
				}
				v, err := required([]string{"x", "y"}, a.X, a.Y)
				if err != nil {
					return invalid(err)
				}
				return p.RepositionWindow(ctx, a.Title, v[0], v[1])
			})),
		standalone(define("minimize_window", "Minimize a window (not supported)", unsupported("minimize_window"))),
		standalone(define("restore_window", "Restore a minimized window (not supported)", unsupported("restore_window"))),
		define("get_clipboard_content", "Read text from the clipboard",
			func(ctx context.Context, p domain.AutomationProvider, _ NoArgs) domain.Result {
				return p.GetClipboardContent(ctx)
			}),
		define("set_clipboard_content", "Replace the clipboard content with text",
			func(ctx context.Context, p domain.AutomationProvider, a TextArgs) domain.Result {
				return p.SetClipboardContent(ctx, a.Text)
			}),
		define("has_clipboard_text", "Report whether the clipboard holds text",
			func(ctx context.Context, p domain.AutomationProvider, _ NoArgs) domain.Result {
				return p.HasClipboardText(ctx)
			}),
		define("clear_clipboard", "Empty the clipboard",
			func(ctx context.Context, p domain.AutomationProvider, _ NoArgs) domain.Result {
				return p.ClearClipboard(ctx)
			}),
	}
}
