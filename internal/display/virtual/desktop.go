package virtual

import (
	"context"
	"fmt"
	"strings"
	"sync"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	metrics "github.com/inference-gateway/desktop-mcp/internal/metrics"
)

// Window is a scripted window on the virtual desktop
type Window struct {
	Handle display.WindowHandle
	Title  string
	Class  string
	Rect   display.Rect

	// TitleErr and RectErr make the respective lookups fail
	TitleErr error
	RectErr  error
	// Pinned windows ignore SetWindowRect, like a maximized native window
	Pinned bool
}

// Desktop is an in-memory Backend. It records every primitive it receives
// and can be told to fail any of them.
type Desktop struct {
	mu sync.Mutex

	width, height int
	cursorX       int
	cursorY       int
	speed         int
	buttons       map[display.MouseButton]bool
	keys          map[string]bool
	scrolled      int
	typed         strings.Builder
	events        []string

	windows []*Window
	active  display.WindowHandle

	calls  map[string]int
	errs   map[string]error
	panics map[string]bool

	metrics  metrics.Static
	clip     string
	capture  func(region *display.Rect) (*display.RawImage, error)
	nextHand display.WindowHandle
}

// Option configures a Desktop
type Option func(*Desktop)

// WithScreen sets the primary screen size
func WithScreen(width, height int) Option {
	return func(d *Desktop) {
		d.width, d.height = width, height
		d.metrics[metrics.PrimaryWidth] = width
		d.metrics[metrics.PrimaryHeight] = height
		d.metrics[metrics.VirtualWidth] = width
		d.metrics[metrics.VirtualHeight] = height
	}
}

// WithWindows adds scripted windows, in enumeration order
func WithWindows(windows ...*Window) Option {
	return func(d *Desktop) {
		for _, w := range windows {
			d.addWindow(w)
		}
	}
}

// WithMetric overrides a single OS metric
func WithMetric(m metrics.Metric, v int) Option {
	return func(d *Desktop) {
		d.metrics[m] = v
	}
}

// WithCapture replaces the synthetic capture
func WithCapture(fn func(region *display.Rect) (*display.RawImage, error)) Option {
	return func(d *Desktop) {
		d.capture = fn
	}
}

// New creates a 1920x1080 single-monitor desktop
func New(opts ...Option) *Desktop {
	d := &Desktop{
		speed:    50,
		buttons:  make(map[display.MouseButton]bool),
		keys:     make(map[string]bool),
		calls:    make(map[string]int),
		errs:     make(map[string]error),
		panics:   make(map[string]bool),
		metrics:  metrics.Static{metrics.MonitorCount: 1},
		nextHand: 0x1000,
	}
	WithScreen(1920, 1080)(d)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Desktop) addWindow(w *Window) {
	if w.Handle == 0 {
		d.nextHand++
		w.Handle = d.nextHand
	}
	d.windows = append(d.windows, w)
	if d.active == 0 {
		d.active = w.Handle
	}
}

// AddWindow adds a window at the end of the enumeration order
func (d *Desktop) AddWindow(w *Window) display.WindowHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.addWindow(w)
	return w.Handle
}

// FailOn makes the named primitive return err until cleared with a nil err
func (d *Desktop) FailOn(method string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err == nil {
		delete(d.errs, method)
		return
	}
	d.errs[method] = err
}

// PanicOn makes the named primitive panic, mimicking a crashing native binding
func (d *Desktop) PanicOn(method string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.panics[method] = true
}

// Calls returns how often the named primitive was invoked
func (d *Desktop) Calls(method string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[method]
}

// Events returns the ordered log of input events, e.g. "key down shift"
func (d *Desktop) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.events))
	copy(out, d.events)
	return out
}

// Typed returns all text typed so far
func (d *Desktop) Typed() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.typed.String()
}

// Scrolled returns the accumulated scroll amount
func (d *Desktop) Scrolled() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrolled
}

// Speed returns the current mouse speed
func (d *Desktop) Speed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.speed
}

// KeyDown reports whether key is currently held
func (d *Desktop) KeyDown(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.keys[key]
}

// ButtonDown reports whether button is currently held
func (d *Desktop) ButtonDown(b display.MouseButton) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buttons[b]
}

// Window returns the scripted window with handle h
func (d *Desktop) Window(h display.WindowHandle) (*Window, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w := d.find(h)
	return w, w != nil
}

// SetActive changes the foreground window
func (d *Desktop) SetActive(h display.WindowHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = h
}

// enter records the call and returns the injected error, if any.
// Must be called with d.mu held.
func (d *Desktop) enter(method string) error {
	d.calls[method]++
	if d.panics[method] {
		panic(fmt.Sprintf("virtual: %s crashed", method))
	}
	return d.errs[method]
}

func (d *Desktop) find(h display.WindowHandle) *Window {
	for _, w := range d.windows {
		if w.Handle == h {
			return w
		}
	}
	return nil
}

// Name implements display.Backend
func (d *Desktop) Name() string {
	return "virtual"
}

// Close implements display.Backend
func (d *Desktop) Close() error {
	return nil
}

// Metrics implements display.MetricsProvider
func (d *Desktop) Metrics() (metrics.Reader, error) {
	return readerFunc(func(_ context.Context, m metrics.Metric) (int, error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		if err := d.enter("Metric"); err != nil {
			return 0, err
		}
		return d.metrics.Metric(context.Background(), m)
	}), nil
}

type readerFunc func(ctx context.Context, m metrics.Metric) (int, error)

func (f readerFunc) Metric(ctx context.Context, m metrics.Metric) (int, error) {
	return f(ctx, m)
}

// ReadText implements clipboard.Clipboard
func (d *Desktop) ReadText(context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("ReadText"); err != nil {
		return "", err
	}
	return d.clip, nil
}

// WriteText implements clipboard.Clipboard
func (d *Desktop) WriteText(_ context.Context, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("WriteText"); err != nil {
		return err
	}
	d.clip = text
	return nil
}
