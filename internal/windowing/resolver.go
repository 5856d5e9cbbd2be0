package windowing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
	zap "go.uber.org/zap"
)

// UnknownTitle is the placeholder title callers may echo back from a
// previous failed lookup; it is treated as "no target"
const UnknownTitle = "Unknown"

var (
	// ErrNoWindows is returned when the backend enumerates no windows
	ErrNoWindows = errors.New("no windows found")
	// ErrNoTitledWindows is returned when every enumerated window is untitled
	ErrNoTitledWindows = errors.New("no windows with titles found")
)

// NotFoundError is returned when no window matches a requested title
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find window with title: %s", e.Title)
}

// Source is the subset of a backend the resolver needs
type Source interface {
	ListWindows(ctx context.Context) ([]display.WindowHandle, error)
	WindowTitle(ctx context.Context, h display.WindowHandle) (string, error)
	WindowRect(ctx context.Context, h display.WindowHandle) (display.Rect, error)
}

// Options tune candidate selection
type Options struct {
	// CommonApps are title fragments preferred when no target is given
	CommonApps []string
	// MinOrigin is the lowest accepted window origin; offscreen windows
	// are parked far below it
	MinOrigin int
	// Fallback geometry reported when no candidate has usable geometry
	FallbackWidth  int
	FallbackHeight int
}

// Match is a resolved window
type Match struct {
	Handle display.WindowHandle
	Title  string
	Rect   display.Rect
	// Degraded is set when Rect is the fallback geometry rather than the
	// window's own
	Degraded bool
}

// Resolver maps a loose title query to a single native window
type Resolver struct {
	source Source
	opts   Options
}

// NewResolver creates a resolver over source
func NewResolver(source Source, opts Options) *Resolver {
	if opts.FallbackWidth <= 0 {
		opts.FallbackWidth = 800
	}
	if opts.FallbackHeight <= 0 {
		opts.FallbackHeight = 600
	}
	return &Resolver{source: source, opts: opts}
}

type candidate struct {
	handle display.WindowHandle
	title  string
}

// Find resolves target to a window. An empty target, or the Unknown
// placeholder when nothing matches it, selects the best untargeted window.
func (r *Resolver) Find(ctx context.Context, target string) (*Match, error) {
	return r.resolve(ctx, target, 0)
}

// FindActive selects the best untargeted window. A titled foreground
// window is tried before every other candidate.
func (r *Resolver) FindActive(ctx context.Context, foreground display.WindowHandle) (*Match, error) {
	return r.resolve(ctx, "", foreground)
}

func (r *Resolver) resolve(ctx context.Context, target string, foreground display.WindowHandle) (*Match, error) {
	handles, err := r.source.ListWindows(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate windows: %w", err)
	}
	if len(handles) == 0 {
		return nil, ErrNoWindows
	}

	titled := r.titled(ctx, handles)
	if len(titled) == 0 {
		return nil, ErrNoTitledWindows
	}

	var candidates []candidate
	if target != "" {
		candidates = matchTitle(titled, target)
		if len(candidates) == 0 && target != UnknownTitle {
			return nil, &NotFoundError{Title: target}
		}
	}
	if len(candidates) == 0 {
		candidates = r.preferCommon(titled)
	}

	if foreground != 0 {
		candidates = hoist(candidates, titled, foreground)
	}

	return r.accept(ctx, candidates), nil
}

// titled fetches every title exactly once and drops untitled windows
func (r *Resolver) titled(ctx context.Context, handles []display.WindowHandle) []candidate {
	out := make([]candidate, 0, len(handles))
	for _, h := range handles {
		title, err := r.source.WindowTitle(ctx, h)
		if err != nil {
			logger.FromContext(ctx).Debug("Window title lookup failed",
				zap.Int64("handle", int64(h)), zap.Error(err))
			continue
		}
		if strings.TrimSpace(title) == "" {
			continue
		}
		out = append(out, candidate{handle: h, title: title})
	}
	return out
}

// matchTitle applies exact, substring, then case-insensitive substring
// matching, stopping at the first tier with a hit
func matchTitle(titled []candidate, target string) []candidate {
	tiers := []func(title string) bool{
		func(title string) bool { return title == target },
		func(title string) bool { return strings.Contains(title, target) },
		func(title string) bool { return strings.Contains(strings.ToLower(title), strings.ToLower(target)) },
	}

	for _, match := range tiers {
		var hits []candidate
		for _, c := range titled {
			if match(c.title) {
				hits = append(hits, c)
			}
		}
		if len(hits) > 0 {
			return hits
		}
	}
	return nil
}

// preferCommon returns windows naming a well-known application, or all
// titled windows when none does
func (r *Resolver) preferCommon(titled []candidate) []candidate {
	var common []candidate
	for _, c := range titled {
		lower := strings.ToLower(c.title)
		for _, app := range r.opts.CommonApps {
			if app != "" && strings.Contains(lower, strings.ToLower(app)) {
				common = append(common, c)
				break
			}
		}
	}
	if len(common) > 0 {
		return common
	}
	return titled
}

// hoist moves the titled window h to the front of candidates, adding it
// when the preference filter dropped it
func hoist(candidates, titled []candidate, h display.WindowHandle) []candidate {
	var front *candidate
	for i := range titled {
		if titled[i].handle == h {
			front = &titled[i]
			break
		}
	}
	if front == nil {
		return candidates
	}

	out := make([]candidate, 0, len(candidates)+1)
	out = append(out, *front)
	for _, c := range candidates {
		if c.handle != h {
			out = append(out, c)
		}
	}
	return out
}

// accept returns the first candidate with plausible geometry, or the first
// candidate with fallback geometry
func (r *Resolver) accept(ctx context.Context, candidates []candidate) *Match {
	for _, c := range candidates {
		rect, err := r.source.WindowRect(ctx, c.handle)
		if err != nil {
			continue
		}
		if r.plausible(rect) {
			return &Match{Handle: c.handle, Title: c.title, Rect: rect}
		}
	}

	first := candidates[0]
	return &Match{
		Handle:   first.handle,
		Title:    first.title,
		Rect:     display.Rect{Width: r.opts.FallbackWidth, Height: r.opts.FallbackHeight},
		Degraded: true,
	}
}

func (r *Resolver) plausible(rect display.Rect) bool {
	return rect.Width > 0 && rect.Height > 0 && rect.X > r.opts.MinOrigin && rect.Y > r.opts.MinOrigin
}
