package windowing

import (
	"context"
	"errors"
	"testing"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	virtual "github.com/inference-gateway/desktop-mcp/internal/display/virtual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultOptions = Options{
	CommonApps:     []string{"Chrome", "Firefox", "Code", "Terminal"},
	MinOrigin:      -10000,
	FallbackWidth:  800,
	FallbackHeight: 600,
}

func rect(x, y, w, h int) display.Rect {
	return display.Rect{X: x, Y: y, Width: w, Height: h}
}

func TestResolverFindTiers(t *testing.T) {
	windows := func() []*virtual.Window {
		return []*virtual.Window{
			{Handle: 1, Title: "Notepad", Rect: rect(0, 0, 400, 300)},
			{Handle: 2, Title: "Untitled - Notepad", Rect: rect(10, 10, 400, 300)},
			{Handle: 3, Title: "Settings", Rect: rect(20, 20, 400, 300)},
		}
	}

	tests := []struct {
		name       string
		target     string
		wantHandle display.WindowHandle
		wantErr    string
	}{
		{name: "exact beats substring", target: "Notepad", wantHandle: 1},
		{name: "substring", target: "Untitled", wantHandle: 2},
		{name: "case-insensitive substring", target: "settings", wantHandle: 3},
		{name: "no match", target: "Calculator", wantErr: "could not find window with title: Calculator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desk := virtual.New(virtual.WithWindows(windows()...))
			r := NewResolver(desk, defaultOptions)

			m, err := r.Find(context.Background(), tt.target)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				var nf *NotFoundError
				assert.ErrorAs(t, err, &nf)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHandle, m.Handle)
			assert.False(t, m.Degraded)
		})
	}
}

func TestResolverSubstringTierAcrossTitles(t *testing.T) {
	desk := virtual.New(virtual.WithWindows(
		&virtual.Window{Handle: 1, Title: "Notepad", Rect: rect(0, 0, 100, 100)},
		&virtual.Window{Handle: 2, Title: "Untitled - Notepad", Rect: rect(0, 0, 100, 100)},
		&virtual.Window{Handle: 3, Title: "Settings", Rect: rect(0, 0, 100, 100)},
	))
	r := NewResolver(desk, defaultOptions)

	m, err := r.Find(context.Background(), "notepad")
	require.NoError(t, err)

	assert.Equal(t, display.WindowHandle(1), m.Handle)
	assert.Equal(t, 3, desk.Calls("WindowTitle"), "each title is fetched exactly once")
	assert.Equal(t, 1, desk.Calls("WindowRect"))
}

func TestResolverEmptyEnumeration(t *testing.T) {
	r := NewResolver(virtual.New(), defaultOptions)

	_, err := r.Find(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoWindows)
}

func TestResolverOnlyUntitledWindows(t *testing.T) {
	desk := virtual.New(virtual.WithWindows(
		&virtual.Window{Title: "", Rect: rect(0, 0, 100, 100)},
		&virtual.Window{Title: "   ", Rect: rect(0, 0, 100, 100)},
		&virtual.Window{Title: "broken", TitleErr: errors.New("access denied")},
	))
	r := NewResolver(desk, defaultOptions)

	_, err := r.Find(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoTitledWindows)
}

func TestResolverUnknownSentinelFallsBackToUntargeted(t *testing.T) {
	desk := virtual.New(virtual.WithWindows(
		&virtual.Window{Handle: 1, Title: "Spreadsheet", Rect: rect(0, 0, 100, 100)},
		&virtual.Window{Handle: 2, Title: "Mozilla Firefox", Rect: rect(0, 0, 100, 100)},
	))
	r := NewResolver(desk, defaultOptions)

	m, err := r.Find(context.Background(), UnknownTitle)
	require.NoError(t, err)
	assert.Equal(t, display.WindowHandle(2), m.Handle, "common app preferred")
}

func TestResolverUnknownTitleMatchesLiterally(t *testing.T) {
	desk := virtual.New(virtual.WithWindows(
		&virtual.Window{Handle: 1, Title: "Terminal", Rect: rect(0, 0, 100, 100)},
		&virtual.Window{Handle: 2, Title: "Unknown Artist - Player", Rect: rect(0, 0, 100, 100)},
	))
	r := NewResolver(desk, defaultOptions)

	m, err := r.Find(context.Background(), UnknownTitle)
	require.NoError(t, err)
	assert.Equal(t, display.WindowHandle(2), m.Handle)
}

func TestResolverWithoutCommonAppsUsesAllTitled(t *testing.T) {
	desk := virtual.New(virtual.WithWindows(
		&virtual.Window{Handle: 1, Title: "Spreadsheet", Rect: rect(0, 0, 100, 100)},
		&virtual.Window{Handle: 2, Title: "Mail", Rect: rect(0, 0, 100, 100)},
	))
	r := NewResolver(desk, defaultOptions)

	m, err := r.Find(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, display.WindowHandle(1), m.Handle)
}

func TestResolverHonoursZeroMinOrigin(t *testing.T) {
	tests := []struct {
		name         string
		minOrigin    int
		wantDegraded bool
	}{
		{name: "default bound accepts negative origin", minOrigin: -10000, wantDegraded: false},
		{name: "zero bound rejects negative origin", minOrigin: 0, wantDegraded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desk := virtual.New(virtual.WithWindows(
				&virtual.Window{Handle: 1, Title: "Editor", Rect: rect(-5, 10, 400, 300)},
			))
			opts := defaultOptions
			opts.MinOrigin = tt.minOrigin

			m, err := NewResolver(desk, opts).Find(context.Background(), "Editor")

			require.NoError(t, err)
			assert.Equal(t, display.WindowHandle(1), m.Handle)
			assert.Equal(t, tt.wantDegraded, m.Degraded)
		})
	}
}

func TestResolverGeometryAcceptance(t *testing.T) {
	tests := []struct {
		name       string
		windows    []*virtual.Window
		wantHandle display.WindowHandle
		wantRect   display.Rect
		degraded   bool
	}{
		{
			name: "skips offscreen and zero-sized candidates",
			windows: []*virtual.Window{
				{Handle: 1, Title: "Doc A", Rect: rect(-32000, -32000, 160, 28)},
				{Handle: 2, Title: "Doc B", Rect: rect(0, 0, 0, 0)},
				{Handle: 3, Title: "Doc C", Rect: rect(50, 60, 640, 480)},
			},
			wantHandle: 3,
			wantRect:   rect(50, 60, 640, 480),
		},
		{
			name: "skips candidates whose geometry cannot be read",
			windows: []*virtual.Window{
				{Handle: 1, Title: "Doc A", RectErr: errors.New("gone")},
				{Handle: 2, Title: "Doc B", Rect: rect(-50, -50, 300, 200)},
			},
			wantHandle: 2,
			wantRect:   rect(-50, -50, 300, 200),
		},
		{
			name: "falls back to first candidate with default geometry",
			windows: []*virtual.Window{
				{Handle: 1, Title: "Doc A", Rect: rect(-32000, -32000, 160, 28)},
				{Handle: 2, Title: "Doc B", RectErr: errors.New("gone")},
			},
			wantHandle: 1,
			wantRect:   rect(0, 0, 800, 600),
			degraded:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desk := virtual.New(virtual.WithWindows(tt.windows...))
			r := NewResolver(desk, defaultOptions)

			m, err := r.Find(context.Background(), "Doc")
			require.NoError(t, err)
			assert.Equal(t, tt.wantHandle, m.Handle)
			assert.Equal(t, tt.wantRect, m.Rect)
			assert.Equal(t, tt.degraded, m.Degraded)
		})
	}
}

func TestResolverFindActivePrefersForeground(t *testing.T) {
	desk := virtual.New(virtual.WithWindows(
		&virtual.Window{Handle: 1, Title: "Google Chrome", Rect: rect(0, 0, 100, 100)},
		&virtual.Window{Handle: 2, Title: "Mail", Rect: rect(0, 0, 100, 100)},
	))
	r := NewResolver(desk, defaultOptions)

	m, err := r.FindActive(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, display.WindowHandle(1), m.Handle)

	m, err = r.FindActive(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, display.WindowHandle(2), m.Handle, "foreground wins over common apps")
}

func TestResolverFindActiveSkipsOffscreenForeground(t *testing.T) {
	desk := virtual.New(virtual.WithWindows(
		&virtual.Window{Handle: 1, Title: "Google Chrome", Rect: rect(0, 0, 100, 100)},
		&virtual.Window{Handle: 2, Title: "Mail", Rect: rect(-32000, -32000, 160, 28)},
	))
	r := NewResolver(desk, defaultOptions)

	m, err := r.FindActive(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, display.WindowHandle(1), m.Handle)
}

func TestResolverEnumerationFailure(t *testing.T) {
	desk := virtual.New()
	desk.FailOn("ListWindows", errors.New("display closed"))

	_, err := NewResolver(desk, defaultOptions).Find(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "display closed")
}
