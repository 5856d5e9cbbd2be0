package domain

// Position is a point in screen coordinates, origin top-left
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Map renders the position as an envelope payload
func (p Position) Map() map[string]any {
	return map[string]any{"x": p.X, "y": p.Y}
}

// Point is an unvalidated coordinate pair as received from a caller
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Map renders the size as an envelope payload
func (s Size) Map() map[string]any {
	return map[string]any{"width": s.Width, "height": s.Height}
}

// Region is a rectangle on screen
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether the region has a positive area
func (r Region) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Map renders the region as an envelope payload
func (r Region) Map() map[string]any {
	return map[string]any{"x": r.X, "y": r.Y, "width": r.Width, "height": r.Height}
}

// WindowDescriptor describes a native window at the moment it was queried.
// Handles are opaque and only meaningful within the current desktop session.
type WindowDescriptor struct {
	Title        string   `json:"title"`
	ClassName    string   `json:"className"`
	Handle       int64    `json:"handle"`
	Position     Position `json:"position"`
	Size         Size     `json:"size"`
	IsForeground bool     `json:"isForeground"`
	IsOpen       *bool    `json:"isOpen,omitempty"`
}

// UnknownWindow is the placeholder reported when no window can be resolved
func UnknownWindow() WindowDescriptor {
	return WindowDescriptor{Title: "Unknown", ClassName: "Unknown"}
}

// Map renders the descriptor as an envelope payload
func (w WindowDescriptor) Map() map[string]any {
	m := map[string]any{
		"title":        w.Title,
		"className":    w.ClassName,
		"handle":       w.Handle,
		"position":     w.Position.Map(),
		"size":         w.Size.Map(),
		"isForeground": w.IsForeground,
	}
	if w.IsOpen != nil {
		m["isOpen"] = *w.IsOpen
	}
	return m
}

// Resize fit policies
const (
	FitContain = "contain"
	FitCover   = "cover"
	FitFill    = "fill"
	FitInside  = "inside"
	FitOutside = "outside"
)

// ResizeSpec requests a final resize of a screenshot. A zero dimension is
// derived from the other one preserving aspect ratio.
type ResizeSpec struct {
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Fit    string `json:"fit,omitempty"`
}

// ScreenshotOptions controls capture and normalization
type ScreenshotOptions struct {
	Region           *Region     `json:"region,omitempty"`
	Format           string      `json:"format"`
	Quality          int         `json:"quality"`
	Grayscale        bool        `json:"grayscale"`
	CompressionLevel int         `json:"compressionLevel"`
	Resize           *ResizeSpec `json:"resize,omitempty"`
}

// DefaultScreenshotOptions favours machine readability of text-heavy captures
func DefaultScreenshotOptions() ScreenshotOptions {
	return ScreenshotOptions{
		Format:           "jpeg",
		Quality:          85,
		Grayscale:        true,
		CompressionLevel: 6,
	}
}

// Display describes one monitor. Estimated is set when the geometry was
// inferred rather than reported by the OS.
type Display struct {
	Index     int    `json:"index"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bounds    Region `json:"bounds"`
	WorkArea  Region `json:"workArea"`
	Primary   bool   `json:"primary"`
	Estimated bool   `json:"estimated"`
}

// Map renders the display as an envelope payload
func (d Display) Map() map[string]any {
	return map[string]any{
		"index":     d.Index,
		"width":     d.Width,
		"height":    d.Height,
		"bounds":    d.Bounds.Map(),
		"workArea":  d.WorkArea.Map(),
		"primary":   d.Primary,
		"estimated": d.Estimated,
	}
}

// DisplayInfo is the derived multi-monitor layout
type DisplayInfo struct {
	MonitorCount      int       `json:"monitorCount"`
	PrimaryDisplay    Display   `json:"primaryDisplay"`
	SecondaryDisplays []Display `json:"secondaryDisplays,omitempty"`
	Monitors          []Display `json:"monitors"`
	VirtualScreen     Region    `json:"virtualScreen"`
}

// Map renders the layout as an envelope payload
func (d DisplayInfo) Map() map[string]any {
	monitors := make([]map[string]any, 0, len(d.Monitors))
	for _, m := range d.Monitors {
		monitors = append(monitors, m.Map())
	}

	out := map[string]any{
		"monitorCount":   d.MonitorCount,
		"primaryDisplay": d.PrimaryDisplay.Map(),
		"monitors":       monitors,
		"virtualScreen":  d.VirtualScreen.Map(),
	}

	if len(d.SecondaryDisplays) > 0 {
		secondary := make([]map[string]any, 0, len(d.SecondaryDisplays))
		for _, s := range d.SecondaryDisplays {
			secondary = append(secondary, s.Map())
		}
		out["secondaryDisplays"] = secondary
	}

	return out
}
