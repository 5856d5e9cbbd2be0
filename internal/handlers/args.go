package handlers

import (
	"fmt"

	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
)

// Tool argument structures with jsonschema tags. Numeric fields are
// pointers so a missing argument can be told apart from zero.

type NoArgs struct{}

type PointArgs struct {
	X *float64 `json:"x" jsonschema:"required,description=X coordinate in screen pixels"`
	Y *float64 `json:"y" jsonschema:"required,description=Y coordinate in screen pixels"`
}

type ButtonArgs struct {
	Button string `json:"button,omitempty" jsonschema:"enum=left,enum=right,enum=middle,description=Mouse button (default left)"`
}

type DoubleClickArgs struct {
	X *float64 `json:"x,omitempty" jsonschema:"description=Optional X coordinate to move to first"`
	Y *float64 `json:"y,omitempty" jsonschema:"description=Optional Y coordinate to move to first"`
}

type DragArgs struct {
	FromX  *float64 `json:"fromX" jsonschema:"required,description=Start X coordinate"`
	FromY  *float64 `json:"fromY" jsonschema:"required,description=Start Y coordinate"`
	ToX    *float64 `json:"toX" jsonschema:"required,description=End X coordinate"`
	ToY    *float64 `json:"toY" jsonschema:"required,description=End Y coordinate"`
	Button string   `json:"button,omitempty" jsonschema:"enum=left,enum=right,enum=middle,description=Mouse button to hold (default left)"`
}

type ScrollArgs struct {
	Amount *float64 `json:"amount" jsonschema:"required,description=Wheel notches; positive scrolls down and negative scrolls up"`
}

type SpeedArgs struct {
	Speed *float64 `json:"speed" jsonschema:"required,description=Pointer speed from 1 (slowest) to 100 (instant)"`
}

type ClickAtArgs struct {
	X      *float64 `json:"x" jsonschema:"required,description=X coordinate to click"`
	Y      *float64 `json:"y" jsonschema:"required,description=Y coordinate to click"`
	Button string   `json:"button,omitempty" jsonschema:"enum=left,enum=right,enum=middle,description=Mouse button (default left)"`
}

type TextArgs struct {
	Text string `json:"text" jsonschema:"required,description=Text to type or store"`
}

type KeyArgs struct {
	Key string `json:"key" jsonschema:"required,description=Key name such as enter or a or f5"`
}

type KeyCombinationArgs struct {
	Keys []string `json:"keys" jsonschema:"required,description=Keys pressed in order and released in reverse such as [control c]"`
}

type HoldKeyArgs struct {
	Key      string   `json:"key" jsonschema:"required,description=Key name"`
	State    string   `json:"state" jsonschema:"required,enum=down,enum=up,description=Press or release the key"`
	Duration *float64 `json:"duration,omitempty" jsonschema:"description=Milliseconds to hold before releasing; only used with state down"`
}

type RegionArgs struct {
	X      int `json:"x" jsonschema:"required,description=Left edge"`
	Y      int `json:"y" jsonschema:"required,description=Top edge"`
	Width  int `json:"width" jsonschema:"required,description=Region width"`
	Height int `json:"height" jsonschema:"required,description=Region height"`
}

type ResizeArgs struct {
	Width  int    `json:"width,omitempty" jsonschema:"description=Target width"`
	Height int    `json:"height,omitempty" jsonschema:"description=Target height"`
	Fit    string `json:"fit,omitempty" jsonschema:"enum=contain,enum=cover,enum=fill,enum=inside,enum=outside,description=How the capture fits the target box (default contain)"`
}

type ScreenshotArgs struct {
	Region           *RegionArgs `json:"region,omitempty" jsonschema:"description=Capture only this region"`
	Format           string      `json:"format,omitempty" jsonschema:"enum=jpeg,enum=png,description=Encoding (default jpeg)"`
	Quality          *int        `json:"quality,omitempty" jsonschema:"description=JPEG quality 1-100"`
	Grayscale        *bool       `json:"grayscale,omitempty" jsonschema:"description=Convert to grayscale (default true)"`
	CompressionLevel *int        `json:"compressionLevel,omitempty" jsonschema:"description=PNG compression level 0-9"`
	Resize           *ResizeArgs `json:"resize,omitempty" jsonschema:"description=Fit the capture into a target box"`
}

type TitleArgs struct {
	Title string `json:"title" jsonschema:"required,description=Full or partial window title"`
}

type WindowSizeArgs struct {
	Title  string   `json:"title" jsonschema:"required,description=Full or partial window title"`
	Width  *float64 `json:"width" jsonschema:"required,description=New width in pixels"`
	Height *float64 `json:"height" jsonschema:"required,description=New height in pixels"`
}

type WindowPositionArgs struct {
	Title string   `json:"title" jsonschema:"required,description=Full or partial window title"`
	X     *float64 `json:"x" jsonschema:"required,description=New left edge"`
	Y     *float64 `json:"y" jsonschema:"required,description=New top edge"`
}

// ArgumentError reports a missing required argument
type ArgumentError struct {
	Name string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("missing required argument %q", e.Name)
}

// required collects the values of pointer arguments, failing on the first
// missing one
func required(names []string, values ...*float64) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == nil {
			return nil, &ArgumentError{Name: names[i]}
		}
		out[i] = *v
	}
	return out, nil
}

func requiredString(name, value string) error {
	if value == "" {
		return &ArgumentError{Name: name}
	}
	return nil
}

func (a ScreenshotArgs) options(defaults domain.ScreenshotOptions) domain.ScreenshotOptions {
	opts := defaults
	if a.Region != nil {
		opts.Region = &domain.Region{X: a.Region.X, Y: a.Region.Y, Width: a.Region.Width, Height: a.Region.Height}
	}
	if a.Format != "" {
		opts.Format = a.Format
	}
	if a.Quality != nil {
		opts.Quality = *a.Quality
	}
	if a.Grayscale != nil {
		opts.Grayscale = *a.Grayscale
	}
	if a.CompressionLevel != nil {
		opts.CompressionLevel = *a.CompressionLevel
	}
	if a.Resize != nil {
		opts.Resize = &domain.ResizeSpec{Width: a.Resize.Width, Height: a.Resize.Height, Fit: a.Resize.Fit}
	}
	return opts
}
