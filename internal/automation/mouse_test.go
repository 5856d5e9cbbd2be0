package automation

import (
	"context"
	"errors"
	"math"
	"testing"

	config "github.com/inference-gateway/desktop-mcp/config"
	virtual "github.com/inference-gateway/desktop-mcp/internal/display/virtual"
	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
	metrics "github.com/inference-gateway/desktop-mcp/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateValidationNeverReachesBackend(t *testing.T) {
	bad := []struct {
		name string
		x, y float64
	}{
		{name: "NaN x", x: math.NaN(), y: 10},
		{name: "NaN y", x: 10, y: math.NaN()},
		{name: "infinite", x: math.Inf(1), y: 10},
		{name: "beyond max", x: 10001, y: 10},
		{name: "beyond negative max", x: 10, y: -10001},
		{name: "outside screen width", x: 1920, y: 10},
		{name: "outside screen height", x: 10, y: 1080},
		{name: "negative", x: -1, y: 10},
	}

	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			p, desk := newTestProvider(t)
			ctx := context.Background()

			results := []domain.Result{
				p.MoveMouse(ctx, tt.x, tt.y),
				p.ClickAt(ctx, tt.x, tt.y, "left"),
				p.DragMouse(ctx, domain.Point{X: tt.x, Y: tt.y}, domain.Point{X: 5, Y: 5}, "left"),
				p.DragMouse(ctx, domain.Point{X: 5, Y: 5}, domain.Point{X: tt.x, Y: tt.y}, "left"),
				p.DoubleClick(ctx, &domain.Point{X: tt.x, Y: tt.y}),
			}

			for _, res := range results {
				assert.False(t, res.Success)
				assert.Nil(t, res.Data)
				assert.Contains(t, res.Message, "Invalid input")
			}
			assert.Zero(t, desk.Calls("MoveMouse"))
			assert.Zero(t, desk.Calls("ClickMouse"))
			assert.Zero(t, desk.Calls("MouseToggle"))
		})
	}
}

func TestMoveMouse(t *testing.T) {
	p, desk := newTestProvider(t)

	res := p.MoveMouse(context.Background(), 100.4, 200.6)

	require.True(t, res.Success, res.Message)
	assert.Equal(t, map[string]any{"x": 100, "y": 201}, res.Data["position"])
	assert.Equal(t, []string{"move 100,201"}, desk.Events())
}

func TestBoundsCheckSkippedWhenScreenSizeUnavailable(t *testing.T) {
	desk := virtual.New()
	desk.FailOn("GetScreenDimensions", errors.New("no screen"))
	p := New(config.DefaultConfig(), desk, metrics.NewUnavailable(errors.New("no metrics")), desk)
	ctx, logs := logger.TestContext()

	res := p.MoveMouse(ctx, 5000, 5000)

	require.True(t, res.Success, res.Message)
	assert.Equal(t, 1, desk.Calls("MoveMouse"))
	assert.Equal(t, 1, logs.FilterMessage("Screen size unavailable, skipping bounds check").Len())
}

func TestBoundsCheckFallsBackToBackendScreenSize(t *testing.T) {
	desk := virtual.New(virtual.WithScreen(800, 600))
	p := New(config.DefaultConfig(), desk, metrics.NewUnavailable(nil), desk)

	res := p.MoveMouse(context.Background(), 900, 10)

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "outside screen width 800")
}

func TestInvalidButtonIsEchoed(t *testing.T) {
	p, desk := newTestProvider(t)
	ctx := context.Background()

	for _, res := range []domain.Result{
		p.ClickMouse(ctx, "side"),
		p.ClickAt(ctx, 10, 10, "side"),
		p.DragMouse(ctx, domain.Point{X: 1, Y: 1}, domain.Point{X: 2, Y: 2}, "side"),
	} {
		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "side")
	}
	assert.Zero(t, desk.Calls("ClickMouse"))
	assert.Zero(t, desk.Calls("MouseToggle"))
}

func TestClickMouseDefaultsToLeft(t *testing.T) {
	p, desk := newTestProvider(t)

	res := p.ClickMouse(context.Background(), "")

	require.True(t, res.Success)
	assert.Equal(t, "left", res.Data["button"])
	assert.Equal(t, []string{"click left x1 at 0,0"}, desk.Events())
}

func TestScrollMouse(t *testing.T) {
	tests := []struct {
		amount float64
		ok     bool
	}{
		{amount: 1000, ok: true},
		{amount: -1000, ok: true},
		{amount: 3, ok: true},
		{amount: 1001},
		{amount: -1001},
		{amount: math.NaN()},
	}

	for _, tt := range tests {
		p, desk := newTestProvider(t)

		res := p.ScrollMouse(context.Background(), tt.amount)

		assert.Equal(t, tt.ok, res.Success, "amount %v", tt.amount)
		if tt.ok {
			assert.Equal(t, int(tt.amount), desk.Scrolled())
		} else {
			assert.Zero(t, desk.Calls("ScrollMouse"))
		}
	}
}

func TestSetMouseSpeed(t *testing.T) {
	p, desk := newTestProvider(t)
	ctx := context.Background()

	assert.False(t, p.SetMouseSpeed(ctx, 0).Success)
	assert.False(t, p.SetMouseSpeed(ctx, 101).Success)

	res := p.SetMouseSpeed(ctx, 75)
	require.True(t, res.Success)
	assert.Equal(t, 75, desk.Speed())
}

func TestClickAtRestoresCursor(t *testing.T) {
	p, desk := newTestProvider(t)
	ctx := context.Background()
	require.True(t, p.MoveMouse(ctx, 10, 20).Success)

	res := p.ClickAt(ctx, 300, 400, "right")

	require.True(t, res.Success, res.Message)
	assert.Equal(t, []string{
		"move 10,20",
		"move 300,400",
		"click right x1 at 300,400",
		"move 10,20",
	}, desk.Events())
	assert.Equal(t, map[string]any{"x": 10, "y": 20}, res.Data["restoredTo"])
}

func TestClickAtWithoutCursorPositionSkipsRestore(t *testing.T) {
	p, desk := newTestProvider(t)
	desk.FailOn("GetCursorPosition", errors.New("denied"))

	res := p.ClickAt(context.Background(), 300, 400, "")

	require.True(t, res.Success)
	assert.NotContains(t, res.Data, "restoredTo")
	assert.Equal(t, 1, desk.Calls("MoveMouse"))
}

func TestClickAtFailedClickStillRestores(t *testing.T) {
	p, desk := newTestProvider(t)
	desk.FailOn("ClickMouse", errors.New("input blocked"))

	res := p.ClickAt(context.Background(), 300, 400, "left")

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "input blocked")
	assert.Equal(t, []string{"move 300,400", "move 0,0"}, desk.Events())
}

func TestDragMouse(t *testing.T) {
	p, desk := newTestProvider(t)

	res := p.DragMouse(context.Background(), domain.Point{X: 10, Y: 10}, domain.Point{X: 200, Y: 150}, "left")

	require.True(t, res.Success, res.Message)
	assert.Equal(t, []string{
		"move 10,10",
		"button left down",
		"move 200,150",
		"button left up",
	}, desk.Events())
	assert.Equal(t, "left", res.Data["button"])
}

func TestDoubleClick(t *testing.T) {
	p, desk := newTestProvider(t)
	ctx := context.Background()

	res := p.DoubleClick(ctx, nil)
	require.True(t, res.Success)
	assert.Nil(t, res.Data)

	res = p.DoubleClick(ctx, &domain.Point{X: 50, Y: 60})
	require.True(t, res.Success)
	assert.Equal(t, map[string]any{"x": 50, "y": 60}, res.Data["position"])
	assert.Equal(t, []string{
		"click left x2 at 0,0",
		"move 50,60",
		"click left x2 at 50,60",
	}, desk.Events())
}

func TestGetCursorPosition(t *testing.T) {
	p, desk := newTestProvider(t)
	ctx := context.Background()
	require.True(t, p.MoveMouse(ctx, 42, 24).Success)

	res := p.GetCursorPosition(ctx)
	require.True(t, res.Success)
	assert.Equal(t, 42, res.Data["x"])
	assert.Equal(t, 24, res.Data["y"])

	desk.FailOn("GetCursorPosition", errors.New("gone"))
	res = p.GetCursorPosition(ctx)
	assert.False(t, res.Success)
	assert.Nil(t, res.Data)
}
