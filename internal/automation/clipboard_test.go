package automation

import (
	"context"
	"errors"
	"testing"

	config "github.com/inference-gateway/desktop-mcp/config"
	clipboard "github.com/inference-gateway/desktop-mcp/internal/clipboard"
	virtual "github.com/inference-gateway/desktop-mcp/internal/display/virtual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipboardOperations(t *testing.T) {
	p, desk := newTestProvider(t)
	ctx := context.Background()

	res := p.HasClipboardText(ctx)
	require.True(t, res.Success)
	assert.Equal(t, false, res.Data["hasText"])

	require.True(t, p.SetClipboardContent(ctx, "copied").Success)

	res = p.GetClipboardContent(ctx)
	require.True(t, res.Success)
	assert.Equal(t, "copied", res.Data["text"])
	assert.Equal(t, true, p.HasClipboardText(ctx).Data["hasText"])

	require.True(t, p.ClearClipboard(ctx).Success)
	assert.Equal(t, false, p.HasClipboardText(ctx).Data["hasText"])

	desk.FailOn("ReadText", errors.New("locked"))
	res = p.GetClipboardContent(ctx)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "locked")
}

func TestClipboardUnavailable(t *testing.T) {
	desk := virtual.New()
	reader, err := desk.Metrics()
	require.NoError(t, err)

	p := New(config.DefaultConfig(), desk, reader, clipboard.Unavailable{Reason: errors.New("no display")})
	ctx := context.Background()

	tests := []struct {
		name string
		call func() bool
	}{
		{"get", func() bool { return p.GetClipboardContent(ctx).Success }},
		{"set", func() bool { return p.SetClipboardContent(ctx, "x").Success }},
		{"has", func() bool { return p.HasClipboardText(ctx).Success }},
		{"clear", func() bool { return p.ClearClipboard(ctx).Success }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.call())
		})
	}

	res := p.GetClipboardContent(ctx)
	assert.Contains(t, res.Message, "Failed to read clipboard")
}
