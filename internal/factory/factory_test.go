package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/inference-gateway/desktop-mcp/config"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
)

func TestFactoryBuildsVirtualBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend.Name = "virtual"

	f := New(cfg)
	p := f.Provider(context.Background())
	require.NotNil(t, p)
	assert.False(t, f.Degraded())
	assert.NoError(t, f.InitError())
	assert.Equal(t, "virtual", p.Name())

	res := p.GetScreenSize(context.Background())
	require.True(t, res.Success, res.Message)
	assert.Equal(t, 1920, res.Data["width"])
	assert.Equal(t, 1080, res.Data["height"])
}

func TestFactoryConstructsOnce(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend.Name = "virtual"

	f := New(cfg)
	first := f.Provider(context.Background())
	second := f.Provider(context.Background())
	assert.Same(t, first, second)
}

func TestFactoryUsesBackendClipboard(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend.Name = "virtual"

	p := New(cfg).Provider(context.Background())
	ctx := context.Background()

	require.True(t, p.SetClipboardContent(ctx, "hello").Success)
	res := p.GetClipboardContent(ctx)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "hello", res.Data["text"])
}

func TestFactoryDegradesOnUnknownBackend(t *testing.T) {
	ctx, logs := logger.TestContext()

	cfg := config.DefaultConfig()
	cfg.Backend.Name = "nonexistent"

	f := New(cfg)
	p := f.Provider(ctx)
	require.NotNil(t, p)
	assert.True(t, f.Degraded())
	require.Error(t, f.InitError())
	assert.Contains(t, f.InitError().Error(), "nonexistent")
	assert.Equal(t, "unavailable", p.Name())

	res := p.GetScreenSize(ctx)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "nonexistent")

	moved := p.MoveMouse(ctx, 10, 10)
	assert.False(t, moved.Success)

	assert.Equal(t, 1, logs.FilterMessage("Failed to initialize automation backend, running degraded").Len())
}

func TestSelectDriver(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		want    string
		wantErr string
	}{
		{name: "explicit virtual", backend: "virtual", want: "virtual"},
		{name: "unknown", backend: "amiga", wantErr: `unknown automation backend "amiga"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := SelectDriver(tt.backend)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Info().Name)
		})
	}
}

func TestSelectDriverNeverAutoDetectsVirtual(t *testing.T) {
	d, err := SelectDriver(AutoBackend)
	if err != nil {
		return
	}
	assert.NotEqual(t, "virtual", d.Info().Name)
}
