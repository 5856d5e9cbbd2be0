package automation

import (
	"testing"

	config "github.com/inference-gateway/desktop-mcp/config"
	virtual "github.com/inference-gateway/desktop-mcp/internal/display/virtual"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, opts ...virtual.Option) (*Provider, *virtual.Desktop) {
	t.Helper()

	desk := virtual.New(opts...)
	reader, err := desk.Metrics()
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Window.SettleDelayMs = 0

	return New(cfg, desk, reader, desk), desk
}
