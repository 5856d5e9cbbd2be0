package automation

import (
	"context"
	"sync"
	"time"

	config "github.com/inference-gateway/desktop-mcp/config"
	clipboard "github.com/inference-gateway/desktop-mcp/internal/clipboard"
	display "github.com/inference-gateway/desktop-mcp/internal/display"
	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
	metrics "github.com/inference-gateway/desktop-mcp/internal/metrics"
	screenshot "github.com/inference-gateway/desktop-mcp/internal/screenshot"
	windowing "github.com/inference-gateway/desktop-mcp/internal/windowing"
)

var _ domain.AutomationProvider = (*Provider)(nil)

// Provider implements every automation capability over one native backend.
//
// Focusing a window, including implicitly through resize and reposition,
// changes the window later calls act on.
type Provider struct {
	backend   display.Backend
	metrics   *metrics.Service
	clipboard clipboard.Clipboard
	resolver  *windowing.Resolver
	pipeline  *screenshot.Pipeline

	input  config.InputConfig
	window config.WindowConfig
	shots  config.ScreenshotConfig

	mu      sync.Mutex
	current *domain.WindowDescriptor
}

// New creates a provider
func New(cfg *config.Config, backend display.Backend, reader metrics.Reader, clip clipboard.Clipboard) *Provider {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Provider{
		backend:   backend,
		metrics:   metrics.NewService(reader),
		clipboard: clip,
		resolver: windowing.NewResolver(backend, windowing.Options{
			CommonApps:     cfg.Window.CommonApps,
			MinOrigin:      cfg.Window.MinOrigin,
			FallbackWidth:  cfg.Window.FallbackWidth,
			FallbackHeight: cfg.Window.FallbackHeight,
		}),
		pipeline: screenshot.NewPipeline(cfg.Screenshot),
		input:    cfg.Input,
		window:   cfg.Window,
		shots:    cfg.Screenshot,
	}
}

// Name implements domain.AutomationProvider
func (p *Provider) Name() string {
	return p.backend.Name()
}

// Backend returns the native backend
func (p *Provider) Backend() display.Backend {
	return p.backend
}

// CurrentWindow returns the window most recently focused through this
// provider, if any
func (p *Provider) CurrentWindow() (domain.WindowDescriptor, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return domain.WindowDescriptor{}, false
	}
	return *p.current, true
}

func (p *Provider) setCurrent(w domain.WindowDescriptor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = &w
}

// Close releases the native backend
func (p *Provider) Close() error {
	return p.backend.Close()
}

// wait suspends the calling command only; it returns early when ctx ends
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
