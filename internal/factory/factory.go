package factory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	zap "go.uber.org/zap"

	config "github.com/inference-gateway/desktop-mcp/config"
	automation "github.com/inference-gateway/desktop-mcp/internal/automation"
	clipboard "github.com/inference-gateway/desktop-mcp/internal/clipboard"
	display "github.com/inference-gateway/desktop-mcp/internal/display"
	win32 "github.com/inference-gateway/desktop-mcp/internal/display/win32"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
	metrics "github.com/inference-gateway/desktop-mcp/internal/metrics"

	_ "github.com/inference-gateway/desktop-mcp/internal/display/robot"
	_ "github.com/inference-gateway/desktop-mcp/internal/display/virtual"
	_ "github.com/inference-gateway/desktop-mcp/internal/display/x11"
)

// AutoBackend lets the registry pick the best available backend
const AutoBackend = "auto"

// Factory builds the process-wide automation provider on first use. A
// backend that fails to initialize yields a degraded provider whose
// operations fail with the initialization error.
type Factory struct {
	cfg *config.Config

	once     sync.Once
	provider *automation.Provider
	initErr  error
}

// New creates a factory for cfg
func New(cfg *config.Config) *Factory {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Factory{cfg: cfg}
}

// Provider returns the provider, constructing it on the first call. It is
// never nil.
func (f *Factory) Provider(ctx context.Context) *automation.Provider {
	f.once.Do(func() {
		f.provider, f.initErr = f.build(ctx)
	})
	return f.provider
}

// InitError returns why the provider is degraded, or nil. It is only
// meaningful after Provider has been called.
func (f *Factory) InitError() error {
	return f.initErr
}

// Degraded reports whether the native backend failed to initialize
func (f *Factory) Degraded() bool {
	return f.initErr != nil
}

// Close releases the backend if it was built
func (f *Factory) Close() error {
	if f.provider == nil {
		return nil
	}
	return f.provider.Close()
}

func (f *Factory) build(ctx context.Context) (*automation.Provider, error) {
	log := logger.FromContext(ctx)

	backend, err := f.openBackend()
	if err != nil {
		log.Error("Failed to initialize automation backend, running degraded",
			zap.String("backend", f.cfg.Backend.Name),
			zap.Error(err))
		return automation.New(f.cfg,
			display.NewUnavailable(err),
			metrics.NewUnavailable(err),
			clipboard.NewSystem(),
		), err
	}

	log.Info("Automation backend initialized", zap.String("backend", backend.Name()))
	return automation.New(f.cfg, backend, metricsReader(ctx, backend), clipboardFor(backend)), nil
}

func (f *Factory) openBackend() (b display.Backend, err error) {
	driver, err := SelectDriver(f.cfg.Backend.Name)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("%s backend panicked during initialization: %v", driver.Info().Name, r)
		}
	}()

	b, err = driver.Open(display.OpenOptions{
		Display:    f.cfg.Backend.Display,
		TypeDelay:  time.Duration(f.cfg.Input.TypeDelayMs) * time.Millisecond,
		MouseSpeed: f.cfg.Input.DefaultMouseSpeed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s backend: %w", driver.Info().Name, err)
	}
	return b, nil
}

// SelectDriver resolves a backend name to a registered driver. An empty
// name or "auto" uses platform detection.
func SelectDriver(name string) (display.Driver, error) {
	if name == "" || name == AutoBackend {
		return display.Detect()
	}

	d, err := display.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !d.IsAvailable() {
		return nil, fmt.Errorf("automation backend %q is not available on this system", name)
	}
	return d, nil
}

// metricsReader prefers the backend's own reader, then the Win32 system
// metrics, and otherwise an unavailable reader carrying both errors
func metricsReader(ctx context.Context, backend display.Backend) metrics.Reader {
	var errs []error

	if mp, ok := backend.(display.MetricsProvider); ok {
		r, err := mp.Metrics()
		if err == nil {
			return r
		}
		errs = append(errs, err)
	}

	r, err := win32.NewMetricsReader()
	if err == nil {
		return r
	}
	errs = append(errs, err)

	reason := errors.Join(errs...)
	logger.FromContext(ctx).Warn("Display metrics unavailable", zap.Error(reason))
	return metrics.NewUnavailable(reason)
}

// clipboardFor uses the backend's clipboard when it has one
func clipboardFor(backend display.Backend) clipboard.Clipboard {
	if c, ok := backend.(clipboard.Clipboard); ok {
		return c
	}
	return clipboard.NewSystem()
}
