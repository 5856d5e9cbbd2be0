package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	uuid "github.com/google/uuid"
	zap "go.uber.org/zap"

	config "github.com/inference-gateway/desktop-mcp/config"
	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
)

// ProviderFunc returns the process-wide provider, building it on first use
type ProviderFunc func(ctx context.Context) domain.AutomationProvider

// Dispatcher routes tool calls to the provider one at a time
type Dispatcher struct {
	provider ProviderFunc
	tools    []Tool
	byName   map[string]Tool
	limiter  *RateLimiter

	mu sync.Mutex
}

// NewDispatcher creates a dispatcher over the full tool catalog
func NewDispatcher(cfg *config.Config, provider ProviderFunc) *Dispatcher {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	tools := Catalog()
	byName := make(map[string]Tool, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
	}

	return &Dispatcher{
		provider: provider,
		tools:    tools,
		byName:   byName,
		limiter:  NewRateLimiter(cfg.RateLimit),
	}
}

// Tools returns the catalog in presentation order
func (d *Dispatcher) Tools() []Tool {
	out := make([]Tool, len(d.tools))
	copy(out, d.tools)
	return out
}

// Lookup returns the tool registered under name
func (d *Dispatcher) Lookup(name string) (Tool, bool) {
	t, ok := d.byName[name]
	return t, ok
}

// Call decodes raw JSON arguments and invokes the named tool
func (d *Dispatcher) Call(ctx context.Context, name string, raw json.RawMessage) domain.Result {
	t, ok := d.byName[name]
	if !ok {
		return domain.Failf("Unknown tool: %s", name)
	}

	args, err := t.Decode(raw)
	if err != nil {
		logger.FromContext(ctx).Debug("Failed to decode tool arguments",
			zap.String("tool", name), zap.Error(err))
		return domain.Fail(fmt.Sprintf("Invalid arguments for %s", name), err)
	}
	return d.Invoke(ctx, name, args)
}

// Invoke runs the named tool with already-decoded arguments. Calls are
// serialized; a call arriving while another runs waits its turn.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args any) (res domain.Result) {
	t, ok := d.byName[name]
	if !ok {
		return domain.Failf("Unknown tool: %s", name)
	}

	ctx = logger.With(ctx,
		zap.String("request_id", uuid.NewString()),
		zap.String("tool", name),
	)
	log := logger.FromContext(ctx)

	if t.Mutates {
		if err := d.limiter.CheckAndRecord(name); err != nil {
			log.Warn("Tool call rejected", zap.Error(err))
			return domain.Fail("Rate limited", err)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error("Tool panicked",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			res = domain.Failf("Internal error in %s: %v", name, r)
		}
		log.Debug("Tool completed",
			zap.Bool("success", res.Success),
			zap.Duration("duration", time.Since(start)))
	}()

	var p domain.AutomationProvider
	if !t.Standalone {
		p = d.provider(ctx)
	}
	return t.run(ctx, p, args)
}

// RateLimiter exposes the limiter for status reporting
func (d *Dispatcher) RateLimiter() *RateLimiter {
	return d.limiter
}
