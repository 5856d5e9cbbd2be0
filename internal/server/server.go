package server

import (
	"context"
	"fmt"
	"reflect"

	mcp_golang "github.com/metoro-io/mcp-golang"
	transport "github.com/metoro-io/mcp-golang/transport"
	mcphttp "github.com/metoro-io/mcp-golang/transport/http"
	stdio "github.com/metoro-io/mcp-golang/transport/stdio"
	zap "go.uber.org/zap"

	config "github.com/inference-gateway/desktop-mcp/config"
	handlers "github.com/inference-gateway/desktop-mcp/internal/handlers"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

var (
	responseType = reflect.TypeOf((*mcp_golang.ToolResponse)(nil))
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

// Server exposes the tool catalog over MCP
type Server struct {
	cfg        config.ServerConfig
	dispatcher *handlers.Dispatcher
}

// New creates an MCP server for the dispatcher
func New(cfg config.ServerConfig, dispatcher *handlers.Dispatcher) *Server {
	return &Server{cfg: cfg, dispatcher: dispatcher}
}

// Serve registers every tool and serves until ctx is cancelled or the
// transport fails
func (s *Server) Serve(ctx context.Context) error {
	t, err := s.transport()
	if err != nil {
		return err
	}
	return s.serve(ctx, t)
}

// serve runs the MCP server on t and closes t once ctx is done
func (s *Server) serve(ctx context.Context, t transport.Transport) error {
	log := logger.FromContext(ctx)

	srv := mcp_golang.NewServer(t)
	if err := s.Register(ctx, srv); err != nil {
		return err
	}

	log.Info("MCP server starting",
		zap.String("transport", s.transportName()),
		zap.String("addr", s.cfg.Addr),
		zap.String("path", s.cfg.Path),
		zap.Int("tools", len(s.dispatcher.Tools())))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("MCP server stopping")
			if err := t.Close(); err != nil {
				log.Warn("Failed to close MCP transport", zap.Error(err))
			}
			return nil
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}
			// stdio serves in the background once started
			errCh = nil
		}
	}
}

// Register adds every catalog tool to srv
func (s *Server) Register(ctx context.Context, srv *mcp_golang.Server) error {
	for _, t := range s.dispatcher.Tools() {
		if err := srv.RegisterTool(t.Name, t.Description, s.handlerFor(ctx, t)); err != nil {
			return fmt.Errorf("failed to register %s tool: %w", t.Name, err)
		}
	}
	return nil
}

// handlerFor builds a func(Args) (*ToolResponse, error) for the tool's
// argument type, the handler shape mcp-golang derives schemas from
func (s *Server) handlerFor(ctx context.Context, t handlers.Tool) any {
	fnType := reflect.FuncOf([]reflect.Type{t.Args}, []reflect.Type{responseType, errorType}, false)
	fn := reflect.MakeFunc(fnType, func(in []reflect.Value) []reflect.Value {
		res := s.dispatcher.Invoke(ctx, t.Name, in[0].Interface())
		return []reflect.Value{reflect.ValueOf(ToResponse(res)), reflect.Zero(errorType)}
	})
	return fn.Interface()
}

func (s *Server) transportName() string {
	if s.cfg.Transport == "" {
		return TransportStdio
	}
	return s.cfg.Transport
}

func (s *Server) transport() (transport.Transport, error) {
	switch s.transportName() {
	case TransportStdio:
		return stdio.NewStdioServerTransport(), nil
	case TransportHTTP:
		t := mcphttp.NewHTTPTransport(s.cfg.Path)
		t.WithAddr(s.cfg.Addr)
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported transport %q: must be %s or %s", s.cfg.Transport, TransportStdio, TransportHTTP)
	}
}
