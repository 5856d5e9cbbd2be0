package server

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcp_golang "github.com/metoro-io/mcp-golang"
	transport "github.com/metoro-io/mcp-golang/transport"

	config "github.com/inference-gateway/desktop-mcp/config"
	automation "github.com/inference-gateway/desktop-mcp/internal/automation"
	virtual "github.com/inference-gateway/desktop-mcp/internal/display/virtual"
	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
	handlers "github.com/inference-gateway/desktop-mcp/internal/handlers"
)

func decodeEnvelope(t *testing.T, c *mcp_golang.Content) domain.Result {
	t.Helper()
	require.NotNil(t, c.TextContent)

	var res domain.Result
	require.NoError(t, json.Unmarshal([]byte(c.TextContent.Text), &res))
	return res
}

func TestToResponseFailure(t *testing.T) {
	resp := ToResponse(domain.Failf("minimize_window is not supported by this server"))
	require.Len(t, resp.Content, 1)

	res := decodeEnvelope(t, resp.Content[0])
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "not supported")
}

func TestToResponseImage(t *testing.T) {
	in := domain.Ok("Captured", map[string]any{"width": 10})
	in.Screenshot = "aGVsbG8="
	in.Encoding = "base64"
	in.Content = []domain.ContentItem{{Type: domain.ContentKindImage, Data: "aGVsbG8=", MimeType: "image/jpeg"}}

	resp := ToResponse(in)
	require.Len(t, resp.Content, 2)

	res := decodeEnvelope(t, resp.Content[0])
	assert.True(t, res.Success)
	assert.Empty(t, res.Screenshot)
	assert.Empty(t, res.Content)

	require.NotNil(t, resp.Content[1].ImageContent)
	assert.Equal(t, "aGVsbG8=", resp.Content[1].ImageContent.Data)
	assert.Equal(t, "image/jpeg", resp.Content[1].ImageContent.MimeType)
}

func TestToResponseRawFallbackStaysText(t *testing.T) {
	in := domain.Ok("Captured (raw)", nil)
	in.Screenshot = "AAAA"
	in.Content = []domain.ContentItem{{Type: domain.ContentKindImage, Data: "AAAA", MimeType: "application/octet-stream"}}

	resp := ToResponse(in)
	require.Len(t, resp.Content, 1)
	assert.Equal(t, "AAAA", decodeEnvelope(t, resp.Content[0]).Screenshot)
}

func TestHandlerForInvokesDispatcher(t *testing.T) {
	cfg := config.DefaultConfig()
	desk := virtual.New()
	reader, err := desk.Metrics()
	require.NoError(t, err)
	p := automation.New(cfg, desk, reader, desk)

	d := handlers.NewDispatcher(cfg, func(context.Context) domain.AutomationProvider { return p })
	s := New(cfg.Server, d)

	tool, ok := d.Lookup("move_mouse")
	require.True(t, ok)

	fn := reflect.ValueOf(s.handlerFor(context.Background(), tool))
	require.Equal(t, reflect.Func, fn.Kind())
	require.Equal(t, tool.Args, fn.Type().In(0))

	x, y := 30.0, 40.0
	out := fn.Call([]reflect.Value{reflect.ValueOf(handlers.PointArgs{X: &x, Y: &y})})
	require.Len(t, out, 2)
	assert.True(t, out[1].IsNil())

	resp := out[0].Interface().(*mcp_golang.ToolResponse)
	res := decodeEnvelope(t, resp.Content[0])
	assert.True(t, res.Success, res.Message)
	assert.Contains(t, desk.Events(), "move 30,40")
}

func TestTransportSelection(t *testing.T) {
	s := New(config.ServerConfig{Transport: "carrier-pigeon"}, nil)
	_, err := s.transport()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")

	s = New(config.ServerConfig{}, nil)
	tr, err := s.transport()
	require.NoError(t, err)
	assert.NotNil(t, tr)
}

// blockingTransport serves until closed, like the HTTP transport
type blockingTransport struct {
	started chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newBlockingTransport() *blockingTransport {
	return &blockingTransport{started: make(chan struct{}), done: make(chan struct{})}
}

func (b *blockingTransport) Start(context.Context) error {
	close(b.started)
	<-b.done
	return nil
}

func (b *blockingTransport) Send(context.Context, *transport.BaseJsonRpcMessage) error { return nil }

func (b *blockingTransport) Close() error {
	b.once.Do(func() { close(b.done) })
	return nil
}

func (b *blockingTransport) SetCloseHandler(func())                                                 {}
func (b *blockingTransport) SetErrorHandler(func(error))                                            {}
func (b *blockingTransport) SetMessageHandler(func(context.Context, *transport.BaseJsonRpcMessage)) {}

func TestServeClosesTransportOnCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	d := handlers.NewDispatcher(cfg, func(context.Context) domain.AutomationProvider { return nil })
	s := New(cfg.Server, d)
	tr := newBlockingTransport()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.serve(ctx, tr)
	}()

	select {
	case <-tr.started:
	case <-time.After(5 * time.Second):
		t.Fatal("transport never started")
	}
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}

	select {
	case <-tr.done:
	default:
		t.Fatal("transport left open after cancel")
	}
}
