package x11

import (
	"context"
	"fmt"
	"strings"

	xproto "github.com/BurntSushi/xgb/xproto"
	ewmh "github.com/BurntSushi/xgbutil/ewmh"
	icccm "github.com/BurntSushi/xgbutil/icccm"
	xwindow "github.com/BurntSushi/xgbutil/xwindow"

	display "github.com/inference-gateway/desktop-mcp/internal/display"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
)

// ListWindows returns the window manager's client list
func (c *Client) ListWindows(context.Context) ([]display.WindowHandle, error) {
	clients, err := ewmh.ClientListGet(c.xu)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}

	handles := make([]display.WindowHandle, 0, len(clients))
	for _, win := range clients {
		handles = append(handles, display.WindowHandle(win))
	}
	return handles, nil
}

// WindowTitle prefers _NET_WM_NAME and falls back to WM_NAME
func (c *Client) WindowTitle(_ context.Context, h display.WindowHandle) (string, error) {
	win := xproto.Window(h)

	title, err := ewmh.WmNameGet(c.xu, win)
	if err == nil && strings.TrimSpace(title) != "" {
		return title, nil
	}

	title, err2 := icccm.WmNameGet(c.xu, win)
	if err2 == nil {
		return title, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get window title: %w", err)
	}
	return "", nil
}

// WindowClass returns the WM_CLASS class part
func (c *Client) WindowClass(_ context.Context, h display.WindowHandle) (string, error) {
	wmClass, err := icccm.WmClassGet(c.xu, xproto.Window(h))
	if err != nil {
		return "", fmt.Errorf("failed to get window class: %w", err)
	}
	return strings.TrimSpace(wmClass.Class), nil
}

// WindowRect returns the client area in root coordinates
func (c *Client) WindowRect(_ context.Context, h display.WindowHandle) (display.Rect, error) {
	win := xproto.Window(h)

	geom, err := xproto.GetGeometry(c.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return display.Rect{}, fmt.Errorf("failed to get window geometry: %w", err)
	}

	translate, err := xproto.TranslateCoordinates(c.conn, win, c.screen.Root, 0, 0).Reply()
	if err != nil {
		return display.Rect{}, fmt.Errorf("failed to translate window coordinates: %w", err)
	}

	return display.Rect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// ActiveWindow returns _NET_ACTIVE_WINDOW
func (c *Client) ActiveWindow(context.Context) (display.WindowHandle, error) {
	win, err := ewmh.ActiveWindowGet(c.xu)
	if err != nil {
		return 0, fmt.Errorf("failed to get active window: %w", err)
	}
	return display.WindowHandle(win), nil
}

// FocusWindow activates and raises a window using _NET_ACTIVE_WINDOW.
// The client message is built by hand since some xgbutil releases panic in
// the ewmh request helpers.
func (c *Client) FocusWindow(_ context.Context, h display.WindowHandle) error {
	atomReply, err := xproto.InternAtom(c.conn, false,
		uint16(len("_NET_ACTIVE_WINDOW")), "_NET_ACTIVE_WINDOW").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(h),
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}

	err = xproto.SendEventChecked(
		c.conn,
		false,
		c.screen.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
	if err != nil {
		return fmt.Errorf("failed to activate window: %w", err)
	}
	return nil
}

// SetWindowRect moves and resizes a window, un-maximizing it first
func (c *Client) SetWindowRect(_ context.Context, h display.WindowHandle, r display.Rect) error {
	win := xproto.Window(h)

	if err := c.unmaximize(win); err != nil {
		logger.Debug("Could not read window state", "window", win, "error", err)
	}

	if err := ewmh.MoveresizeWindow(c.xu, win, r.X, r.Y, r.Width, r.Height); err != nil {
		xwindow.New(c.xu, win).MoveResize(r.X, r.Y, r.Width, r.Height)
	}

	c.conn.Sync()
	return nil
}

// unmaximize removes maximized state, which would make the window manager
// ignore geometry requests
func (c *Client) unmaximize(win xproto.Window) error {
	states, err := ewmh.WmStateGet(c.xu, win)
	if err != nil {
		return err
	}

	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" || state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			_ = ewmh.WmStateReq(c.xu, win, ewmh.StateRemove, state)
		}
	}
	return nil
}
