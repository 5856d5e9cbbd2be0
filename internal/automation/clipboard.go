package automation

import (
	"context"
	"fmt"

	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
)

// GetClipboardContent returns the clipboard text
func (p *Provider) GetClipboardContent(ctx context.Context) domain.Result {
	text, err := p.clipboard.ReadText(ctx)
	if err != nil {
		return backendFailure(ctx, "Failed to read clipboard", err)
	}

	return domain.Ok("Clipboard content retrieved", map[string]any{
		"text": text,
	})
}

// SetClipboardContent replaces the clipboard text
func (p *Provider) SetClipboardContent(ctx context.Context, text string) domain.Result {
	if err := p.clipboard.WriteText(ctx, text); err != nil {
		return backendFailure(ctx, "Failed to write clipboard", err)
	}

	n := len([]rune(text))
	return domain.Ok(fmt.Sprintf("Clipboard set (%d characters)", n), map[string]any{
		"length": n,
	})
}

// HasClipboardText reports whether the clipboard holds non-empty text
func (p *Provider) HasClipboardText(ctx context.Context) domain.Result {
	text, err := p.clipboard.ReadText(ctx)
	if err != nil {
		return backendFailure(ctx, "Failed to read clipboard", err)
	}

	has := text != ""
	message := "Clipboard is empty"
	if has {
		message = "Clipboard contains text"
	}
	return domain.Ok(message, map[string]any{
		"hasText": has,
	})
}

// ClearClipboard empties the clipboard
func (p *Provider) ClearClipboard(ctx context.Context) domain.Result {
	if err := p.clipboard.WriteText(ctx, ""); err != nil {
		return backendFailure(ctx, "Failed to clear clipboard", err)
	}

	return domain.Ok("Clipboard cleared", nil)
}
