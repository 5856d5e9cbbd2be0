package server

import (
	"encoding/json"
	"strings"

	mcp_golang "github.com/metoro-io/mcp-golang"

	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
)

// ToResponse renders an envelope as MCP content: the envelope as JSON text,
// followed by an image item when the result carries an encoded image. The
// base64 payload is not repeated in the text.
func ToResponse(res domain.Result) *mcp_golang.ToolResponse {
	img, ok := res.Image()
	if !ok || !strings.HasPrefix(img.MimeType, "image/") {
		return mcp_golang.NewToolResponse(mcp_golang.NewTextContent(envelopeJSON(res)))
	}

	text := res
	text.Screenshot = ""
	text.Content = nil
	return mcp_golang.NewToolResponse(
		mcp_golang.NewTextContent(envelopeJSON(text)),
		mcp_golang.NewImageContent(img.Data, img.MimeType),
	)
}

func envelopeJSON(res domain.Result) string {
	b, err := json.Marshal(res)
	if err != nil {
		b, _ = json.Marshal(domain.Fail("Failed to encode result", err))
	}
	return string(b)
}
