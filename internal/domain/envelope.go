package domain

import "fmt"

// ContentKindImage tags a content item carrying base64 image data
const ContentKindImage = "image"

// Result is the uniform envelope every automation operation returns.
// A failed result never carries Data.
type Result struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	Data       map[string]any `json:"data,omitempty"`
	Screenshot string         `json:"screenshot,omitempty"`
	Encoding   string         `json:"encoding,omitempty"`
	Content    []ContentItem  `json:"content,omitempty"`
}

// ContentItem is a structured payload attached to a result, e.g. an image
type ContentItem struct {
	Type     string `json:"type"`
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// Ok builds a successful result
func Ok(message string, data map[string]any) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Fail builds a failed result. The upstream error text is appended to the
// message when err is non-nil.
func Fail(message string, err error) Result {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	return Result{Success: false, Message: message}
}

// Failf builds a failed result from a format string
func Failf(format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// Image returns the first image content item, if any
func (r Result) Image() (ContentItem, bool) {
	for _, c := range r.Content {
		if c.Type == ContentKindImage {
			return c, true
		}
	}
	return ContentItem{}, false
}
