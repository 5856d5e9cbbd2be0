package robot

import (
	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
)

// robotgo spells a few keys differently from the canonical names
var keyNames = map[string]string{
	domain.KeyEscape:  "esc",
	domain.KeyControl: "ctrl",
	domain.KeyCommand: "cmd",
}

func keyName(key string) string {
	if name, ok := keyNames[key]; ok {
		return name
	}
	return key
}
