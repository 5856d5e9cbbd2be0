//go:build cgo || windows

package clipboard

import (
	xclipboard "golang.design/x/clipboard"
)

func nativeInit() error {
	return xclipboard.Init()
}

func nativeReadText() []byte {
	return xclipboard.Read(xclipboard.FmtText)
}

// the returned channel only fires when another program takes ownership
func nativeWriteText(data []byte) {
	_ = xclipboard.Write(xclipboard.FmtText, data)
}
