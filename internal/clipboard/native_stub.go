//go:build !cgo && !windows

package clipboard

import "errors"

func nativeInit() error {
	return errors.New("clipboard support requires cgo on this platform")
}

func nativeReadText() []byte {
	return nil
}

func nativeWriteText([]byte) {}
