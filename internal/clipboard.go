package internal

import "github.com/atotto/clipboard"

// ClipboardReader returns the current clipboard text
type ClipboardReader interface {
	ReadAll() (string, error)
}

// SystemClipboard reads the OS clipboard
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", nil
	}
	return clipboard.ReadAll()
}
