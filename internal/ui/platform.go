package ui

import (
	"fmt"
	"runtime"

	"github.com/atotto/clipboard"
)

// copyToClipboardFn is the active clipboard implementation. Tests replace
// it via StubPlatformActions to prevent side effects.
var copyToClipboardFn = copyToClipboardImpl

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) error { return copyToClipboardFn(text) }

// StubPlatformActions replaces the clipboard with a recorder and returns a
// restore function.
func StubPlatformActions() (restore func()) {
	orig := copyToClipboardFn
	copyToClipboardFn = func(text string) error {
		lastCopied = text
		return nil
	}
	return func() { copyToClipboardFn = orig }
}

// lastCopied holds the text most recently written by the stubbed clipboard.
var lastCopied string

// copyToClipboardImpl writes through pbcopy, xclip/xsel/wl-copy or the
// Windows clipboard, whichever the platform provides.
func copyToClipboardImpl(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard available on %s", runtime.GOOS)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
