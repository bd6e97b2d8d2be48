package demo

import (
	"errors"

	"github.com/atotto/clipboard"
)

var errNoClipboard = errors.New("no clipboard tool found (install xclip, xsel or wl-clipboard)")

// copyToClipboard copies text to the system clipboard.
func copyToClipboard(text string) error {
	if clipboard.Unsupported {
		return errNoClipboard
	}
	return clipboard.WriteAll(text)
}
