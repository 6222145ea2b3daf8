// Package clip wraps clipboard access for the yank command, degrading
// gracefully when no clipboard provider is available in the current
// environment (e.g. headless CI, a bare tty with no X11/wayland/pbcopy
// backend).
package clip

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned by Write when the platform has no usable
// clipboard provider.
var ErrUnavailable = errors.New("No clipboard provider!")

// Write copies text to the system clipboard.
func Write(text string) error {
	if !clipboard.Unsupported {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrUnavailable
		}
		return nil
	}
	return ErrUnavailable
}
