// Package sys provides system utilities used by the terminal layer.
//
// The subpackage eunix provides Unix-specific utilities.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

const sigsChanBufferSize = 16

// NotifySignals returns a channel on which the signals relevant to an
// interactive line editor get delivered.
func NotifySignals() chan os.Signal { return notifySignals() }

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
