//go:build unix

package cli

import (
	"fmt"
	"os"

	xterm "golang.org/x/term"

	"src.elcc.sh/pkg/errutil"
	"src.elcc.sh/pkg/sys/eunix"
)

const (
	// Disable autowrap; term.BufferBuilder wraps lines itself.
	disableAutowrap = "\033[?7l"
	enableAutowrap  = "\033[?7h"
)

// Puts the terminal into the mode the editor reads in. The restore function
// puts it back into the state it was in before.
func setup(in, out *os.File) (func() error, error) {
	fd := int(in.Fd())
	state, err := xterm.GetState(fd)
	if err != nil {
		return nil, fmt.Errorf("can't get terminal state: %w", err)
	}
	termios, err := eunix.TermiosForFd(fd)
	if err != nil {
		return nil, fmt.Errorf("can't get terminal attribute: %w", err)
	}

	// Unlike the raw mode of golang.org/x/term, output processing is kept so
	// that "\n" still moves to the start of the next line.
	termios.SetICanon(false)
	termios.SetIExten(false)
	termios.SetEcho(false)
	termios.SetISig(false)
	termios.SetIXon(false)
	termios.SetICRNL(true)
	termios.SetVMin(0)
	termios.SetVTime(0)

	err = termios.ApplyToFd(fd)
	if err != nil {
		return nil, fmt.Errorf("can't set up terminal attribute: %w", err)
	}

	_, err = out.WriteString(disableAutowrap)

	restore := func() error {
		_, err1 := out.WriteString(enableAutowrap)
		return errutil.Multi(err1, xterm.Restore(fd, state))
	}
	if err != nil {
		return nil, errutil.Multi(err, restore())
	}
	return restore, nil
}
