package cli

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"

	"src.elcc.sh/pkg/cli/term"
	"src.elcc.sh/pkg/sys"
)

// TTY is the type the terminal dependency of the editor needs to satisfy.
type TTY interface {
	// Setup sets up the terminal for the editor.
	//
	// This method returns a restore function that undoes the setup, and any
	// error during setup. It should be called before any other method is
	// called.
	Setup() (restore func() error, err error)

	// Fd returns the file descriptor input is read from.
	Fd() int
	// Read reads the input that is available without blocking. It returns 0
	// and a nil error when no input is available.
	Read(p []byte) (int, error)

	// Size returns the height and width of the terminal.
	Size() (h, w int)
	// Beep alerts the user.
	Beep()

	term.Writer
}

// ErrNotTerminal is returned by the Setup method of the TTY returned by
// NewTTY when its input is not a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

type aTTY struct {
	in, out *os.File
	term.Writer
}

// NewTTY returns a new TTY from input and output terminal files.
func NewTTY(in, out *os.File) TTY {
	return &aTTY{in, out, term.NewWriter(out)}
}

func (t *aTTY) Setup() (func() error, error) {
	if !sys.IsATTY(t.in.Fd()) {
		return nil, ErrNotTerminal
	}
	return setup(t.in, t.out)
}

func (t *aTTY) Fd() int { return int(t.in.Fd()) }

func (t *aTTY) Read(p []byte) (int, error) {
	// The terminal is set up with VMIN = VTIME = 0, so a read returns 0
	// immediately when there is no input. os.File.Read would turn that into
	// io.EOF.
	n, err := unix.Read(t.Fd(), p)
	if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
		return 0, nil
	}
	if n < 0 {
		n = 0
	}
	return n, err
}

func (t *aTTY) Size() (h, w int) {
	w, h, err := xterm.GetSize(int(t.out.Fd()))
	if err != nil {
		return 24, 80
	}
	return h, w
}

func (t *aTTY) Beep() {
	t.out.WriteString("\a")
}
