// Package clitest provides a fake terminal for testing the line editor.
package clitest

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.elcc.sh/pkg/cli"
	"src.elcc.sh/pkg/cli/term"
)

// FakeFd is the file descriptor reported by the fake terminal.
const FakeFd = 1000

// Initial size of fake TTY.
const (
	FakeTTYHeight = 20
	FakeTTYWidth  = 50
)

// An implementation of the cli.TTY interface that is useful in tests.
type fakeTTY struct {
	mutex sync.Mutex
	setup func() (func() error, error)
	// Input not yet read.
	input []byte
	// Error returned by Read once input is exhausted.
	readErr error
	// Records of all buffers written, with nil for every ResetBuffer.
	bufs []*term.Buffer
	// Whether each buffer in bufs was written with a full refresh.
	fulls []bool
	// Current buffer.
	buf *term.Buffer
	// All notes written so far.
	notes []string
	// Number of times the terminal has beeped.
	beeps int
	// Number of times the screen has been cleared.
	cleared int

	height, width int
}

// NewFakeTTY creates a new FakeTTY and a handle for controlling it. The initial
// size of the terminal is FakeTTYHeight and FakeTTYWidth.
func NewFakeTTY() (cli.TTY, TTYCtrl) {
	tty := &fakeTTY{buf: &term.Buffer{}, height: FakeTTYHeight, width: FakeTTYWidth}
	return tty, TTYCtrl{tty}
}

// Delegates to the setup function specified using the SetSetup method of
// TTYCtrl, or return a nop function and a nil error.
func (t *fakeTTY) Setup() (func() error, error) {
	if t.setup == nil {
		return func() error { return nil }, nil
	}
	return t.setup()
}

func (t *fakeTTY) Fd() int { return FakeFd }

// Returns injected input. It returns 0 and a nil error when there is none,
// unless an error has been set with SetReadError.
func (t *fakeTTY) Read(p []byte) (int, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if len(t.input) == 0 {
		return 0, t.readErr
	}
	n := copy(p, t.input)
	t.input = t.input[n:]
	return n, nil
}

// Returns the size specified by using the SetSize method of TTYCtrl.
func (t *fakeTTY) Size() (h, w int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.height, t.width
}

func (t *fakeTTY) Beep() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.beeps++
}

func (t *fakeTTY) Buffer() *term.Buffer {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.buf
}

// Records a nil buffer.
func (t *fakeTTY) ResetBuffer() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.bufs = append(t.bufs, nil)
	t.fulls = append(t.fulls, false)
	t.buf = &term.Buffer{}
}

// Records the buffer and the notes.
func (t *fakeTTY) UpdateBuffer(notes []string, buf *term.Buffer, full bool) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.notes = append(t.notes, notes...)
	t.bufs = append(t.bufs, buf)
	t.fulls = append(t.fulls, full || len(notes) > 0)
	t.buf = buf
	return nil
}

func (t *fakeTTY) ClearScreen() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.cleared++
	t.buf = &term.Buffer{}
}

// TTYCtrl is an interface for controlling a fake terminal.
type TTYCtrl struct{ *fakeTTY }

// GetTTYCtrl takes a TTY and returns a TTYCtrl and true, if the TTY is a fake
// terminal. Otherwise it returns an invalid TTYCtrl and false.
func GetTTYCtrl(t cli.TTY) (TTYCtrl, bool) {
	fake, ok := t.(*fakeTTY)
	return TTYCtrl{fake}, ok
}

// SetSetup sets the return values of the Setup method of the fake terminal.
func (t TTYCtrl) SetSetup(restore func() error, err error) {
	t.setup = func() (func() error, error) {
		return restore, err
	}
}

// SetSize sets the size of the fake terminal.
func (t TTYCtrl) SetSize(h, w int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.height, t.width = h, w
}

// Inject appends input to be read from the fake terminal.
func (t TTYCtrl) Inject(input string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.input = append(t.input, input...)
}

// SetReadError sets the error returned by reads once the input is exhausted.
func (t TTYCtrl) SetReadError(err error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.readErr = err
}

// Unread returns the input that has not been read.
func (t TTYCtrl) Unread() string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return string(t.input)
}

// BufferHistory returns all buffers that have been written, with nil for
// every ResetBuffer.
func (t TTYCtrl) BufferHistory() []*term.Buffer {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return append([]*term.Buffer(nil), t.bufs...)
}

// LastBuffer returns the last buffer that has been written, skipping resets.
// It returns nil if no buffer has been written.
func (t TTYCtrl) LastBuffer() *term.Buffer {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	for i := len(t.bufs) - 1; i >= 0; i-- {
		if t.bufs[i] != nil {
			return t.bufs[i]
		}
	}
	return nil
}

// LastFull returns whether the last buffer was written with a full refresh.
func (t TTYCtrl) LastFull() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	for i := len(t.bufs) - 1; i >= 0; i-- {
		if t.bufs[i] != nil {
			return t.fulls[i]
		}
	}
	return false
}

// Notes returns all notes that have been written.
func (t TTYCtrl) Notes() []string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return append([]string(nil), t.notes...)
}

// Beeps returns the number of times the terminal has beeped.
func (t TTYCtrl) Beeps() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.beeps
}

// ScreenCleared returns the number of times ClearScreen has been called on the
// TTY.
func (t TTYCtrl) ScreenCleared() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.cleared
}

// TestBuffer verifies that the last buffer written is b.
func (t TTYCtrl) TestBuffer(tt *testing.T, b *term.Buffer) {
	tt.Helper()
	if diff := cmp.Diff(b, t.LastBuffer()); diff != "" {
		tt.Errorf("last buffer (-want +got):\n%s", diff)
	}
}

// TestNotes verifies that the notes written so far are notes.
func (t TTYCtrl) TestNotes(tt *testing.T, notes ...string) {
	tt.Helper()
	if diff := cmp.Diff(notes, t.Notes()); diff != "" {
		tt.Errorf("notes (-want +got):\n%s", diff)
	}
}
