package clitest

import (
	"errors"
	"io"
	"testing"
	"time"

	"src.elcc.sh/pkg/cli"
	"src.elcc.sh/pkg/cli/term"
)

// TestPrompt is the prompt of the Editor created by Setup.
const TestPrompt = "> "

// Fixture is a test fixture for an Editor running on a fake terminal.
type Fixture struct {
	Editor *cli.Editor
	TTY    TTYCtrl
	// Time reported to the Editor as the current time.
	Now time.Time
	// Lines and words passed to the consumers of the Editor.
	Lines []string
	Words [][]string
	// Number of times the consumers have been called with io.EOF.
	EOFs int
	// File descriptors the Editor is watching.
	Watched map[int]bool
	// Number of times the terminal has been restored.
	Restored int
}

// Option configures a Fixture.
type Option func(*cli.EditorSpec, TTYCtrl)

// WithSpec returns an Option that modifies the EditorSpec.
func WithSpec(f func(*cli.EditorSpec)) Option {
	return func(spec *cli.EditorSpec, _ TTYCtrl) { f(spec) }
}

// WithTTY returns an Option that modifies the fake terminal.
func WithTTY(f func(TTYCtrl)) Option {
	return func(_ *cli.EditorSpec, tty TTYCtrl) { f(tty) }
}

// Setup creates a new Fixture, with an Editor named "test" that has been
// started, showing the prompt "> ". The Editor is closed when the test
// finishes.
func Setup(t *testing.T, opts ...Option) *Fixture {
	t.Helper()
	tty, ttyCtrl := NewFakeTTY()
	f := &Fixture{
		TTY:     ttyCtrl,
		Now:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Watched: map[int]bool{},
	}
	ttyCtrl.SetSetup(func() error { f.Restored++; return nil }, nil)
	spec := cli.EditorSpec{TTY: tty, Clock: func() time.Time { return f.Now }}
	for _, opt := range opts {
		opt(&spec, ttyCtrl)
	}

	f.Editor = cli.NewEditor("test", cli.WatcherFunc(func(fd int, on bool) {
		f.Watched[fd] = on
	}), spec)
	f.Editor.SetPrompt(TestPrompt)
	f.Editor.SetLineConsumer(cli.LineConsumerFunc(func(line string, err error) {
		if errors.Is(err, io.EOF) {
			f.EOFs++
			return
		}
		f.Lines = append(f.Lines, line)
	}))
	f.Editor.SetWordsConsumer(cli.WordsConsumerFunc(func(words []string, err error) {
		if err == nil {
			f.Words = append(f.Words, words)
		}
	}))
	if err := f.Editor.Start(); err != nil {
		t.Fatalf("Start -> %v", err)
	}
	t.Cleanup(func() { f.Editor.Close() })
	return f
}

// Feed makes input available on the terminal and calls HandleIO.
func (f *Fixture) Feed(t *testing.T, input string) {
	t.Helper()
	f.TTY.Inject(input)
	if err := f.Editor.HandleIO(); err != nil {
		t.Fatalf("HandleIO -> %v", err)
	}
}

// Advance moves the time reported to the Editor forward by d and calls
// HandleIO.
func (f *Fixture) Advance(t *testing.T, d time.Duration) {
	t.Helper()
	f.Now = f.Now.Add(d)
	if err := f.Editor.HandleIO(); err != nil {
		t.Fatalf("HandleIO -> %v", err)
	}
}

// TestLine checks the line being edited and the cursor position.
func (f *Fixture) TestLine(t *testing.T, line string, cursor int) {
	t.Helper()
	if got := f.Editor.Line(); got != line {
		t.Errorf("Line -> %q, want %q", got, line)
	}
	if got := f.Editor.Cursor(); got != cursor {
		t.Errorf("Cursor -> %d, want %d", got, cursor)
	}
}

// MakeBuffer returns the buffer showing the prompt and line on the fake
// terminal, with the cursor before the character at index cursor. It does not
// handle lines that wrap.
func MakeBuffer(line string, cursor int) *term.Buffer {
	rs := []rune(line)
	return term.NewBufferBuilder(FakeTTYWidth).
		Write(TestPrompt + string(rs[:cursor])).SetDotHere().
		Write(string(rs[cursor:])).Buffer()
}
