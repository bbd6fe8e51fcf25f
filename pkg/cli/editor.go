// Package cli implements a line editor that can be embedded in an event-driven
// program.
//
// An Editor owns the line being edited and the table of key bindings. It does
// not read the terminal on its own: the host watches the file descriptor
// reported to the Watcher and calls HandleIO when it is readable, or when the
// time reported by Deadline has passed.
package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"time"

	"src.elcc.sh/pkg/cli/histutil"
	"src.elcc.sh/pkg/cli/keymap"
	"src.elcc.sh/pkg/cli/tk"
	"src.elcc.sh/pkg/logutil"
	"src.elcc.sh/pkg/parse"
)

var logger = logutil.GetLogger("[cli] ")

// Errors returned by Editor methods.
var (
	ErrAlreadyStarted = errors.New("editor already started")
	ErrStopped        = errors.New("editor is stopped")
	ErrNoAsyncOutput  = errors.New("no async output to flush")
)

type editorState int

const (
	stopped editorState = iota
	editing
	disabled
)

// Editor is a line editor. Its methods must be called from one goroutine.
type Editor struct {
	name          string
	tty           TTY
	watcher       Watcher
	keySeqTimeout time.Duration
	clock         func() time.Time

	table *keymap.Table[Action]
	hist  *histutil.History

	prompt        Prompt
	lineConsumer  LineConsumer
	wordsConsumer WordsConsumer
	completer     Completer

	state   editorState
	restore func() error

	buf tk.LineBuffer
	// Bytes read but not yet resolved to an action.
	pending []byte
	// When waiting for the rest of a key sequence, the time to stop waiting.
	deadline time.Time
	lastSeq  string
	keyCount int
	arg      int
	argSet   bool
	// Whether the next character is to be inserted literally.
	quotedInsert bool
	killed       string

	asyncDepth int
	asyncBuf   bytes.Buffer
	// Notes to write above the line on the next redraw.
	notes []string
}

// NewEditor creates a new Editor. The name is used to select the
// configuration sections that apply to the editor. The Watcher may be nil.
func NewEditor(name string, w Watcher, spec EditorSpec) *Editor {
	if spec.TTY == nil {
		spec.TTY = NewTTY(os.Stdin, os.Stdout)
	}
	if spec.Store == nil {
		spec.Store = histutil.NewMemStore()
	}
	if spec.KeySeqTimeout == 0 {
		spec.KeySeqTimeout = DefaultKeySeqTimeout
	}
	if spec.Clock == nil {
		spec.Clock = time.Now
	}
	if w == nil {
		w = WatcherFunc(func(int, bool) {})
	}
	return &Editor{
		name:          name,
		tty:           spec.TTY,
		watcher:       w,
		keySeqTimeout: spec.KeySeqTimeout,
		clock:         spec.Clock,

		table: newTable(),
		hist:  histutil.NewHistory(spec.Store),

		prompt:        ConstPrompt(""),
		lineConsumer:  LineConsumerFunc(func(string, error) {}),
		wordsConsumer: WordsConsumerFunc(func([]string, error) {}),
	}
}

// Name returns the name the Editor was created with.
func (ed *Editor) Name() string { return ed.name }

// Start sets up the terminal, starts watching its input and draws the prompt.
func (ed *Editor) Start() error {
	if ed.state != stopped {
		return ErrAlreadyStarted
	}
	restore, err := ed.tty.Setup()
	if err != nil {
		return err
	}
	ed.restore = restore
	ed.state = editing
	ed.watcher.Watch(ed.tty.Fd(), true)
	ed.redraw(fullRedraw)
	return nil
}

// Close moves past the line being edited and restores the terminal. It does
// nothing if the Editor is not started.
func (ed *Editor) Close() error {
	if ed.state == stopped {
		return nil
	}
	return ed.stop()
}

func (ed *Editor) stop() error {
	ed.redraw(finalRedraw)
	ed.watcher.Watch(ed.tty.Fd(), false)
	ed.state = stopped
	ed.pending = nil
	ed.deadline = time.Time{}
	if ed.restore == nil {
		return nil
	}
	err := ed.restore()
	ed.restore = nil
	return err
}

// Stopped returns whether the Editor is stopped, either because it was never
// started, or because it was closed or met a fatal error.
func (ed *Editor) Stopped() bool { return ed.state == stopped }

// Enable resumes dispatching input after Disable, and redraws the line.
func (ed *Editor) Enable() {
	if ed.state != disabled {
		return
	}
	ed.state = editing
	ed.redraw(fullRedraw)
	ed.resolve()
}

// Disable erases the line from the terminal and stops dispatching input until
// Enable is called. Input is still read and kept.
func (ed *Editor) Disable() {
	if ed.state != editing {
		return
	}
	ed.erase()
	ed.state = disabled
}

// Refresh redraws the prompt and the line.
func (ed *Editor) Refresh() {
	ed.redraw(fullRedraw)
}

// SetPrompt sets a constant prompt.
func (ed *Editor) SetPrompt(s string) { ed.prompt = ConstPrompt(s) }

// SetPromptSource sets the Prompt that is asked for the prompt on every
// redraw.
func (ed *Editor) SetPromptSource(p Prompt) {
	if p == nil {
		p = ConstPrompt("")
	}
	ed.prompt = p
}

// SetLineConsumer sets the receiver of accepted lines.
func (ed *Editor) SetLineConsumer(c LineConsumer) {
	if c == nil {
		c = LineConsumerFunc(func(string, error) {})
	}
	ed.lineConsumer = c
}

// SetWordsConsumer sets the receiver of the words of accepted lines.
func (ed *Editor) SetWordsConsumer(c WordsConsumer) {
	if c == nil {
		c = WordsConsumerFunc(func([]string, error) {})
	}
	ed.wordsConsumer = c
}

// AddFunction registers a user function that can then be bound to key
// sequences. At most keymap.MaxFunctions user functions can be added.
func (ed *Editor) AddFunction(name, descr string, a Action) error {
	return ed.table.AddFunction(name, descr, a)
}

// Bind binds the key sequence to the named function. See ui.ParseSeq for the
// syntax of key.
func (ed *Editor) Bind(key, name string) error {
	return ed.table.Bind(key, name)
}

// Unbind removes the binding of a key sequence.
func (ed *Editor) Unbind(key string) error {
	return ed.table.Unbind(key)
}

// Bindings returns all key bindings, sorted by key sequence.
func (ed *Editor) Bindings() []keymap.Binding {
	return ed.table.Bindings()
}

// Functions returns all functions that can be bound, sorted by name.
func (ed *Editor) Functions() []keymap.Function[Action] {
	return ed.table.Functions()
}

// Line returns the line being edited.
func (ed *Editor) Line() string { return ed.buf.String() }

// CursorLine returns the part of the line before the cursor.
func (ed *Editor) CursorLine() string { return ed.buf.UpToCursor() }

// TokenizedLine splits the line into words, with the cursor mapped to the
// word it is in.
func (ed *Editor) TokenizedLine() parse.TokenLine {
	return parse.TokenizeAt(ed.buf.String(), ed.buf.Cursor())
}

// Cursor returns the position of the cursor, in characters.
func (ed *Editor) Cursor() int { return ed.buf.Cursor() }

// KeyCount returns how many times in a row the key sequence that invoked the
// current action has been resolved. The count starts over for each new line
// and when a different sequence is resolved. It is not reset by HandleIO, so a
// repeated key counts as a repeat even when the two presses arrive in separate
// reads.
func (ed *Editor) KeyCount() int { return ed.keyCount }

// Argument returns the numeric argument for the current action, 1 if none
// was given.
func (ed *Editor) Argument() int {
	if !ed.argSet {
		return 1
	}
	return ed.arg
}

// History returns the history of the Editor.
func (ed *Editor) History() *histutil.History { return ed.hist }

// Insert inserts text at the cursor and moves the cursor after it.
func (ed *Editor) Insert(text string) { ed.buf.Insert(text) }

// Delete deletes up to n characters before the cursor and returns them.
// Nothing is deleted when n is not positive.
func (ed *Editor) Delete(n int) string {
	if n <= 0 {
		return ""
	}
	return ed.buf.DeleteRange(ed.buf.Cursor()-n, ed.buf.Cursor())
}

// MoveCursor moves the cursor by delta characters. The cursor stays within
// the line.
func (ed *Editor) MoveCursor(delta int) {
	ed.buf.MoveCursor(ed.buf.Cursor() + delta)
}

// SetLine replaces the line and moves the cursor to its end.
func (ed *Editor) SetLine(text string) { ed.buf.Set(text) }

// Deadline returns the time at which the Editor stops waiting for the rest of
// a key sequence. The host should call HandleIO at that time even if no input
// is available. The boolean is false when the Editor is not waiting.
func (ed *Editor) Deadline() (time.Time, bool) {
	return ed.deadline, !ed.deadline.IsZero()
}

// AsyncOutput suspends redraws and returns a Writer for output that is to
// appear above the line. Calls may nest; each must be paired with a call to
// AsyncOutputFlush.
func (ed *Editor) AsyncOutput() io.Writer {
	ed.asyncDepth++
	return &ed.asyncBuf
}

// AsyncOutputFlush ends one AsyncOutput. When the outermost one ends, the
// output written so far is written above the line, and the prompt and the
// line are drawn again below it.
func (ed *Editor) AsyncOutputFlush() error {
	if ed.asyncDepth == 0 {
		return ErrNoAsyncOutput
	}
	ed.asyncDepth--
	if ed.asyncDepth > 0 || ed.asyncBuf.Len() == 0 {
		return nil
	}
	notes := splitNotes(ed.asyncBuf.String())
	ed.asyncBuf.Reset()
	return ed.writeNotes(notes)
}

// Notify writes a note above the line on the next redraw.
func (ed *Editor) Notify(note string) {
	ed.notes = append(ed.notes, splitNotes(note)...)
}

func (ed *Editor) resetLine() {
	ed.buf.Clear()
	ed.hist.Reset()
	ed.lastSeq = ""
	ed.keyCount = 0
	ed.arg, ed.argSet = 0, false
	ed.quotedInsert = false
}

func (ed *Editor) acceptLine() {
	line := ed.buf.String()
	tl := parse.Tokenize(line)
	ed.redraw(finalRedraw)
	if err := ed.hist.Add(line); err != nil {
		logger.Println("failed to add to history:", err)
	}
	ed.resetLine()

	ed.lineConsumer.ConsumeLine(line, nil)
	if tl.Err == parse.OK {
		ed.wordsConsumer.ConsumeWords(tl.Words, nil)
	} else {
		logger.Printf("not passing words of %q: %v", line, tl.Err)
		ed.tty.Beep()
	}
	ed.redraw(fullRedraw)
}

func (ed *Editor) acceptEOF() {
	ed.redraw(finalRedraw)
	ed.resetLine()
	ed.lineConsumer.ConsumeLine("", io.EOF)
	ed.wordsConsumer.ConsumeWords(nil, io.EOF)
	ed.redraw(fullRedraw)
}
