package cli

import (
	"time"

	"src.elcc.sh/pkg/cli/histutil"
)

// EditorSpec specifies the configuration of an Editor. All fields are
// optional.
type EditorSpec struct {
	// Terminal to edit on. Defaults to the terminal on stdin and stdout.
	TTY TTY
	// Store for the history. Defaults to an in-memory store.
	Store histutil.Store
	// How long to wait for the rest of a key sequence when the input so far
	// is a prefix of a bound sequence. Defaults to DefaultKeySeqTimeout.
	KeySeqTimeout time.Duration
	// Source of the current time. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultKeySeqTimeout is the default value of EditorSpec.KeySeqTimeout.
const DefaultKeySeqTimeout = 100 * time.Millisecond

// Prompt produces the prompt written before the line.
type Prompt interface {
	Prompt() string
}

// PromptFunc adapts a function to a Prompt.
type PromptFunc func() string

// Prompt calls f.
func (f PromptFunc) Prompt() string { return f() }

// ConstPrompt returns a Prompt that always produces s.
func ConstPrompt(s string) Prompt { return PromptFunc(func() string { return s }) }

// LineConsumer receives accepted lines, without the trailing newline. At the
// end of input, it is called with an empty line and io.EOF.
type LineConsumer interface {
	ConsumeLine(line string, err error)
}

// LineConsumerFunc adapts a function to a LineConsumer.
type LineConsumerFunc func(line string, err error)

// ConsumeLine calls f.
func (f LineConsumerFunc) ConsumeLine(line string, err error) { f(line, err) }

// WordsConsumer receives accepted lines split into words. At the end of
// input, it is called with nil words and io.EOF.
type WordsConsumer interface {
	ConsumeWords(words []string, err error)
}

// WordsConsumerFunc adapts a function to a WordsConsumer.
type WordsConsumerFunc func(words []string, err error)

// ConsumeWords calls f.
func (f WordsConsumerFunc) ConsumeWords(words []string, err error) { f(words, err) }

// Completer returns the candidates that the word at index current of words
// can be completed to. When the cursor is after the last word, words ends
// with an empty word.
type Completer interface {
	Complete(words []string, current int) []string
}

// CompleterFunc adapts a function to a Completer.
type CompleterFunc func(words []string, current int) []string

// Complete calls f.
func (f CompleterFunc) Complete(words []string, current int) []string {
	return f(words, current)
}

// Action is an editing action bound to key sequences. key is the last
// character of the sequence that invoked it.
type Action interface {
	Invoke(ed *Editor, key rune) Outcome
}

// ActionFunc adapts a function to an Action.
type ActionFunc func(ed *Editor, key rune) Outcome

// Invoke calls f.
func (f ActionFunc) Invoke(ed *Editor, key rune) Outcome { return f(ed, key) }

// Watcher is notified when the Editor starts and stops being interested in
// its input file descriptor becoming readable. The host should call
// Editor.HandleIO whenever a watched file descriptor is readable.
type Watcher interface {
	Watch(fd int, on bool)
}

// WatcherFunc adapts a function to a Watcher.
type WatcherFunc func(fd int, on bool)

// Watch calls f.
func (f WatcherFunc) Watch(fd int, on bool) { f(fd, on) }
