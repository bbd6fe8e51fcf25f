package cli

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Size of the buffer HandleIO reads into. HandleIO keeps reading while reads
// fill the buffer.
const readBufferSize = 256

// HandleIO reads all available input and dispatches the key sequences in it.
// It should be called when the file descriptor passed to the Watcher is
// readable, and when the time reported by Deadline has passed.
//
// When the input so far is a prefix of a bound sequence, HandleIO waits for
// more input until the deadline. If the deadline passes with no bound
// sequence matched, the first character is handled as unbound: a printable
// character is inserted, and anything else, such as a lone escape, goes to
// ed-unassigned, which beeps and drops the pending input.
//
// A read error stops the Editor and is returned.
func (ed *Editor) HandleIO() error {
	if ed.state == stopped {
		return ErrStopped
	}
	var buf [readBufferSize]byte
	for {
		n, err := ed.tty.Read(buf[:])
		ed.pending = append(ed.pending, buf[:n]...)
		if err != nil {
			logger.Println("read error:", err)
			ed.react(Fatal, 0)
			return fmt.Errorf("read terminal: %w", err)
		}
		if n < len(buf) {
			break
		}
	}
	ed.resolve()
	return nil
}

// Dispatches as many key sequences of the pending input as can be resolved.
func (ed *Editor) resolve() {
	for len(ed.pending) > 0 && ed.state == editing {
		if ed.quotedInsert {
			r, size, valid, ok := ed.nextRune()
			if !ok {
				return
			}
			ed.consume(size)
			ed.quotedInsert = false
			ed.lastSeq, ed.keyCount = "", 0
			if !valid {
				ed.react(Error, r)
				continue
			}
			ed.buf.Insert(strings.Repeat(string(r), ed.Argument()))
			ed.react(Refresh, r)
			continue
		}

		m := ed.table.Lookup(ed.pending)
		if m.Ambiguous && ed.wait() {
			return
		}
		if m.Len > 0 {
			ed.dispatch(m.Len, m.Name)
			continue
		}
		r, size, valid, ok := ed.nextRune()
		if !ok {
			return
		}
		if valid && unicode.IsPrint(r) {
			ed.dispatch(size, "ed-insert")
		} else {
			ed.dispatch(size, "ed-unassigned")
		}
	}
	if len(ed.pending) == 0 {
		ed.deadline = time.Time{}
	}
}

// Reports whether to keep waiting for more input, starting the wait if it has
// not started.
func (ed *Editor) wait() bool {
	now := ed.clock()
	if ed.deadline.IsZero() {
		ed.deadline = now.Add(ed.keySeqTimeout)
	}
	return now.Before(ed.deadline)
}

// Decodes the first character of the pending input. ok is false when the
// character is incomplete and the Editor should wait for the rest of it.
// Bytes that are not valid UTF-8 are returned one at a time with valid set to
// false.
func (ed *Editor) nextRune() (r rune, size int, valid, ok bool) {
	r, size = utf8.DecodeRune(ed.pending)
	if r != utf8.RuneError || size > 1 {
		return r, size, true, true
	}
	if !utf8.FullRune(ed.pending) && ed.wait() {
		return 0, 0, false, false
	}
	return utf8.RuneError, 1, false, true
}

func (ed *Editor) consume(n int) string {
	seq := string(ed.pending[:n])
	ed.pending = ed.pending[n:]
	ed.deadline = time.Time{}
	return seq
}

func (ed *Editor) dispatch(n int, name string) {
	seq := ed.consume(n)
	if seq == ed.lastSeq {
		ed.keyCount++
	} else {
		ed.lastSeq, ed.keyCount = seq, 1
	}
	key, _ := utf8.DecodeLastRuneInString(seq)

	fn, ok := ed.table.Function(name)
	if !ok {
		logger.Printf("%q is bound to unknown function %s", seq, name)
		ed.react(Error, key)
		return
	}
	ed.react(fn.Action.Invoke(ed, key), key)
}

func (ed *Editor) react(o Outcome, key rune) {
	switch o {
	case Normal:
		if key != utf8.RuneError {
			ed.buf.Insert(strings.Repeat(string(key), ed.Argument()))
		}
		ed.redraw(0)
	case Newline:
		ed.acceptLine()
	case EOF:
		ed.acceptEOF()
	case ArgHack:
		return
	case Refresh, Cursor:
		ed.redraw(0)
	case Redisplay:
		ed.redraw(fullRedraw)
	case RefreshBeep:
		ed.redraw(0)
		ed.tty.Beep()
	case Error:
		ed.tty.Beep()
		ed.pending = nil
		ed.deadline = time.Time{}
	case Fatal:
		if err := ed.stop(); err != nil {
			logger.Println("failed to restore terminal:", err)
		}
	default:
		logger.Println("unknown outcome:", o)
		ed.tty.Beep()
	}
	ed.arg, ed.argSet = 0, false
}
