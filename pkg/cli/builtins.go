package cli

import (
	"errors"
	"unicode/utf8"

	"src.elcc.sh/pkg/cli/histutil"
	"src.elcc.sh/pkg/cli/keymap"
)

// Largest numeric argument accepted by ed-argument-digit.
const maxArgument = 1000000

var builtins = []struct {
	name, descr string
	fn          ActionFunc
}{
	{"ed-insert", "Insert the key", func(*Editor, rune) Outcome { return Normal }},
	{"ed-newline", "Accept the line", func(*Editor, rune) Outcome { return Newline }},
	{"ed-end-of-file", "End of input if the line is empty, otherwise delete the next character", endOfFile},
	{"ed-unassigned", "Beep", func(*Editor, rune) Outcome { return Error }},
	{"ed-redisplay", "Redraw the prompt and the line", func(*Editor, rune) Outcome { return Redisplay }},
	{"ed-clear-screen", "Clear the screen and redraw", clearScreen},
	{"ed-interrupt", "Abandon the line and start a new one", interrupt},

	{"ed-move-to-beg", "Move to the beginning of the line", moveToBeg},
	{"ed-move-to-end", "Move to the end of the line", moveToEnd},
	{"ed-prev-char", "Move to the previous character", prevChar},
	{"ed-next-char", "Move to the next character", nextChar},
	{"ed-prev-word", "Move to the start of the previous word", prevWord},
	{"ed-next-word", "Move to the end of the next word", nextWord},

	{"ed-delete-prev-char", "Delete the previous character", deletePrevChar},
	{"ed-delete-next-char", "Delete the next character", deleteNextChar},
	{"ed-delete-prev-word", "Cut the previous word", deletePrevWord},
	{"ed-delete-next-word", "Cut the next word", deleteNextWord},
	{"ed-kill-line", "Cut to the end of the line", killLine},
	{"em-kill-line", "Cut the whole line", killWholeLine},
	{"em-yank", "Paste the last cut text", yank},
	{"ed-transpose-chars", "Swap the characters around the cursor", transposeChars},
	{"ed-quoted-insert", "Insert the next character literally", quotedInsert},
	{"ed-argument-digit", "Add a digit to the numeric argument", argumentDigit},

	{"ed-prev-history", "Show the previous history entry", prevHistory},
	{"ed-next-history", "Show the next history entry", nextHistory},
	{"ed-search-prev-history", "Show the previous history entry starting with the text before the cursor", searchPrevHistory},
	{"ed-search-next-history", "Show the next history entry starting with the text before the cursor", searchNextHistory},

	{"ed-complete", "Complete the word at the cursor", complete},
}

var defaultBindings = []struct{ key, name string }{
	{"^A", "ed-move-to-beg"},
	{"^B", "ed-prev-char"},
	{"^C", "ed-interrupt"},
	{"^D", "ed-end-of-file"},
	{"^E", "ed-move-to-end"},
	{"^F", "ed-next-char"},
	{"^H", "ed-delete-prev-char"},
	{"^J", "ed-newline"},
	{"^K", "ed-kill-line"},
	{"^L", "ed-clear-screen"},
	{"^M", "ed-newline"},
	{"^N", "ed-next-history"},
	{"^P", "ed-prev-history"},
	{"^R", "ed-redisplay"},
	{"^T", "ed-transpose-chars"},
	{"^U", "em-kill-line"},
	{"^V", "ed-quoted-insert"},
	{"^W", "ed-delete-prev-word"},
	{"^Y", "em-yank"},
	{"^?", "ed-delete-prev-char"},

	{"Up", "ed-prev-history"},
	{"Down", "ed-next-history"},
	{"Left", "ed-prev-char"},
	{"Right", "ed-next-char"},
	{"Home", "ed-move-to-beg"},
	{"End", "ed-move-to-end"},
	{`\eOH`, "ed-move-to-beg"},
	{`\eOF`, "ed-move-to-end"},
	{`\e[1~`, "ed-move-to-beg"},
	{`\e[4~`, "ed-move-to-end"},
	{"Delete", "ed-delete-next-char"},
	{"Ctrl-Left", "ed-prev-word"},
	{"Ctrl-Right", "ed-next-word"},

	{"Alt-b", "ed-prev-word"},
	{"Alt-f", "ed-next-word"},
	{"Alt-d", "ed-delete-next-word"},
	{"Alt-Backspace", "ed-delete-prev-word"},
	{"Alt-p", "ed-search-prev-history"},
	{"Alt-n", "ed-search-next-history"},
	{"Alt-0", "ed-argument-digit"},
	{"Alt-1", "ed-argument-digit"},
	{"Alt-2", "ed-argument-digit"},
	{"Alt-3", "ed-argument-digit"},
	{"Alt-4", "ed-argument-digit"},
	{"Alt-5", "ed-argument-digit"},
	{"Alt-6", "ed-argument-digit"},
	{"Alt-7", "ed-argument-digit"},
	{"Alt-8", "ed-argument-digit"},
	{"Alt-9", "ed-argument-digit"},
}

func newTable() *keymap.Table[Action] {
	t := keymap.New[Action]()
	for _, b := range builtins {
		t.AddBuiltin(b.name, b.descr, b.fn)
	}
	for _, b := range defaultBindings {
		if err := t.Bind(b.key, b.name); err != nil {
			panic(err)
		}
	}
	return t
}

func endOfFile(ed *Editor, _ rune) Outcome {
	switch {
	case ed.buf.Len() == 0:
		return EOF
	case ed.buf.Cursor() < ed.buf.Len():
		return deleteNextChar(ed, 0)
	default:
		return Error
	}
}

func clearScreen(ed *Editor, _ rune) Outcome {
	ed.tty.ClearScreen()
	return Redisplay
}

func interrupt(ed *Editor, _ rune) Outcome {
	ed.redraw(finalRedraw)
	ed.resetLine()
	return Redisplay
}

func moveToBeg(ed *Editor, _ rune) Outcome {
	ed.buf.MoveCursor(0)
	return Cursor
}

func moveToEnd(ed *Editor, _ rune) Outcome {
	ed.buf.MoveCursor(ed.buf.Len())
	return Cursor
}

func prevChar(ed *Editor, _ rune) Outcome {
	if ed.buf.Cursor() == 0 {
		return Error
	}
	ed.MoveCursor(-ed.Argument())
	return Cursor
}

func nextChar(ed *Editor, _ rune) Outcome {
	if ed.buf.Cursor() == ed.buf.Len() {
		return Error
	}
	ed.MoveCursor(ed.Argument())
	return Cursor
}

func prevWord(ed *Editor, _ rune) Outcome {
	if ed.buf.Cursor() == 0 {
		return Error
	}
	for i := 0; i < ed.Argument(); i++ {
		ed.buf.MoveCursor(ed.buf.PrevWordStart())
	}
	return Cursor
}

func nextWord(ed *Editor, _ rune) Outcome {
	if ed.buf.Cursor() == ed.buf.Len() {
		return Error
	}
	for i := 0; i < ed.Argument(); i++ {
		ed.buf.MoveCursor(ed.buf.NextWordEnd())
	}
	return Cursor
}

func deletePrevChar(ed *Editor, _ rune) Outcome {
	if ed.buf.Cursor() == 0 {
		return Error
	}
	ed.Delete(ed.Argument())
	return Refresh
}

func deleteNextChar(ed *Editor, _ rune) Outcome {
	c := ed.buf.Cursor()
	if c == ed.buf.Len() {
		return Error
	}
	ed.buf.DeleteRange(c, c+ed.Argument())
	return Refresh
}

func deletePrevWord(ed *Editor, _ rune) Outcome {
	end := ed.buf.Cursor()
	if end == 0 {
		return Error
	}
	for i := 0; i < ed.Argument(); i++ {
		ed.buf.MoveCursor(ed.buf.PrevWordStart())
	}
	ed.killed = ed.buf.DeleteRange(ed.buf.Cursor(), end)
	return Refresh
}

func deleteNextWord(ed *Editor, _ rune) Outcome {
	begin := ed.buf.Cursor()
	if begin == ed.buf.Len() {
		return Error
	}
	for i := 0; i < ed.Argument(); i++ {
		ed.buf.MoveCursor(ed.buf.NextWordEnd())
	}
	ed.killed = ed.buf.DeleteRange(begin, ed.buf.Cursor())
	return Refresh
}

func killLine(ed *Editor, _ rune) Outcome {
	ed.killed = ed.buf.DeleteRange(ed.buf.Cursor(), ed.buf.Len())
	return Refresh
}

func killWholeLine(ed *Editor, _ rune) Outcome {
	ed.killed = ed.buf.DeleteRange(0, ed.buf.Len())
	return Refresh
}

func yank(ed *Editor, _ rune) Outcome {
	if ed.killed == "" {
		return Error
	}
	for i := 0; i < ed.Argument(); i++ {
		ed.buf.Insert(ed.killed)
	}
	return Refresh
}

func transposeChars(ed *Editor, _ rune) Outcome {
	c, n := ed.buf.Cursor(), ed.buf.Len()
	if c == 0 || n < 2 {
		return Error
	}
	if c == n {
		c--
	}
	pair := ed.buf.DeleteRange(c-1, c+1)
	first, size := utf8.DecodeRuneInString(pair)
	ed.buf.InsertAt(c-1, pair[size:]+string(first))
	ed.buf.MoveCursor(c + 1)
	return Refresh
}

func quotedInsert(ed *Editor, _ rune) Outcome {
	ed.quotedInsert = true
	return ArgHack
}

func argumentDigit(ed *Editor, key rune) Outcome {
	if key < '0' || key > '9' {
		return Error
	}
	d := int(key - '0')
	if ed.argSet {
		ed.arg = ed.arg*10 + d
	} else {
		ed.arg, ed.argSet = d, true
	}
	if ed.arg > maxArgument {
		return Error
	}
	return ArgHack
}

func prevHistory(ed *Editor, _ rune) Outcome {
	return showHistory(ed, func() (string, error) {
		return ed.hist.Prev(ed.buf.String(), "")
	}, -1)
}

func nextHistory(ed *Editor, _ rune) Outcome {
	return showHistory(ed, ed.hist.Next, -1)
}

func searchPrevHistory(ed *Editor, _ rune) Outcome {
	prefix := ed.buf.UpToCursor()
	if ed.hist.Navigating() {
		prefix = ed.hist.Prefix()
	}
	return showHistory(ed, func() (string, error) {
		return ed.hist.Prev(ed.buf.String(), prefix)
	}, utf8.RuneCountInString(prefix))
}

func searchNextHistory(ed *Editor, _ rune) Outcome {
	prefix := ed.hist.Prefix()
	return showHistory(ed, ed.hist.Next, utf8.RuneCountInString(prefix))
}

// Replaces the line with the entry returned by step, and places the cursor at
// the given position, or at the end if it is negative.
func showHistory(ed *Editor, step func() (string, error), cursor int) Outcome {
	line, err := step()
	if err != nil {
		if !errors.Is(err, histutil.ErrEndOfHistory) {
			logger.Println("failed to walk history:", err)
		}
		return Error
	}
	ed.buf.Set(line)
	if cursor >= 0 {
		ed.buf.MoveCursor(cursor)
	}
	return Refresh
}
