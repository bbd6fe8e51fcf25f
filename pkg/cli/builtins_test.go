package cli_test

import (
	"testing"

	. "src.elcc.sh/pkg/cli"
	. "src.elcc.sh/pkg/cli/clitest"
	"src.elcc.sh/pkg/cli/histutil"
)

var editingTests = []struct {
	name       string
	input      string
	wantLine   string
	wantCursor int
	wantBeeps  int
}{
	{"insert", "abc", "abc", 3, 0},
	{"insert wide characters", "你好", "你好", 2, 0},
	{"^A", "abc\x01", "abc", 0, 0},
	{"Home", "abc\x1b[H", "abc", 0, 0},
	{"Home in application mode", "abc\x1bOH", "abc", 0, 0},
	{"Home as tilde sequence", "abc\x1b[1~", "abc", 0, 0},
	{"^E", "abc\x01\x05", "abc", 3, 0},
	{"End", "abc\x01\x1b[F", "abc", 3, 0},
	{"^B", "abc\x02\x02", "abc", 1, 0},
	{"^B at start", "\x02", "", 0, 1},
	{"Left", "abc\x1b[D", "abc", 2, 0},
	{"^F", "abc\x01\x06", "abc", 1, 0},
	{"^F at end", "abc\x06", "abc", 3, 1},
	{"Right", "abc\x01\x1b[C", "abc", 1, 0},
	{"Alt-b", "ab cd\x1bb", "ab cd", 3, 0},
	{"Alt-b twice", "ab cd\x1bb\x1bb", "ab cd", 0, 0},
	{"Alt-f", "ab cd\x01\x1bf", "ab cd", 2, 0},
	{"Ctrl-Left", "ab cd\x1b[1;5D", "ab cd", 3, 0},
	{"Ctrl-Right", "ab cd\x01\x1b[1;5C", "ab cd", 2, 0},
	{"argument to Alt-b", "ab cd ef\x1b2\x1bb", "ab cd ef", 3, 0},

	{"^H", "abc\x08", "ab", 2, 0},
	{"Backspace", "abc\x7f", "ab", 2, 0},
	{"Backspace at start", "abc\x01\x7f", "abc", 0, 1},
	{"argument to Backspace", "abcd\x1b2\x7f", "ab", 2, 0},
	{"Delete", "abc\x01\x1b[3~", "bc", 0, 0},
	{"Delete at end", "abc\x1b[3~", "abc", 3, 1},
	{"^D in line", "abc\x01\x04", "bc", 0, 0},
	{"^D at end of line", "abc\x04", "abc", 3, 1},
	{"^W", "ab cd\x17", "ab ", 3, 0},
	{"^W after space", "ab cd \x17", "ab ", 3, 0},
	{"^W at start", "\x17", "", 0, 1},
	{"Alt-Backspace", "ab cd\x1b\x7f", "ab ", 3, 0},
	{"Alt-d", "ab cd\x01\x1bd", " cd", 0, 0},
	{"^K", "abcd\x02\x02\x0b", "ab", 2, 0},
	{"^U", "abcd\x02\x15", "", 0, 0},
	{"^W then ^Y", "ab cd\x17\x19", "ab cd", 5, 0},
	{"^K then ^Y elsewhere", "abcd\x02\x02\x0b\x01\x19", "cdab", 2, 0},
	{"^Y with nothing cut", "\x19", "", 0, 1},
	{"^T at end", "ab\x14", "ba", 2, 0},
	{"^T in middle", "abc\x02\x14", "acb", 3, 0},
	{"^T at start", "ab\x01\x14", "ab", 0, 1},
	{"^T with wide characters", "a你\x14", "你a", 2, 0},
	{"^V", "\x16\x01", "\x01", 1, 0},
	{"^V with argument", "\x1b3\x16\x01", "\x01\x01\x01", 3, 0},
	{"^C", "ab\x03", "", 0, 0},
	{"^C then type", "ab\x03cd", "cd", 2, 0},
}

func TestEditing(t *testing.T) {
	for _, test := range editingTests {
		t.Run(test.name, func(t *testing.T) {
			f := Setup(t)
			f.Feed(t, test.input)
			f.TestLine(t, test.wantLine, test.wantCursor)
			if n := f.TTY.Beeps(); n != test.wantBeeps {
				t.Errorf("beeped %d times, want %d", n, test.wantBeeps)
			}
		})
	}
}

func TestInterrupt_DoesNotAcceptLine(t *testing.T) {
	f := Setup(t)
	f.Feed(t, "ab\x03")
	if len(f.Lines) != 0 {
		t.Errorf("got lines %q, want none", f.Lines)
	}
	if n := f.Editor.History().Len(); n != 0 {
		t.Errorf("history has %d entries, want 0", n)
	}
	f.TTY.TestBuffer(t, MakeBuffer("", 0))
}

func TestClearScreen(t *testing.T) {
	f := Setup(t)
	f.Feed(t, "ab\x0c")
	if n := f.TTY.ScreenCleared(); n != 1 {
		t.Errorf("screen cleared %d times, want 1", n)
	}
	f.TTY.TestBuffer(t, MakeBuffer("ab", 2))
	if !f.TTY.LastFull() {
		t.Errorf("redraw after clearing is not full")
	}
}

// History.

func withHistory(texts ...string) Option {
	return WithSpec(func(spec *EditorSpec) { spec.Store = histutil.NewMemStore(texts...) })
}

func TestHistory_PrevAndNext(t *testing.T) {
	f := Setup(t, withHistory("a", "b"))

	f.Feed(t, "x\x10")
	f.TestLine(t, "b", 1)
	f.Feed(t, "\x10")
	f.TestLine(t, "a", 1)
	f.Feed(t, "\x10")
	f.TestLine(t, "a", 1)
	if n := f.TTY.Beeps(); n != 1 {
		t.Errorf("beeped %d times at oldest entry, want 1", n)
	}
	f.Feed(t, "\x0e")
	f.TestLine(t, "b", 1)
	f.Feed(t, "\x0e")
	f.TestLine(t, "x", 1)
	f.Feed(t, "\x0e")
	f.TestLine(t, "x", 1)
	if n := f.TTY.Beeps(); n != 2 {
		t.Errorf("beeped %d times after newest entry, want 2", n)
	}
}

func TestHistory_ArrowKeys(t *testing.T) {
	f := Setup(t, withHistory("a", "b"))
	f.Feed(t, "\x1b[A\x1b[A\x1b[B")
	f.TestLine(t, "b", 1)
}

func TestHistory_EmptyStore(t *testing.T) {
	f := Setup(t)
	f.Feed(t, "\x10")
	if n := f.TTY.Beeps(); n != 1 {
		t.Errorf("beeped %d times, want 1", n)
	}
}

func TestHistory_AcceptedLinesAreAdded(t *testing.T) {
	f := Setup(t)
	f.Feed(t, "a\rb\rb\r\x10\x10")
	f.TestLine(t, "a", 1)
	if n := f.Editor.History().Len(); n != 2 {
		t.Errorf("history has %d entries, want 2", n)
	}
}

func TestHistory_EditingEndsNavigation(t *testing.T) {
	f := Setup(t, withHistory("a", "b"))
	f.Feed(t, "\x10c\r")
	entries, _ := f.Editor.History().Entries()
	if len(entries) != 3 || entries[2] != "bc" {
		t.Errorf("history entries -> %q, want [a b bc]", entries)
	}
	if f.Editor.History().Navigating() {
		t.Errorf("still navigating after accepting")
	}
}

func TestHistory_Search(t *testing.T) {
	f := Setup(t, withHistory("ab", "cd", "ax", "ab"))

	f.Feed(t, "a\x1bp")
	f.TestLine(t, "ab", 1)
	f.Feed(t, "\x1bp")
	f.TestLine(t, "ax", 1)
	// Duplicates are only visited once.
	f.Feed(t, "\x1bp")
	f.TestLine(t, "ax", 1)
	if n := f.TTY.Beeps(); n != 1 {
		t.Errorf("beeped %d times, want 1", n)
	}
	f.Feed(t, "\x1bn")
	f.TestLine(t, "ab", 1)
	f.Feed(t, "\x1bn")
	f.TestLine(t, "a", 1)
}

func TestHistory_SearchWithCursorInMiddle(t *testing.T) {
	f := Setup(t, withHistory("abc", "xyz"))
	f.Feed(t, "axx\x02\x02\x1bp")
	f.TestLine(t, "abc", 1)
}
