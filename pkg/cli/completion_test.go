package cli_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "src.elcc.sh/pkg/cli"
	. "src.elcc.sh/pkg/cli/clitest"
	"src.elcc.sh/pkg/cli/keymap"
)

type completerCall struct {
	words   []string
	current int
}

// Binds Tab to a completer that returns cands and records its calls.
func bindCompleter(t *testing.T, f *Fixture, cands ...string) *[]completerCall {
	t.Helper()
	var calls []completerCall
	err := f.Editor.BindCompleter("^I", CompleterFunc(func(words []string, current int) []string {
		calls = append(calls, completerCall{words, current})
		return cands
	}))
	if err != nil {
		t.Fatalf("BindCompleter -> %v", err)
	}
	return &calls
}

func TestComplete_OneCandidate(t *testing.T) {
	f := Setup(t)
	calls := bindCompleter(t, f, "echo")

	f.Feed(t, "ec\t")

	f.TestLine(t, "echo", 4)
	want := []completerCall{{[]string{"ec"}, 0}}
	if diff := cmp.Diff(want, *calls, cmp.AllowUnexported(completerCall{})); diff != "" {
		t.Errorf("completer calls (-want +got):\n%s", diff)
	}
}

func TestComplete_CursorAfterLastWord(t *testing.T) {
	f := Setup(t)
	calls := bindCompleter(t, f, "a b")

	f.Feed(t, "echo \t")

	f.TestLine(t, "echo 'a b'", 10)
	want := []completerCall{{[]string{"echo", ""}, 1}}
	if diff := cmp.Diff(want, *calls, cmp.AllowUnexported(completerCall{})); diff != "" {
		t.Errorf("completer calls (-want +got):\n%s", diff)
	}
}

func TestComplete_ReplacesWordAroundCursor(t *testing.T) {
	f := Setup(t)
	bindCompleter(t, f, "echo")

	f.Feed(t, "ec x\x01\x06\t")

	f.TestLine(t, "echo x", 4)
}

func TestComplete_ReplacesQuotedWord(t *testing.T) {
	f := Setup(t)
	bindCompleter(t, f, "it's")

	f.Feed(t, "cat \"it\t")

	f.TestLine(t, `cat 'it'\''s'`, 13)
}

func TestComplete_NoCandidate(t *testing.T) {
	f := Setup(t)
	bindCompleter(t, f)

	f.Feed(t, "ec\t")

	f.TestLine(t, "ec", 2)
	if n := f.TTY.Beeps(); n != 1 {
		t.Errorf("beeped %d times, want 1", n)
	}
}

func TestComplete_ExtendsCommonPrefix(t *testing.T) {
	f := Setup(t)
	bindCompleter(t, f, "foo", "foobar")

	f.Feed(t, "f\t")

	f.TestLine(t, "foo", 3)
	if n := f.TTY.Beeps(); n != 0 {
		t.Errorf("beeped %d times, want 0", n)
	}
}

func TestComplete_ListsCandidatesOnSecondPress(t *testing.T) {
	f := Setup(t)
	bindCompleter(t, f, "foo", "foobar")

	f.Feed(t, "foo\t")
	f.TestLine(t, "foo", 3)
	if n := f.TTY.Beeps(); n != 1 {
		t.Errorf("beeped %d times on first press, want 1", n)
	}
	f.TTY.TestNotes(t)

	f.Feed(t, "\t")
	f.TestLine(t, "foo", 3)
	f.TTY.TestNotes(t, "foo     foobar")
	f.TTY.TestBuffer(t, MakeBuffer("foo", 3))
}

func TestComplete_ListsCandidatesInColumns(t *testing.T) {
	f := Setup(t, WithTTY(func(tty TTYCtrl) { tty.SetSize(20, 20) }))
	bindCompleter(t, f, "a1", "a2", "a3", "a4", "a5")

	f.Feed(t, "a\t\t")

	// Columns are 4 wide, so 5 of them fit in 20 columns plus the gap.
	f.TTY.TestNotes(t, "a1  a2  a3  a4  a5")

	f2 := Setup(t, WithTTY(func(tty TTYCtrl) { tty.SetSize(20, 10) }))
	bindCompleter(t, f2, "a1", "a2", "a3", "a4", "a5")

	f2.Feed(t, "a\t\t")

	f2.TTY.TestNotes(t, "a1  a3  a5", "a2  a4")
}

func TestComplete_NoCompleter(t *testing.T) {
	f := Setup(t)
	f.Editor.Bind("^I", "ed-complete")

	f.Feed(t, "ec\t")

	f.TestLine(t, "ec", 2)
	if n := f.TTY.Beeps(); n != 1 {
		t.Errorf("beeped %d times, want 1", n)
	}
}

func TestBindCompleter_BadKeyKeepsCompleter(t *testing.T) {
	f := Setup(t)
	bindCompleter(t, f, "echo")

	err := f.Editor.BindCompleter("", CompleterFunc(func([]string, int) []string {
		return []string{"bad"}
	}))
	if !errors.Is(err, keymap.ErrEmptySequence) {
		t.Errorf("BindCompleter -> %v, want %v", err, keymap.ErrEmptySequence)
	}

	f.Feed(t, "ec\t")
	f.TestLine(t, "echo", 4)
}
