package shell

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"src.elcc.sh/pkg/cli"
	"src.elcc.sh/pkg/cli/clitest"
	"src.elcc.sh/pkg/cli/term"
)

func setup(t *testing.T, opts ...clitest.Option) (*Host, *clitest.Fixture, *bytes.Buffer) {
	f := clitest.Setup(t, opts...)
	var out bytes.Buffer
	h := &Host{out: &out}
	h.attach(f.Editor)
	return h, f, &out
}

var execTests = []struct {
	name    string
	input   string
	wantOut string
}{
	{"echo", "echo hello  'big world'\r", "hello big world\n"},
	{"echo without words", "echo\r", "\n"},
	{"empty line", "\r", ""},
	{"unknown command", "frob\r", "error: unknown command \"frob\"\n"},
	{"too many arguments", "unbind a b\r",
		"error: wrong number of arguments; usage: unbind key\n"},
	{"too few arguments", "bind ^A\r",
		"error: wrong number of arguments; usage: bind key function\n"},
	{"bad binding", "bind ^A no-such\r",
		"error: unknown function: no-such\n"},
	{"history", "echo a\rhistory\r", "a\n    1  echo a\n    2  history\n"},
}

func TestExec(t *testing.T) {
	for _, test := range execTests {
		t.Run(test.name, func(t *testing.T) {
			_, f, out := setup(t)
			f.Feed(t, test.input)
			if diff := cmp.Diff(test.wantOut, out.String()); diff != "" {
				t.Errorf("output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExec_Bind(t *testing.T) {
	_, f, out := setup(t)
	f.Feed(t, "bind Alt-x ed-move-to-beg\rab\x1bx")
	if out.Len() != 0 {
		t.Errorf("bind wrote %q", out.String())
	}
	f.TestLine(t, "ab", 0)
}

func TestExec_Unbind(t *testing.T) {
	_, f, _ := setup(t)
	f.Feed(t, "unbind ^A\rab\x01")
	f.TestLine(t, "ab", 2)
}

func TestExec_Bindings(t *testing.T) {
	_, f, out := setup(t)
	f.Feed(t, "bindings\r")
	if want := fmt.Sprintf("%-16s ed-move-to-beg\n", "^A"); !strings.Contains(out.String(), want) {
		t.Errorf("bindings output doesn't list ^A:\n%s", out.String())
	}
}

func TestExec_Functions(t *testing.T) {
	_, f, out := setup(t)
	f.Feed(t, "functions\r")
	if !strings.Contains(out.String(), "ed-complete ") {
		t.Errorf("functions output doesn't list ed-complete:\n%s", out.String())
	}
}

func TestExec_Prompt(t *testing.T) {
	_, f, _ := setup(t)
	f.Feed(t, "prompt 'elcc$ '\r")
	f.TTY.TestBuffer(t,
		term.NewBufferBuilder(clitest.FakeTTYWidth).Write("elcc$ ").SetDotHere().Buffer())
}

func TestExec_Help(t *testing.T) {
	_, f, out := setup(t)
	f.Feed(t, "help\r")
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != len(commands) {
		t.Errorf("help wrote %d lines, want %d", len(lines), len(commands))
	}
	if !strings.HasPrefix(lines[0], "bind key function") {
		t.Errorf("first line of help is %q, want bind first", lines[0])
	}
}

func TestExec_Exit(t *testing.T) {
	h, f, _ := setup(t)
	f.Feed(t, "exit\r")
	if !h.exiting {
		t.Errorf("not exiting after exit")
	}
}

func TestEOFExits(t *testing.T) {
	h, f, _ := setup(t)
	f.Feed(t, "\x04")
	if !h.exiting {
		t.Errorf("not exiting after ^D")
	}
}

func TestComplete(t *testing.T) {
	_, f, _ := setup(t)
	f.Feed(t, "ec\t")
	f.TestLine(t, "echo", 4)
}

func TestComplete_FunctionNames(t *testing.T) {
	h, _, _ := setup(t)
	got := h.complete([]string{"bind", "^A", "ed-move-to-"}, 2)
	want := []string{"ed-move-to-beg", "ed-move-to-end"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("complete (-want +got):\n%s", diff)
	}
	if got := h.complete([]string{"echo", "ed-"}, 1); got != nil {
		t.Errorf("complete for echo -> %q, want nil", got)
	}
}

func TestComplete_CommandNames(t *testing.T) {
	h, _, _ := setup(t)
	got := h.complete([]string{"h"}, 0)
	want := []string{"help", "history"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("complete (-want +got):\n%s", diff)
	}
}

func TestTimeout(t *testing.T) {
	h, f, _ := setup(t)
	now := f.Now

	if d := h.timeout(now); d != -1 {
		t.Errorf("timeout with nothing due -> %v, want -1", d)
	}

	h.tick, h.nextTick = time.Second, now.Add(time.Second)
	if d := h.timeout(now); d != time.Second {
		t.Errorf("timeout with tick due -> %v, want 1s", d)
	}

	// A lone escape waits for the rest of the sequence.
	f.Feed(t, "\x1b")
	if d := h.timeout(now); d != cli.DefaultKeySeqTimeout {
		t.Errorf("timeout with pending key -> %v, want %v", d, cli.DefaultKeySeqTimeout)
	}
	if d := h.timeout(now.Add(time.Hour)); d != 0 {
		t.Errorf("timeout after deadline -> %v, want 0", d)
	}
}

func TestTick(t *testing.T) {
	h, f, _ := setup(t)
	h.tick = time.Second

	h.doTick(f.Now)
	h.doTick(f.Now.Add(time.Second))

	f.TTY.TestNotes(t, "tick 1", "tick 2")
	if want := f.Now.Add(2 * time.Second); !h.nextTick.Equal(want) {
		t.Errorf("nextTick = %v, want %v", h.nextTick, want)
	}
}
