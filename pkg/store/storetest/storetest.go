// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.elcc.sh/pkg/store/storedefs"
)

var (
	cmds     = []string{"echo foo", "put bar", "put lorem", "echo bar"}
	searches = []struct {
		next      bool
		seq       int
		prefix    string
		wantedSeq int
		wantedCmd string
		wantedErr error
	}{
		{false, 5, "echo", 4, "echo bar", nil},
		{false, 5, "put", 3, "put lorem", nil},
		{false, 4, "echo", 1, "echo foo", nil},
		{false, 3, "f", 0, "", storedefs.ErrNoMatchingCmd},
		{false, 1, "", 0, "", storedefs.ErrNoMatchingCmd},

		{true, 1, "echo", 1, "echo foo", nil},
		{true, 1, "put", 2, "put bar", nil},
		{true, 2, "echo", 4, "echo bar", nil},
		{true, 4, "put", 0, "", storedefs.ErrNoMatchingCmd},
	}
)

// TestCmd tests the command history functionality of a Store.
func TestCmd(t *testing.T, store storedefs.Store) {
	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want %v, %v",
			startSeq, err, 1, nil)
	}

	// AddCmd
	for i, cmd := range cmds {
		wantSeq := startSeq + i
		seq, err := store.AddCmd(cmd)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%v) -> %v, %v, want %v, %v",
				cmd, seq, err, wantSeq, nil)
		}
	}

	endSeq, err := store.NextCmdSeq()
	wantedEndSeq := startSeq + len(cmds)
	if endSeq != wantedEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want %v, %v",
			endSeq, err, wantedEndSeq, nil)
	}

	// CmdsWithSeq
	wantCmdWithSeqs := make([]storedefs.Cmd, len(cmds))
	for i, cmd := range cmds {
		wantCmdWithSeqs[i] = storedefs.Cmd{Text: cmd, Seq: i + 1}
	}
	for i := 0; i < len(cmds); i++ {
		for j := i; j <= len(cmds); j++ {
			cmdWithSeqs, err := store.CmdsWithSeq(i+1, j+1)
			if err != nil {
				t.Errorf("store.CmdsWithSeq(%v, %v) -> error %v", i+1, j+1, err)
			}
			if diff := cmp.Diff(wantCmdWithSeqs[i:j], cmdWithSeqs, emptyIsNil); diff != "" {
				t.Errorf("store.CmdsWithSeq(%v, %v) (-want +got):\n%s", i+1, j+1, diff)
			}
		}
	}

	// Cmd
	for i, wantedCmd := range cmds {
		seq := i + startSeq
		cmd, err := store.Cmd(seq)
		if cmd != wantedCmd || err != nil {
			t.Errorf("store.Cmd(%v) -> %v, %v, want %v, %v",
				seq, cmd, err, wantedCmd, nil)
		}
	}

	// PrevCmd and NextCmd
	for _, tt := range searches {
		f := store.PrevCmd
		funcname := "store.PrevCmd"
		if tt.next {
			f = store.NextCmd
			funcname = "store.NextCmd"
		}
		cmd, err := f(tt.seq, tt.prefix)
		wantedCmd := storedefs.Cmd{Text: tt.wantedCmd, Seq: tt.wantedSeq}
		if cmd != wantedCmd || !errors.Is(err, tt.wantedErr) {
			t.Errorf("%s(%v, %v) -> %v, %v, want %v, %v",
				funcname, tt.seq, tt.prefix, cmd, err, wantedCmd, tt.wantedErr)
		}
	}

	// DelCmd
	if err := store.DelCmd(1); err != nil {
		t.Error("Failed to remove cmd")
	}
	if seq, err := store.Cmd(1); !errors.Is(err, storedefs.ErrNoMatchingCmd) {
		t.Errorf("Cmd(1) -> %v, %v, want ErrNoMatchingCmd", seq, err)
	}

	// TrimCmds keeps the newest commands.
	if n, err := store.TrimCmds(2); n != 1 || err != nil {
		t.Errorf("TrimCmds(2) -> %v, %v, want 1, nil", n, err)
	}
	left, err := store.CmdsWithSeq(0, wantedEndSeq)
	wantLeft := []storedefs.Cmd{{Text: "put lorem", Seq: 3}, {Text: "echo bar", Seq: 4}}
	if diff := cmp.Diff(wantLeft, left); diff != "" || err != nil {
		t.Errorf("CmdsWithSeq after TrimCmds -> error %v, diff (-want +got):\n%s", err, diff)
	}
	if n, err := store.TrimCmds(5); n != 0 || err != nil {
		t.Errorf("TrimCmds(5) -> %v, %v, want 0, nil", n, err)
	}
	// Sequence numbers are not reused after trimming.
	if seq, _ := store.AddCmd("new"); seq != wantedEndSeq {
		t.Errorf("AddCmd after TrimCmds -> seq %v, want %v", seq, wantedEndSeq)
	}
}

// Treats nil and empty slices as equal.
var emptyIsNil = cmp.FilterValues(
	func(x, y []storedefs.Cmd) bool { return len(x) == 0 && len(y) == 0 },
	cmp.Comparer(func(x, y []storedefs.Cmd) bool { return true }))
