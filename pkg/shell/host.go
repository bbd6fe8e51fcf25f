package shell

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"src.elcc.sh/pkg/cli"
)

// Host drives an Editor and runs commands on the lines it accepts.
type Host struct {
	ed  *cli.Editor
	in  *os.File
	out io.Writer

	watching bool
	exiting  bool

	tick     time.Duration
	nextTick time.Time
	ticks    int
}

// NewHost creates a Host reading from in and writing command output to out,
// with an Editor built from spec. Tab completes command names.
func NewHost(name string, in *os.File, out io.Writer, spec cli.EditorSpec) *Host {
	h := &Host{in: in, out: out}
	h.attach(cli.NewEditor(name, h, spec))
	return h
}

func (h *Host) attach(ed *cli.Editor) {
	h.ed = ed
	ed.SetWordsConsumer(cli.WordsConsumerFunc(h.consumeWords))
	if err := ed.BindCompleter("^I", cli.CompleterFunc(h.complete)); err != nil {
		logger.Println("failed to bind completer:", err)
	}
}

// Editor returns the Editor driven by h.
func (h *Host) Editor() *cli.Editor { return h.ed }

// Watch implements cli.Watcher.
func (h *Host) Watch(fd int, on bool) {
	logger.Printf("watch fd %d: %v", fd, on)
	h.watching = on
}

func (h *Host) consumeWords(words []string, err error) {
	if err == io.EOF {
		h.exiting = true
		return
	}
	if err != nil || len(words) == 0 {
		return
	}
	if err := h.exec(words); err != nil {
		fmt.Fprintln(h.out, "error:", err)
	}
}

func (h *Host) complete(words []string, current int) []string {
	var all []string
	switch {
	case current == 0:
		for name := range commands {
			all = append(all, name)
		}
	case current == 2 && words[0] == "bind":
		for _, f := range h.ed.Functions() {
			all = append(all, f.Name)
		}
	}
	prefix := words[current]
	var cands []string
	for _, s := range all {
		if strings.HasPrefix(s, prefix) {
			cands = append(cands, s)
		}
	}
	sort.Strings(cands)
	return cands
}

// Returns how long to wait for input before the editor or the ticker needs
// attention, or -1 if nothing is due.
func (h *Host) timeout(now time.Time) time.Duration {
	next, ok := h.ed.Deadline()
	if h.tick > 0 && (!ok || h.nextTick.Before(next)) {
		next, ok = h.nextTick, true
	}
	if !ok {
		return -1
	}
	if d := next.Sub(now); d > 0 {
		return d
	}
	return 0
}

func (h *Host) doTick(now time.Time) {
	h.ticks++
	fmt.Fprintf(h.ed.AsyncOutput(), "tick %d\n", h.ticks)
	if err := h.ed.AsyncOutputFlush(); err != nil {
		logger.Println("failed to flush tick:", err)
	}
	h.nextTick = now.Add(h.tick)
}
