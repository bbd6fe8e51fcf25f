// Package shell is a reference host for the line editor. It owns the event
// loop that waits on the terminal, and runs a small set of demo commands on
// the lines the user accepts.
package shell

import (
	"fmt"
	"os"
	"time"

	"src.elcc.sh/pkg/cli"
	"src.elcc.sh/pkg/logutil"
	"src.elcc.sh/pkg/rc"
)

var logger = logutil.GetLogger("[shell] ")

// DefaultName is the editor name used when Options.Name is empty. It selects
// the editors section of the configuration file.
const DefaultName = "elcc"

// Options keeps the settings of Run that don't come from the configuration
// file.
type Options struct {
	// Name of the editor.
	Name string
	// Period of the "tick" notes written above the line; 0 disables them.
	Tick time.Duration
}

// Run runs an interactive session on the terminal in and out, until the user
// exits or the terminal fails.
func Run(in, out *os.File, cfg *rc.Config, opts Options) error {
	if cfg == nil {
		cfg = &rc.Config{}
	}
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	hist, closeHist, err := cfg.OpenHistory()
	if err != nil {
		return err
	}
	defer func() {
		if err := closeHist(); err != nil {
			logger.Println("failed to close history:", err)
		}
	}()

	h := NewHost(opts.Name, in, out, cfg.Spec(cli.NewTTY(in, out), hist))
	h.tick = opts.Tick
	if err := cfg.Apply(h.ed); err != nil {
		fmt.Fprintln(out, "Warning:", err)
	}
	if err := h.ed.Start(); err != nil {
		return err
	}
	return h.Loop()
}
