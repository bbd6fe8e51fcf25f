//go:build unix

package shell

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"src.elcc.sh/pkg/errutil"
	"src.elcc.sh/pkg/sys"
	"src.elcc.sh/pkg/sys/eunix"
)

// Loop waits for input and signals and feeds them to the Editor, until the
// user exits or the Editor stops. It closes the Editor before returning.
//
// Signals are relayed through a pipe, so that the Editor is only ever used
// from the goroutine calling Loop.
func (h *Host) Loop() (err error) {
	sigCh := sys.NotifySignals()
	sigR, sigW, err := os.Pipe()
	if err != nil {
		signal.Stop(sigCh)
		return err
	}
	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		for sig := range sigCh {
			if s, ok := sig.(syscall.Signal); ok {
				sigW.Write([]byte{byte(s)})
			}
		}
	}()
	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
		<-relayDone
		sigW.Close()
		sigR.Close()
		err = errutil.Multi(err, h.ed.Close())
	}()

	if h.tick > 0 {
		h.nextTick = time.Now().Add(h.tick)
	}
	for !h.exiting && !h.ed.Stopped() {
		files := []*os.File{sigR}
		if h.watching {
			files = append(files, h.in)
		}
		ready, err := eunix.WaitForRead(h.timeout(time.Now()), files...)
		if err != nil {
			return fmt.Errorf("wait for input: %w", err)
		}
		if ready[0] {
			h.handleSignals(sigR)
		}
		now := time.Now()
		if h.tick > 0 && !now.Before(h.nextTick) {
			h.doTick(now)
		}
		inReady := len(ready) > 1 && ready[1]
		deadline, pending := h.ed.Deadline()
		if h.watching && (inReady || (pending && !now.Before(deadline))) {
			if err := h.ed.HandleIO(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *Host) handleSignals(r *os.File) {
	var buf [16]byte
	n, err := r.Read(buf[:])
	if err != nil {
		logger.Println("failed to read signals:", err)
		return
	}
	for _, b := range buf[:n] {
		sig := syscall.Signal(b)
		logger.Println("signal", sig)
		switch sig {
		case syscall.SIGWINCH:
			h.ed.Refresh()
		case syscall.SIGTERM, syscall.SIGHUP:
			h.exiting = true
		}
	}
}
