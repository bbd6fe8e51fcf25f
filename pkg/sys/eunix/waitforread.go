//go:build unix

package eunix

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// WaitForRead blocks until any of the given files is ready to be read or
// timeout. A negative timeout means no timeout. It returns a boolean array
// indicating which files are ready to be read and any possible error. A poll
// interrupted by a signal is not an error; it returns with no file ready.
func WaitForRead(timeout time.Duration, files ...*os.File) (ready []bool, err error) {
	fds := make([]unix.PollFd, len(files))
	for i, file := range files {
		fds[i] = unix.PollFd{Fd: int32(file.Fd()), Events: unix.POLLIN}
	}
	ms := -1
	if timeout >= 0 {
		// Round up so that a short positive timeout doesn't become a busy
		// poll.
		ms = int((timeout + time.Millisecond - 1) / time.Millisecond)
	}
	_, err = unix.Poll(fds, ms)
	if errors.Is(err, unix.EINTR) {
		err = nil
	}
	ready = make([]bool, len(files))
	for i, fd := range fds {
		ready[i] = fd.Revents&(unix.POLLIN|unix.POLLHUP) != 0
	}
	return ready, err
}
