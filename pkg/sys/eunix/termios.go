//go:build unix

// Package eunix provides Unix-specific utilities for terminals and file
// descriptors.
package eunix

import "golang.org/x/sys/unix"

// Termios represents terminal attributes.
type Termios unix.Termios

// TermiosForFd returns the terminal attributes of the given file descriptor.
func TermiosForFd(fd int) (*Termios, error) {
	term, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	return (*Termios)(term), err
}

// ApplyToFd applies term to the given file descriptor.
func (term *Termios) ApplyToFd(fd int) error {
	return unix.IoctlSetTermios(fd, setAttrNowIOCTL, (*unix.Termios)(term))
}

// Copy returns a copy of term.
func (term *Termios) Copy() *Termios {
	v := *term
	return &v
}

// SetVTime sets the timeout in deciseconds for noncanonical read.
func (term *Termios) SetVTime(v uint8) {
	term.Cc[unix.VTIME] = v
}

// SetVMin sets the minimal number of characters for noncanonical read.
func (term *Termios) SetVMin(v uint8) {
	term.Cc[unix.VMIN] = v
}

// SetICanon sets the canonical flag.
func (term *Termios) SetICanon(v bool) {
	setFlag(&term.Lflag, unix.ICANON, v)
}

// SetIExten sets the iexten flag.
func (term *Termios) SetIExten(v bool) {
	setFlag(&term.Lflag, unix.IEXTEN, v)
}

// SetEcho sets the echo flag.
func (term *Termios) SetEcho(v bool) {
	setFlag(&term.Lflag, unix.ECHO, v)
}

// SetISig sets the isig flag. When it is off, the interrupt, quit and suspend
// characters are delivered as input instead of generating signals.
func (term *Termios) SetISig(v bool) {
	setFlag(&term.Lflag, unix.ISIG, v)
}

// SetICRNL sets the icrnl flag, which translates carriage returns in input to
// newlines.
func (term *Termios) SetICRNL(v bool) {
	setFlag(&term.Iflag, unix.ICRNL, v)
}

// SetIXon sets the ixon flag, which enables ^S/^Q flow control.
func (term *Termios) SetIXon(v bool) {
	setFlag(&term.Iflag, unix.IXON, v)
}

func setFlag[T ~uint32 | ~uint64](flag *T, mask T, v bool) {
	if v {
		*flag |= mask
	} else {
		*flag &^= mask
	}
}
