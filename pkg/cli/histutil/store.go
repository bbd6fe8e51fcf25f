// Package histutil provides the command history of the editor: stores that
// keep accepted lines, cursors that walk them, and the History navigator used
// by the history actions.
package histutil

import (
	"errors"

	"src.elcc.sh/pkg/store/storedefs"
)

// ErrEndOfHistory is returned by Cursor.Get when the cursor is not on any
// command, and by History when navigation can't go further.
var ErrEndOfHistory = errors.New("end of history")

// Store is an abstract interface for history store.
type Store interface {
	// AddCmd adds a new command history entry and returns its sequence
	// number.
	AddCmd(text string) (int, error)
	// AllCmds returns all commands kept in the store.
	AllCmds() ([]storedefs.Cmd, error)
	// Cursor returns a cursor that iterates through commands with the given
	// prefix. The cursor is initially placed just after the last command in
	// the store.
	Cursor(prefix string) Cursor
}

// Cursor is used to navigate a Store.
type Cursor interface {
	// Prev moves the cursor to the previous command.
	Prev()
	// Next moves the cursor to the next command.
	Next()
	// Get returns the command the cursor is currently at, or any error if the
	// cursor is in an invalid state. If the cursor is "over the edge", the
	// error is ErrEndOfHistory.
	Get() (storedefs.Cmd, error)
}

// DB is the part of the storage database used by the DB store.
type DB interface {
	NextCmdSeq() (int, error)
	AddCmd(cmd string) (int, error)
	CmdsWithSeq(from, upto int) ([]storedefs.Cmd, error)
	PrevCmd(upto int, prefix string) (storedefs.Cmd, error)
	NextCmd(from int, prefix string) (storedefs.Cmd, error)
}
