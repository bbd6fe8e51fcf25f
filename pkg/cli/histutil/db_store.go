package histutil

import (
	"errors"

	"src.elcc.sh/pkg/store/storedefs"
)

// NewDBStore returns a Store backed by a database. Commands added to the
// database, by this Store or by other processes, become visible to cursors
// created after the addition.
func NewDBStore(db DB) Store {
	return dbStore{db}
}

type dbStore struct {
	db DB
}

func (s dbStore) AllCmds() ([]storedefs.Cmd, error) {
	upper, err := s.db.NextCmdSeq()
	if err != nil {
		return nil, err
	}
	return s.db.CmdsWithSeq(0, upper)
}

func (s dbStore) AddCmd(text string) (int, error) {
	return s.db.AddCmd(text)
}

func (s dbStore) Cursor(prefix string) Cursor {
	upper, err := s.db.NextCmdSeq()
	if err != nil {
		return &dbStoreCursor{s.db, prefix, 0, storedefs.Cmd{Seq: -1}, err}
	}
	return &dbStoreCursor{
		s.db, prefix, upper, storedefs.Cmd{Seq: upper}, ErrEndOfHistory}
}

type dbStoreCursor struct {
	db     DB
	prefix string
	upper  int
	cmd    storedefs.Cmd
	err    error
}

func (c *dbStoreCursor) Prev() {
	if c.cmd.Seq < 0 {
		return
	}
	cmd, err := c.db.PrevCmd(c.cmd.Seq, c.prefix)
	c.set(cmd, err, -1)
}

func (c *dbStoreCursor) Next() {
	if c.cmd.Seq >= c.upper {
		return
	}
	cmd, err := c.db.NextCmd(c.cmd.Seq+1, c.prefix)
	if err == nil && cmd.Seq >= c.upper {
		err = storedefs.ErrNoMatchingCmd
	}
	c.set(cmd, err, c.upper)
}

func (c *dbStoreCursor) set(cmd storedefs.Cmd, err error, endSeq int) {
	switch {
	case err == nil:
		c.cmd = cmd
		c.err = nil
	case errors.Is(err, storedefs.ErrNoMatchingCmd):
		c.cmd = storedefs.Cmd{Seq: endSeq}
		c.err = ErrEndOfHistory
	default:
		// Don't change c.cmd
		c.err = err
	}
}

func (c *dbStoreCursor) Get() (storedefs.Cmd, error) {
	return c.cmd, c.err
}
