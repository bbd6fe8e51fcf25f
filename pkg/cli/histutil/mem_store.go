package histutil

import (
	"strings"

	"src.elcc.sh/pkg/store/storedefs"
)

// NewMemStore returns a Store that stores command history in memory.
func NewMemStore(texts ...string) Store {
	return NewMemStoreWithLimit(0, texts...)
}

// NewMemStoreWithLimit is like NewMemStore, but keeps at most limit commands,
// dropping the oldest ones. A limit of 0 or less means no limit.
func NewMemStoreWithLimit(limit int, texts ...string) Store {
	s := &memStore{limit: limit}
	for _, text := range texts {
		s.AddCmd(text)
	}
	return s
}

type memStore struct {
	cmds    []storedefs.Cmd
	nextSeq int
	limit   int
}

func (s *memStore) AllCmds() ([]storedefs.Cmd, error) {
	return s.cmds, nil
}

func (s *memStore) AddCmd(text string) (int, error) {
	seq := s.nextSeq
	s.nextSeq++
	s.cmds = append(s.cmds, storedefs.Cmd{Text: text, Seq: seq})
	if s.limit > 0 && len(s.cmds) > s.limit {
		s.cmds = append([]storedefs.Cmd(nil), s.cmds[len(s.cmds)-s.limit:]...)
	}
	return seq, nil
}

func (s *memStore) Cursor(prefix string) Cursor {
	return &memStoreCursor{s.cmds, prefix, len(s.cmds)}
}

type memStoreCursor struct {
	cmds   []storedefs.Cmd
	prefix string
	index  int
}

func (c *memStoreCursor) Prev() {
	if c.index < 0 {
		return
	}
	for c.index--; c.index >= 0; c.index-- {
		if strings.HasPrefix(c.cmds[c.index].Text, c.prefix) {
			return
		}
	}
}

func (c *memStoreCursor) Next() {
	if c.index >= len(c.cmds) {
		return
	}
	for c.index++; c.index < len(c.cmds); c.index++ {
		if strings.HasPrefix(c.cmds[c.index].Text, c.prefix) {
			return
		}
	}
}

func (c *memStoreCursor) Get() (storedefs.Cmd, error) {
	if c.index < 0 || c.index >= len(c.cmds) {
		return storedefs.Cmd{}, ErrEndOfHistory
	}
	return c.cmds[c.index], nil
}
