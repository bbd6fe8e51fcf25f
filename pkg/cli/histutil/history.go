package histutil

import (
	"errors"

	"src.elcc.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[histutil] ")

// History navigates a Store on behalf of the line editor. While navigating,
// the line that was being edited when navigation started is saved, and is
// given back when navigation moves past the newest entry. Entries with the
// same text are only visited once per navigation.
type History struct {
	store Store
	nav   *navigation
}

type navigation struct {
	cursor Cursor
	prefix string
	saved  string
	// Entries visited so far, oldest last. top is the index of the entry
	// being shown, -1 when the saved line is shown.
	stack []string
	top   int
	seen  map[string]bool
}

// NewHistory creates a History backed by the given Store.
func NewHistory(s Store) *History {
	return &History{store: s}
}

// Add adds an accepted line to the store, unless it is empty or the same as
// the newest entry. It also ends any navigation.
func (h *History) Add(line string) error {
	h.nav = nil
	if line == "" {
		return nil
	}
	c := h.store.Cursor("")
	c.Prev()
	last, err := c.Get()
	if err == nil && last.Text == line {
		return nil
	}
	if err != nil && !errors.Is(err, ErrEndOfHistory) {
		logger.Println("failed to get last command:", err)
	}
	_, err = h.store.AddCmd(line)
	return err
}

// Prev moves to the previous entry that starts with prefix and returns it.
// When navigation starts, current is saved and prefix is fixed for the rest
// of the navigation. It returns ErrEndOfHistory when there is no older
// matching entry, leaving the position unchanged.
func (h *History) Prev(current, prefix string) (string, error) {
	if h.nav == nil {
		h.nav = &navigation{
			cursor: h.store.Cursor(prefix), prefix: prefix, saved: current,
			top: -1, seen: map[string]bool{}}
	}
	nav := h.nav
	if nav.top+1 < len(nav.stack) {
		nav.top++
		return nav.stack[nav.top], nil
	}
	for {
		nav.cursor.Prev()
		cmd, err := nav.cursor.Get()
		if err != nil {
			if nav.top == -1 {
				// Nothing was found; there is nothing to navigate.
				h.nav = nil
			}
			return "", err
		}
		if nav.seen[cmd.Text] {
			continue
		}
		nav.seen[cmd.Text] = true
		nav.stack = append(nav.stack, cmd.Text)
		nav.top = len(nav.stack) - 1
		return cmd.Text, nil
	}
}

// Next moves to the next newer entry and returns it. Moving past the newest
// entry ends the navigation and returns the saved line. It returns
// ErrEndOfHistory when not navigating.
func (h *History) Next() (string, error) {
	nav := h.nav
	if nav == nil {
		return "", ErrEndOfHistory
	}
	if nav.top > 0 {
		nav.top--
		return nav.stack[nav.top], nil
	}
	h.nav = nil
	return nav.saved, nil
}

// Navigating returns whether a navigation is in progress.
func (h *History) Navigating() bool { return h.nav != nil }

// Prefix returns the prefix of the current navigation.
func (h *History) Prefix() string {
	if h.nav == nil {
		return ""
	}
	return h.nav.prefix
}

// Reset ends any navigation without restoring the saved line.
func (h *History) Reset() { h.nav = nil }

// Entries returns the texts of all entries, oldest first.
func (h *History) Entries() ([]string, error) {
	cmds, err := h.store.AllCmds()
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(cmds))
	for i, cmd := range cmds {
		texts[i] = cmd.Text
	}
	return texts, nil
}

// Len returns the number of entries. It returns 0 if the store can't be read.
func (h *History) Len() int {
	cmds, err := h.store.AllCmds()
	if err != nil {
		logger.Println("failed to get commands:", err)
		return 0
	}
	return len(cmds)
}
