package cli

import (
	"strings"
	"unicode/utf8"

	"src.elcc.sh/pkg/cli/term"
)

type redrawFlag uint

const (
	// Redraw the prompt and the line from scratch instead of only updating
	// what has changed.
	fullRedraw redrawFlag = 1 << iota
	// Draw the line for the last time, and move the cursor below it.
	finalRedraw
)

// Fallback width when the terminal reports none.
const defaultWidth = 80

func (ed *Editor) redraw(flag redrawFlag) error {
	final := flag&finalRedraw != 0
	if ed.state != editing || (ed.asyncDepth > 0 && !final) {
		return nil
	}
	notes := ed.notes
	ed.notes = nil

	buf := ed.render(ed.width(), final)
	err := ed.tty.UpdateBuffer(notes, buf, flag&fullRedraw != 0)
	if err != nil {
		logger.Println("failed to update terminal:", err)
	}
	if final {
		ed.tty.ResetBuffer()
	}
	return err
}

func (ed *Editor) width() int {
	_, w := ed.tty.Size()
	if w <= 0 {
		return defaultWidth
	}
	return w
}

// Renders the prompt and the line. The dot of the buffer is where the cursor
// is, or the start of the line after the last one when final is true.
func (ed *Editor) render(width int, final bool) *term.Buffer {
	bb := term.NewBufferBuilder(width)
	bb.Write(ed.prompt.Prompt())
	bb.Write(ed.buf.UpToCursor())
	rest := ed.buf.Slice(ed.buf.Cursor(), ed.buf.Len())
	if final {
		bb.Write(rest).Newline().SetDotHere()
		return bb.Buffer()
	}
	// Terminals can't show the cursor past the last column, so it goes to
	// the next line when the line is full.
	r, _ := utf8.DecodeRuneInString(rest)
	if (rest == "" && bb.Col >= width) || (rest != "" && bb.WrapsBefore(r)) {
		bb.Newline()
	}
	bb.SetDotHere()
	bb.Write(rest)
	return bb.Buffer()
}

// Removes the prompt and the line from the terminal, leaving the cursor where
// the prompt started.
func (ed *Editor) erase() {
	if err := ed.tty.UpdateBuffer(nil, emptyBuffer(ed.width()), true); err != nil {
		logger.Println("failed to update terminal:", err)
	}
	ed.tty.ResetBuffer()
}

// Writes notes above the line, or at the cursor when the Editor is not
// editing.
func (ed *Editor) writeNotes(notes []string) error {
	if ed.state == editing {
		ed.notes = append(ed.notes, notes...)
		return ed.redraw(fullRedraw)
	}
	err := ed.tty.UpdateBuffer(notes, emptyBuffer(ed.width()), true)
	ed.tty.ResetBuffer()
	return err
}

func emptyBuffer(width int) *term.Buffer {
	return &term.Buffer{Width: width, Lines: [][]term.Cell{{}}}
}

func splitNotes(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
