package term

import "github.com/mattn/go-runewidth"

// BufferBuilder supports building a Buffer. Lines are wrapped when they reach
// the width of the buffer.
type BufferBuilder struct {
	Width, Col int
	Lines      [][]Cell
	Dot        Pos
}

// NewBufferBuilder makes a new BufferBuilder, initially with one empty line.
func NewBufferBuilder(width int) *BufferBuilder {
	return &BufferBuilder{Width: width, Lines: [][]Cell{make([]Cell, 0, width)}}
}

// Cursor returns the current position of the builder.
func (bb *BufferBuilder) Cursor() Pos {
	return Pos{len(bb.Lines) - 1, bb.Col}
}

// SetDotHere sets the dot of the buffer to the current position.
func (bb *BufferBuilder) SetDotHere() *BufferBuilder {
	bb.Dot = bb.Cursor()
	return bb
}

// Newline starts a new line.
func (bb *BufferBuilder) Newline() *BufferBuilder {
	bb.Lines = append(bb.Lines, make([]Cell, 0, bb.Width))
	bb.Col = 0
	return bb
}

// WriteRune writes a single rune. Newlines start a new line; other control
// characters are written in caret notation.
func (bb *BufferBuilder) WriteRune(r rune) *BufferBuilder {
	if r == '\n' {
		return bb.Newline()
	}
	var text string
	switch {
	case r < 0x20:
		text = "^" + string(r+0x40)
	case r == 0x7f:
		text = "^?"
	default:
		text = string(r)
	}
	w := runewidth.StringWidth(text)
	if w == 0 {
		// Combining characters join the previous cell.
		if last := len(bb.Lines) - 1; len(bb.Lines[last]) > 0 {
			cells := bb.Lines[last]
			cells[len(cells)-1].Text += text
			return bb
		}
	}
	if bb.Col+w > bb.Width && bb.Col > 0 {
		bb.Newline()
	}
	last := len(bb.Lines) - 1
	bb.Lines[last] = append(bb.Lines[last], Cell{text})
	bb.Col += w
	return bb
}

// WrapsBefore returns whether writing r next would start a new line.
func (bb *BufferBuilder) WrapsBefore(r rune) bool {
	w := runewidth.RuneWidth(r)
	if r < 0x20 || r == 0x7f {
		w = 2
	}
	return w > 0 && bb.Col > 0 && bb.Col+w > bb.Width
}

// Write writes a string.
func (bb *BufferBuilder) Write(text string) *BufferBuilder {
	for _, r := range text {
		bb.WriteRune(r)
	}
	return bb
}

// WriteSpaces writes n spaces.
func (bb *BufferBuilder) WriteSpaces(n int) *BufferBuilder {
	for i := 0; i < n; i++ {
		bb.WriteRune(' ')
	}
	return bb
}

// Buffer returns a Buffer built by the BufferBuilder.
func (bb *BufferBuilder) Buffer() *Buffer {
	return &Buffer{bb.Width, bb.Lines, bb.Dot}
}
