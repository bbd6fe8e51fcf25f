// Package term keeps an in-memory reflection of the part of the terminal the
// editor owns, and renders changes to it as VT100 sequences.
package term

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is an indivisible unit on the screen. It is not necessarily 1 column
// wide.
type Cell struct {
	Text string
}

// Pos is a line/column position.
type Pos struct {
	Line, Col int
}

// Returns the total width of a Cell slice.
func cellsWidth(cs []Cell) int {
	w := 0
	for _, c := range cs {
		w += runewidth.StringWidth(c.Text)
	}
	return w
}

// Returns whether two Cell slices are equal, and when they are not, the first
// index at which they differ.
func compareCells(r1, r2 []Cell) (bool, int) {
	for i, c := range r1 {
		if i >= len(r2) || c != r2[i] {
			return false, i
		}
	}
	if len(r1) < len(r2) {
		return false, len(r1)
	}
	return true, 0
}

// Buffer reflects a rectangle area in the terminal, along with a cursor (called
// a "dot" here).
//
// The Unix terminal API provides only awkward ways of querying the terminal, so
// we keep an internal reflection and do one-way synchronizations (Buffer ->
// terminal, and not the other way around). This requires us to exactly match
// the terminal's idea of the width of characters and where to insert soft
// line breaks.
type Buffer struct {
	Width int
	// Lines the content of the buffer.
	Lines [][]Cell
	// Dot is what the user perceives as the cursor.
	Dot Pos
}

// Returns the position of the cursor after writing the entire buffer.
func endPos(b *Buffer) Pos {
	if len(b.Lines) == 0 {
		return Pos{}
	}
	return Pos{len(b.Lines) - 1, cellsWidth(b.Lines[len(b.Lines)-1])}
}

// String returns the content of the buffer as plain text, with lines separated
// by "\n".
func (b *Buffer) String() string {
	var sb strings.Builder
	for i, line := range b.Lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range line {
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}
