package tk

import "unicode"

// LineBuffer holds the text of the line being edited and the cursor. Positions
// are counted in runes. Arguments out of range are clamped to [0, Len()], so
// no operation can leave the cursor outside the line.
type LineBuffer struct {
	runes  []rune
	cursor int
}

// String returns the content of the buffer.
func (b *LineBuffer) String() string { return string(b.runes) }

// Len returns the number of runes in the buffer.
func (b *LineBuffer) Len() int { return len(b.runes) }

// Cursor returns the position of the cursor.
func (b *LineBuffer) Cursor() int { return b.cursor }

// UpToCursor returns the content before the cursor.
func (b *LineBuffer) UpToCursor() string { return string(b.runes[:b.cursor]) }

// Slice returns the content between from and to.
func (b *LineBuffer) Slice(from, to int) string {
	from, to = b.clampRange(from, to)
	return string(b.runes[from:to])
}

// RuneAt returns the rune at position i, or 0 if i is out of range.
func (b *LineBuffer) RuneAt(i int) rune {
	if i < 0 || i >= len(b.runes) {
		return 0
	}
	return b.runes[i]
}

// Insert inserts text at the cursor and moves the cursor past it.
func (b *LineBuffer) Insert(text string) { b.InsertAt(b.cursor, text) }

// InsertAt inserts text at pos. The cursor moves with the text after it: if it
// was at or after pos, it advances by the length of text.
func (b *LineBuffer) InsertAt(pos int, text string) {
	ins := []rune(text)
	if len(ins) == 0 {
		return
	}
	pos = b.clamp(pos)
	b.runes = append(b.runes, ins...)
	copy(b.runes[pos+len(ins):], b.runes[pos:])
	copy(b.runes[pos:], ins)
	if b.cursor >= pos {
		b.cursor += len(ins)
	}
}

// DeleteRange deletes the text between from and to and returns it. A cursor
// inside the range moves to from; a cursor after it moves back by the length
// of the deleted text.
func (b *LineBuffer) DeleteRange(from, to int) string {
	from, to = b.clampRange(from, to)
	if from == to {
		return ""
	}
	deleted := string(b.runes[from:to])
	b.runes = append(b.runes[:from], b.runes[to:]...)
	switch {
	case b.cursor >= to:
		b.cursor -= to - from
	case b.cursor > from:
		b.cursor = from
	}
	return deleted
}

// MoveCursor moves the cursor to pos.
func (b *LineBuffer) MoveCursor(pos int) { b.cursor = b.clamp(pos) }

// Clear empties the buffer.
func (b *LineBuffer) Clear() {
	b.runes = b.runes[:0]
	b.cursor = 0
}

// Set replaces the content of the buffer with text and puts the cursor at its
// end.
func (b *LineBuffer) Set(text string) {
	b.runes = []rune(text)
	b.cursor = len(b.runes)
}

func (b *LineBuffer) clamp(i int) int {
	switch {
	case i < 0:
		return 0
	case i > len(b.runes):
		return len(b.runes)
	}
	return i
}

func (b *LineBuffer) clampRange(from, to int) (int, int) {
	from, to = b.clamp(from), b.clamp(to)
	if from > to {
		from, to = to, from
	}
	return from, to
}

// IsAlnum determines if the rune is an alphanumeric character.
func IsAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// CategorizeSmallWord determines if the rune is whitespace, part of a word
// (alphanumeric or underscore), or something else.
func CategorizeSmallWord(r rune) int {
	switch {
	case unicode.IsSpace(r):
		return 0
	case IsAlnum(r) || r == '_':
		return 1
	default:
		return 2
	}
}

// PrevWordStart returns the start of the word before the cursor, skipping
// whitespace first.
func (b *LineBuffer) PrevWordStart() int {
	i := b.cursor
	for i > 0 && CategorizeSmallWord(b.runes[i-1]) == 0 {
		i--
	}
	if i == 0 {
		return 0
	}
	cat := CategorizeSmallWord(b.runes[i-1])
	for i > 0 && CategorizeSmallWord(b.runes[i-1]) == cat {
		i--
	}
	return i
}

// NextWordEnd returns the end of the word after the cursor, skipping
// whitespace first.
func (b *LineBuffer) NextWordEnd() int {
	i := b.cursor
	for i < len(b.runes) && CategorizeSmallWord(b.runes[i]) == 0 {
		i++
	}
	if i == len(b.runes) {
		return i
	}
	cat := CategorizeSmallWord(b.runes[i])
	for i < len(b.runes) && CategorizeSmallWord(b.runes[i]) == cat {
		i++
	}
	return i
}
