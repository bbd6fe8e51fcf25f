// Package parse implements the tokenizer that splits an edit line into words
// under shell-like quoting rules.
package parse

import (
	"strings"
)

// TokenError describes a quoting problem found by the tokenizer. It is
// reported as part of TokenLine rather than as a Go error, since a partially
// quoted line is a normal state while the user is still typing.
type TokenError int

// Possible values of TokenError.
const (
	// OK means the line was tokenized without problems.
	OK TokenError = iota
	// ErrQuotedReturn means the line ends with an unquoted backslash, which
	// quotes the end of input.
	ErrQuotedReturn
	// ErrDoubleQuote means a double-quoted string is not terminated.
	ErrDoubleQuote
	// ErrSingleQuote means a single-quoted string is not terminated.
	ErrSingleQuote
)

var tokenErrorNames = [...]string{
	OK:              "ok",
	ErrQuotedReturn: "unterminated quote at end of input",
	ErrDoubleQuote:  "unterminated double quote",
	ErrSingleQuote:  "unterminated single quote",
}

func (e TokenError) String() string {
	if 0 <= e && int(e) < len(tokenErrorNames) {
		return tokenErrorNames[e]
	}
	return "unknown token error"
}

// Span is a range [From, To) of character indices into the raw line.
type Span struct {
	From, To int
}

// TokenLine is the quote-aware word view of a line.
type TokenLine struct {
	// Words of the line, with quotes and escaping backslashes removed.
	Words []string
	// Spans of the words in the raw line, including quotes.
	Spans []Span
	// Index of the word that contains the cursor. When the cursor is in
	// whitespace, it is the index of the word that follows, which is
	// len(Words) when no word follows.
	CursorWord int
	// Offset of the cursor within Words[CursorWord], in characters.
	CursorOffset int
	// Err is OK unless the line has a quoting problem. Callers must check it
	// before trusting Words.
	Err TokenError
}

// IsWhitespace returns whether r separates words.
func IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// Tokenize splits line into words, with the cursor assumed to be at the end of
// the line. A trailing newline is stripped first.
func Tokenize(line string) TokenLine {
	line = strings.TrimSuffix(line, "\n")
	return TokenizeAt(line, len([]rune(line)))
}

type quoteState int

const (
	unquoted quoteState = iota
	singleQuoted
	doubleQuoted
)

// TokenizeAt is like Tokenize, but also locates the cursor, given as a
// character index into line, in the resulting words. The cursor is clamped to
// the line.
func TokenizeAt(line string, cursor int) TokenLine {
	line = strings.TrimSuffix(line, "\n")
	rs := []rune(line)
	if cursor < 0 {
		cursor = 0
	} else if cursor > len(rs) {
		cursor = len(rs)
	}

	t := tokenizer{cursor: cursor}
	state := unquoted
	for i := 0; i < len(rs); i++ {
		t.markCursor(i)
		r := rs[i]
		switch state {
		case unquoted:
			switch {
			case IsWhitespace(r):
				if t.inWord {
					t.finish(i)
				}
			case r == '\'':
				t.begin(i)
				state = singleQuoted
			case r == '"':
				t.begin(i)
				state = doubleQuoted
			case r == '\\':
				t.begin(i)
				if i+1 == len(rs) {
					t.tl.Err = ErrQuotedReturn
					break
				}
				i++
				t.markCursor(i)
				t.word = append(t.word, rs[i])
			default:
				t.begin(i)
				t.word = append(t.word, r)
			}
		case singleQuoted:
			if r == '\'' {
				state = unquoted
			} else {
				t.word = append(t.word, r)
			}
		case doubleQuoted:
			switch {
			case r == '"':
				state = unquoted
			case r == '\\' && i+1 < len(rs) && (rs[i+1] == '"' || rs[i+1] == '\\'):
				i++
				t.markCursor(i)
				t.word = append(t.word, rs[i])
			default:
				t.word = append(t.word, r)
			}
		}
	}
	t.markCursor(len(rs))
	if t.inWord {
		t.finish(len(rs))
	}
	switch state {
	case singleQuoted:
		t.tl.Err = ErrSingleQuote
	case doubleQuoted:
		t.tl.Err = ErrDoubleQuote
	}
	return t.tl
}

type tokenizer struct {
	tl        TokenLine
	word      []rune
	inWord    bool
	start     int
	cursor    int
	cursorSet bool
}

// Records the cursor location when the tokenizer reaches the cursor position
// in the raw line.
func (t *tokenizer) markCursor(i int) {
	if t.cursorSet || i < t.cursor {
		return
	}
	t.cursorSet = true
	t.tl.CursorWord = len(t.tl.Words)
	if t.inWord {
		t.tl.CursorOffset = len(t.word)
	}
}

func (t *tokenizer) begin(i int) {
	if !t.inWord {
		t.inWord = true
		t.start = i
	}
}

func (t *tokenizer) finish(end int) {
	t.tl.Words = append(t.tl.Words, string(t.word))
	t.tl.Spans = append(t.tl.Spans, Span{t.start, end})
	t.word = nil
	t.inWord = false
}
