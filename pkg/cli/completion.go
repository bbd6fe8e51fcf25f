package cli

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"src.elcc.sh/pkg/parse"
)

// Spaces between columns of candidates.
const columnGap = 2

// BindCompleter sets the Completer and binds key to ed-complete. If the
// binding fails, the previous Completer is kept.
func (ed *Editor) BindCompleter(key string, c Completer) error {
	old := ed.completer
	ed.completer = c
	if err := ed.table.Bind(key, "ed-complete"); err != nil {
		ed.completer = old
		return err
	}
	return nil
}

func complete(ed *Editor, _ rune) Outcome {
	if ed.completer == nil {
		return Error
	}
	tl := ed.TokenizedLine()
	words := tl.Words
	var span parse.Span
	if tl.CursorWord < len(words) {
		span = tl.Spans[tl.CursorWord]
	} else {
		words = append(words[:len(words):len(words)], "")
		span = parse.Span{From: ed.buf.Cursor(), To: ed.buf.Cursor()}
	}
	current := words[tl.CursorWord]

	cands := ed.completer.Complete(words, tl.CursorWord)
	switch len(cands) {
	case 0:
		return Error
	case 1:
		ed.replaceSpan(span, parse.Quote(cands[0]))
		return Refresh
	}
	if lcp := longestCommonPrefix(cands); utf8.RuneCountInString(lcp) > utf8.RuneCountInString(current) {
		ed.replaceSpan(span, parse.Quote(lcp))
		return Refresh
	}
	if ed.keyCount < 2 {
		return RefreshBeep
	}
	ed.notes = append(ed.notes, formatColumns(cands, ed.width())...)
	return Redisplay
}

func (ed *Editor) replaceSpan(span parse.Span, text string) {
	ed.buf.DeleteRange(span.From, span.To)
	ed.buf.InsertAt(span.From, text)
	ed.buf.MoveCursor(span.From + utf8.RuneCountInString(text))
}

func longestCommonPrefix(ss []string) string {
	lcp := ss[0]
	for _, s := range ss[1:] {
		i := 0
		for i < len(lcp) && i < len(s) && lcp[i] == s[i] {
			i++
		}
		lcp = lcp[:i]
	}
	// Don't split a multi-byte character.
	for len(lcp) > 0 && !utf8.ValidString(lcp) {
		lcp = lcp[:len(lcp)-1]
	}
	return lcp
}

// Lays out items in columns that fit in width, filling each column before the
// next one.
func formatColumns(items []string, width int) []string {
	colWidth := 0
	for _, item := range items {
		colWidth = max(colWidth, runewidth.StringWidth(item))
	}
	colWidth += columnGap
	cols := max(1, (width+columnGap)/colWidth)
	rows := (len(items) + cols - 1) / cols

	lines := make([]string, rows)
	for row := range lines {
		var sb strings.Builder
		for col := 0; col < cols; col++ {
			i := col*rows + row
			if i >= len(items) {
				break
			}
			sb.WriteString(runewidth.FillRight(items[i], colWidth))
		}
		lines[row] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}
