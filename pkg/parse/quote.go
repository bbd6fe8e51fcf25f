package parse

import (
	"strings"
	"unicode"
)

// Quote returns a representation of s that Tokenize reads back as a single
// word equal to s. If s needs no quoting, it is returned as is; otherwise it
// is single-quoted, with each embedded single quote closing the quoted part,
// written with a backslash, and reopening it.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	bare := true
	for _, r := range s {
		if !allowedBare(r) {
			bare = false
			break
		}
	}
	if bare {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func allowedBare(r rune) bool {
	switch r {
	case '\'', '"', '\\':
		return false
	}
	return !IsWhitespace(r) && unicode.IsPrint(r)
}
