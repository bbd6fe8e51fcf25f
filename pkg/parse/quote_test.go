package parse

import (
	"testing"

	"src.elcc.sh/pkg/tt"
)

func TestQuote(t *testing.T) {
	tt.Test(t, tt.Fn("Quote", Quote), tt.Table{
		tt.Args("").Rets("''"),
		tt.Args("foo").Rets("foo"),
		tt.Args("a/b.c-d").Rets("a/b.c-d"),
		tt.Args("a b").Rets("'a b'"),
		tt.Args("it's").Rets(`'it'\''s'`),
		tt.Args(`a"b`).Rets(`'a"b'`),
		tt.Args(`a\b`).Rets(`'a\b'`),
	})
}

func TestQuote_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "plain", "two words", "it's", `back\slash`, "tab\there", `"dq"`} {
		tl := Tokenize(Quote(s))
		if tl.Err != OK || len(tl.Words) != 1 || tl.Words[0] != s {
			t.Errorf("Tokenize(Quote(%q)) -> %q, %v; want [%q], ok", s, tl.Words, tl.Err, s)
		}
	}
}
