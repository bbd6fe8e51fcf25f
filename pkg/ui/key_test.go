package ui

import (
	"testing"

	. "src.elcc.sh/pkg/tt"
)

func TestK(t *testing.T) {
	Test(t, Fn("K", K), Table{
		Args('a').Rets(Key{'a', 0}),
		Args('a', Alt).Rets(Key{'a', Alt}),
		Args('a', Alt, Ctrl).Rets(Key{'a', Alt | Ctrl}),
	})
}

func TestKey_String(t *testing.T) {
	Test(t, Fn("Key.String", Key.String), Table{
		Args(K('a')).Rets("a"),
		Args(K('a', Alt)).Rets("Alt-a"),
		Args(K('a', Ctrl, Alt, Shift)).Rets("Ctrl-Alt-Shift-a"),
		Args(K(Tab)).Rets("Tab"),
		Args(K(' ')).Rets("Space"),
		Args(K(F1)).Rets("F1"),
		Args(K(PageDown, Ctrl)).Rets("Ctrl-PageDown"),
		Args(K(-2000)).Rets("(bad function key -2000)"),
	})
}

func TestParseKey(t *testing.T) {
	Test(t, Fn("ParseKey", ParseKey), Table{
		Args("x").Rets(K('x'), nil),
		Args("Tab").Rets(K(Tab), nil),
		Args("F1").Rets(K(F1), nil),
		Args("Space").Rets(K(' '), nil),

		// Alt- keys are case-sensitive.
		Args("a-x").Rets(Key{'x', Alt}, nil),
		Args("a-X").Rets(Key{'X', Alt}, nil),

		// Ctrl- keys are case-insensitive.
		Args("C-x").Rets(Key{'X', Ctrl}, nil),
		Args("C-X").Rets(Key{'X', Ctrl}, nil),

		// + is the same as -.
		Args("C+X").Rets(Key{'X', Ctrl}, nil),

		// Full names and alternative names.
		Args("M-x").Rets(Key{'x', Alt}, nil),
		Args("Meta-x").Rets(Key{'x', Alt}, nil),

		// Multiple modifiers in any order.
		Args("Alt-Ctrl-Delete").Rets(Key{Delete, Alt | Ctrl}, nil),
		Args("Ctrl-Alt-Delete").Rets(Key{Delete, Alt | Ctrl}, nil),

		// Ctrl-I and Ctrl-J are Tab and Enter.
		Args("Ctrl-I").Rets(K(Tab), nil),
		Args("Ctrl-J").Rets(K(Enter), nil),

		// A lone separator is a key by itself.
		Args("-").Rets(K('-'), nil),
		Args("C--").Rets(Key{'-', Ctrl}, nil),

		Args("F123").Rets(Key{}, ErrorWithMessage("bad key: F123")),
		Args("Super-X").Rets(Key{}, ErrorWithMessage("bad modifier: super")),
	})
}

func TestKey_Seq(t *testing.T) {
	Test(t, Fn("Key.Seq", Key.Seq), Table{
		Args(K('a')).Rets("a", true),
		Args(K('é')).Rets("é", true),
		Args(K('a', Alt)).Rets("\033a", true),
		Args(K('A', Ctrl)).Rets("\x01", true),
		Args(K('a', Ctrl)).Rets("\x01", true),
		Args(K('A', Ctrl, Alt)).Rets("\033\x01", true),
		Args(K('@', Ctrl)).Rets("\x00", true),
		Args(K('[', Ctrl)).Rets("\033", true),
		Args(K('?', Ctrl)).Rets("\x7f", true),
		Args(K(Tab)).Rets("\t", true),
		Args(K(Tab, Shift)).Rets("\033[Z", true),
		Args(K(Backspace)).Rets("\x7f", true),

		Args(K(Up)).Rets("\033[A", true),
		Args(K(Left)).Rets("\033[D", true),
		Args(K(Home)).Rets("\033[H", true),
		Args(K(End)).Rets("\033[F", true),
		Args(K(Left, Ctrl)).Rets("\033[1;5D", true),
		Args(K(Up, Shift, Alt)).Rets("\033[1;4A", true),
		Args(K(Delete)).Rets("\033[3~", true),
		Args(K(Delete, Ctrl)).Rets("\033[3;5~", true),
		Args(K(PageUp)).Rets("\033[5~", true),
		Args(K(F1)).Rets("\033OP", true),
		Args(K(F4, Shift)).Rets("\033[1;2S", true),
		Args(K(F5)).Rets("\033[15~", true),
		Args(K(F12)).Rets("\033[24~", true),

		Args(K('a', Shift)).Rets("", false),
		Args(K('1', Ctrl)).Rets("", false),
		Args(K(-2000)).Rets("", false),
	})
}

func TestParseSeq(t *testing.T) {
	Test(t, Fn("ParseSeq", ParseSeq), Table{
		// Caret notation.
		Args("^A").Rets("\x01", nil),
		Args("^a").Rets("\x01", nil),
		Args("^[").Rets("\033", nil),
		Args("^?").Rets("\x7f", nil),
		Args("^@").Rets("\x00", nil),
		Args("^Xu").Rets("\x18u", nil),
		Args("^").Rets("^", nil),

		// Backslash escapes.
		Args(`\e[A`).Rets("\033[A", nil),
		Args(`\E`).Rets("\033", nil),
		Args(`\t\n\r`).Rets("\t\n\r", nil),
		Args(`\\`).Rets(`\`, nil),
		Args(`\^A`).Rets("^A", nil),
		Args(`\x7f`).Rets("\x7f", nil),
		Args(`\x1bb`).Rets("\033b", nil),
		Args(`\033`).Rets("\033", nil),
		Args(`\0`).Rets("\x00", nil),

		// Key names.
		Args("Ctrl-A").Rets("\x01", nil),
		Args("Alt-b").Rets("\033b", nil),
		Args("Up").Rets("\033[A", nil),
		Args("Ctrl-Left").Rets("\033[1;5D", nil),
		Args("F1").Rets("\033OP", nil),

		// Literal text.
		Args("a").Rets("a", nil),
		Args("ab").Rets("ab", nil),
		Args("\t").Rets("\t", nil),

		Args("").Rets("", ErrorIs(ErrEmptySeq)),
		Args("Shift-a").Rets("", ErrorWithMessage("no terminal sequence for key Shift-a")),
		Args("^1").Rets("", ErrorWithMessage(`bad caret notation "^1" in "^1"`)),
		Args(`\`).Rets("", ErrorWithMessage(`lone backslash in "\\"`)),
		Args(`\q`).Rets("", ErrorWithMessage(`bad escape "\\q" in "\\q"`)),
		Args(`\xg`).Rets("", ErrorWithMessage(`\x without hex digits in "\\xg"`)),
		Args(`\777`).Rets("", ErrorWithMessage(`octal escape "\\777" out of range in "\\777"`)),
	})
}

func TestDescribeSeq(t *testing.T) {
	Test(t, Fn("DescribeSeq", DescribeSeq), Table{
		Args("\x01").Rets("^A"),
		Args("\033[A").Rets("^[[A"),
		Args("\x7f").Rets("^?"),
		Args("\x00").Rets("^@"),
		Args("abc").Rets("abc"),
		Args("é").Rets("é"),
		Args("\xff").Rets(`\xff`),
	})
}
