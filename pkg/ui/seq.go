package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrEmptySeq is returned by ParseSeq for an empty key sequence name.
var ErrEmptySeq = errors.New("empty key sequence")

// Final bytes of CSI sequences for keys encoded as \e[X, or \e[1;<mod>X when
// modified. The same keys are sent by xterm and tmux.
var csiByLast = map[rune]byte{
	Up: 'A', Down: 'B', Right: 'C', Left: 'D', Home: 'H', End: 'F',
}

// Numeric arguments of CSI sequences for keys encoded as \e[N~, or
// \e[N;<mod>~ when modified.
var csiTilde = map[rune]int{
	Insert: 2, Delete: 3, PageUp: 5, PageDown: 6,
	F5: 15, F6: 17, F7: 18, F8: 19, F9: 20, F10: 21, F11: 23, F12: 24,
}

// Final bytes of G3 sequences (\eOX) for F1 to F4. When modified, they are
// sent as \e[1;<mod>X instead.
var g3ByFn = map[rune]byte{F1: 'P', F2: 'Q', F3: 'R', F4: 'S'}

// Seq returns the byte sequence a VT100-compatible terminal in xterm mode
// sends for the key. It returns false if the key has no such sequence, like
// Ctrl-Shift-a.
func (k Key) Seq() (string, bool) {
	if k.Rune < 0 {
		return k.functionKeySeq()
	}
	if k.Mod&Shift != 0 {
		if k.Rune == Tab && k.Mod == Shift {
			return "\033[Z", true
		}
		return "", false
	}
	var seq string
	if k.Mod&Ctrl != 0 {
		b, ok := ctrlByte(k.Rune)
		if !ok {
			return "", false
		}
		seq = string(rune(b))
	} else {
		seq = string(k.Rune)
	}
	if k.Mod&Alt != 0 {
		seq = "\033" + seq
	}
	return seq, true
}

func (k Key) functionKeySeq() (string, bool) {
	// xterm encodes modifiers as 1 + (Shift ? 1 : 0) + (Alt ? 2 : 0) +
	// (Ctrl ? 4 : 0).
	mod := 1
	if k.Mod&Shift != 0 {
		mod += 1
	}
	if k.Mod&Alt != 0 {
		mod += 2
	}
	if k.Mod&Ctrl != 0 {
		mod += 4
	}
	if last, ok := csiByLast[k.Rune]; ok {
		if mod == 1 {
			return "\033[" + string(last), true
		}
		return fmt.Sprintf("\033[1;%d%c", mod, last), true
	}
	if n, ok := csiTilde[k.Rune]; ok {
		if mod == 1 {
			return fmt.Sprintf("\033[%d~", n), true
		}
		return fmt.Sprintf("\033[%d;%d~", n, mod), true
	}
	if last, ok := g3ByFn[k.Rune]; ok {
		if mod == 1 {
			return "\033O" + string(last), true
		}
		return fmt.Sprintf("\033[1;%d%c", mod, last), true
	}
	return "", false
}

// Returns the control byte for Ctrl-r.
func ctrlByte(r rune) (byte, bool) {
	switch {
	case r == '`' || r == '@' || r == ' ':
		return 0, true
	case r == '6':
		return 0x1e, true
	case r == '/':
		return 0x1f, true
	case r == '?':
		return 0x7f, true
	case 'A' <= r && r <= '_':
		return byte(r - 0x40), true
	case 'a' <= r && r <= 'z':
		return byte(r - 0x60), true
	}
	return 0, false
}

// ParseSeq parses the name of a key sequence and returns the bytes it stands
// for. Three notations are accepted:
//
//   - Key names understood by ParseKey, like Ctrl-A, Alt-x, Up or F1.
//
//   - Caret notation for control characters: ^A is 0x01, ^[ is Escape and ^?
//     is 0x7f.
//
//   - Backslash escapes: \e or \E (Escape), \a, \b, \f, \n, \r, \t, \v, \\,
//     \^, \xHH and \NNN (octal).
//
// Other characters stand for themselves, so a name may also be a literal
// sequence like "ab" or a mix like "^Xu".
func ParseSeq(s string) (string, error) {
	if s == "" {
		return "", ErrEmptySeq
	}
	if utf8.RuneCountInString(s) > 1 && s[0] != '^' && s[0] != '\\' {
		if k, err := ParseKey(s); err == nil {
			seq, ok := k.Seq()
			if !ok {
				return "", fmt.Errorf("no terminal sequence for key %s", k)
			}
			return seq, nil
		}
	}

	var sb strings.Builder
	for i := 0; i < len(s); {
		switch {
		case s[i] == '^' && i+1 < len(s):
			c := s[i+1]
			switch {
			case c == '?':
				sb.WriteByte(0x7f)
			case '@' <= c && c <= '_':
				sb.WriteByte(c - 0x40)
			case 'a' <= c && c <= 'z':
				sb.WriteByte(c - 0x60)
			default:
				return "", fmt.Errorf("bad caret notation %q in %q", s[i:i+2], s)
			}
			i += 2
		case s[i] == '\\':
			b, n, err := parseEscape(s[i:])
			if err != nil {
				return "", fmt.Errorf("%w in %q", err, s)
			}
			sb.WriteByte(b)
			i += n
		default:
			sb.WriteByte(s[i])
			i++
		}
	}
	return sb.String(), nil
}

var simpleEscapes = map[byte]byte{
	'e': 0x1b, 'E': 0x1b, 'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n',
	'r': '\r', 't': '\t', 'v': '\v', '\\': '\\', '^': '^',
}

// Parses an escape sequence at the start of s, which starts with a backslash.
// It returns the byte and the number of bytes of s consumed.
func parseEscape(s string) (byte, int, error) {
	if len(s) < 2 {
		return 0, 0, errors.New("lone backslash")
	}
	if b, ok := simpleEscapes[s[1]]; ok {
		return b, 2, nil
	}
	switch {
	case s[1] == 'x':
		n := 2
		for n < len(s) && n < 4 && isHex(s[n]) {
			n++
		}
		if n == 2 {
			return 0, 0, errors.New(`\x without hex digits`)
		}
		v, _ := strconv.ParseUint(s[2:n], 16, 8)
		return byte(v), n, nil
	case '0' <= s[1] && s[1] <= '7':
		n := 1
		for n < len(s) && n < 4 && '0' <= s[n] && s[n] <= '7' {
			n++
		}
		v, err := strconv.ParseUint(s[1:n], 8, 8)
		if err != nil {
			return 0, 0, fmt.Errorf("octal escape %q out of range", s[:n])
		}
		return byte(v), n, nil
	}
	return 0, 0, fmt.Errorf("bad escape %q", s[:2])
}

func isHex(b byte) bool {
	return '0' <= b && b <= '9' || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}

// DescribeSeq returns a printable representation of a key sequence, using
// caret notation for control characters.
func DescribeSeq(seq string) string {
	var sb strings.Builder
	for i := 0; i < len(seq); {
		b := seq[i]
		switch {
		case b < 0x20:
			sb.WriteByte('^')
			sb.WriteByte(b + 0x40)
			i++
		case b == 0x7f:
			sb.WriteString("^?")
			i++
		case b < utf8.RuneSelf:
			sb.WriteByte(b)
			i++
		default:
			r, n := utf8.DecodeRuneInString(seq[i:])
			if r == utf8.RuneError && n == 1 {
				fmt.Fprintf(&sb, `\x%02x`, b)
			} else {
				sb.WriteRune(r)
			}
			i += n
		}
	}
	return sb.String()
}
