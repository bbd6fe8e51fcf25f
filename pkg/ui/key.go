// Package ui names the keys of a terminal keyboard and translates between key
// names and the byte sequences terminals send for them.
package ui

import (
	"fmt"
	"strings"
)

// Key represents a single keyboard input, typically assembled from an escape
// sequence.
type Key struct {
	Rune rune
	Mod  Mod
}

// K constructs a new Key.
func K(r rune, mods ...Mod) Key {
	var mod Mod
	for _, m := range mods {
		mod |= m
	}
	return Key{r, mod}
}

// Mod represents a modifier key.
type Mod byte

// Values for Mod.
const (
	// Shift is the shift modifier. It is only applied to special keys (e.g.
	// Shift-F1). For instance 'A' and '@' which are typically entered with the
	// shift key pressed, are not considered to be shift-modified.
	Shift Mod = 1 << iota
	// Alt is the alt modifier, traditionally known as the meta modifier.
	Alt
	Ctrl
)

// Special negative runes to represent function keys, used in the Rune field
// of the Key struct.
const (
	F1 rune = -iota - 1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	Up
	Down
	Right
	Left

	Home
	Insert
	Delete
	End
	PageUp
	PageDown
)

// Keys that are represented by their ASCII code.
const (
	Tab       = '\t'
	Enter     = '\n'
	Backspace = 0x7f
	Esc       = 0x1b
)

var functionKeyNames = [...]string{
	"(none)",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"Up", "Down", "Right", "Left",
	"Home", "Insert", "Delete", "End", "PageUp", "PageDown",
}

var keyNames = map[rune]string{
	Tab: "Tab", Enter: "Enter", Backspace: "Backspace", Esc: "Esc", ' ': "Space",
}

func (k Key) String() string {
	var sb strings.Builder
	if k.Mod&Ctrl != 0 {
		sb.WriteString("Ctrl-")
	}
	if k.Mod&Alt != 0 {
		sb.WriteString("Alt-")
	}
	if k.Mod&Shift != 0 {
		sb.WriteString("Shift-")
	}
	if k.Rune > 0 {
		if name, ok := keyNames[k.Rune]; ok {
			sb.WriteString(name)
		} else {
			sb.WriteRune(k.Rune)
		}
	} else {
		i := int(-k.Rune)
		if i >= len(functionKeyNames) {
			fmt.Fprintf(&sb, "(bad function key %d)", k.Rune)
		} else {
			sb.WriteString(functionKeyNames[i])
		}
	}
	return sb.String()
}

// modifierByName maps a name to a modifier. It is used for parsing keys where
// the modifier string is first turned to lower case, so that all of C, c,
// CTRL, Ctrl and ctrl can represent the Ctrl modifier.
var modifierByName = map[string]Mod{
	"s": Shift, "shift": Shift,
	"a": Alt, "alt": Alt,
	"m": Alt, "meta": Alt,
	"c": Ctrl, "ctrl": Ctrl,
}

// ParseKey parses a key. The syntax is:
//
//	Key = { Mod ('+' | '-') } BareKey
//
//	BareKey = FunctionKeyName | SingleRune
func ParseKey(s string) (Key, error) {
	var k Key

	// Parse modifiers.
	for {
		i := strings.IndexAny(s, "+-")
		if i <= 0 {
			break
		}
		modname := strings.ToLower(s[:i])
		mod, ok := modifierByName[modname]
		if !ok {
			return Key{}, fmt.Errorf("bad modifier: %s", modname)
		}
		k.Mod |= mod
		s = s[i+1:]
	}

	if r := []rune(s); len(r) == 1 {
		k.Rune = r[0]
		if k.Mod&Ctrl != 0 {
			// Ctrl modifies the uppercase form; Ctrl-I and Ctrl-J are the
			// same bytes as Tab and Enter and are normalized to them.
			k.Rune = toUpper(k.Rune)
			switch k.Rune {
			case 'I':
				k = Key{Tab, k.Mod &^ Ctrl}
			case 'J':
				k = Key{Enter, k.Mod &^ Ctrl}
			}
		}
		return k, nil
	}

	for r, name := range keyNames {
		if s == name {
			k.Rune = r
			return k, nil
		}
	}

	for i, name := range functionKeyNames[1:] {
		if s == name {
			k.Rune = rune(-i - 1)
			return k, nil
		}
	}

	return Key{}, fmt.Errorf("bad key: %s", s)
}

func toUpper(r rune) rune {
	if 'a' <= r && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
