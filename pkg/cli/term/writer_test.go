package term

import (
	"strings"
	"testing"
)

func TestWriter(t *testing.T) {
	sb := &strings.Builder{}
	testOutput := func(want string) {
		t.Helper()
		if sb.String() != want {
			t.Errorf("got %q, want %q", sb.String(), want)
		}
		sb.Reset()
	}

	w := NewWriter(sb)

	// First write onto an empty canvas.
	w.UpdateBuffer(nil, NewBufferBuilder(10).Write("> ab").SetDotHere().Buffer(), false)
	testOutput(hideCursor + "\r" + "> ab" + "\r\033[4C" + showCursor)

	// Appending only writes the new cells.
	w.UpdateBuffer(nil, NewBufferBuilder(10).Write("> abc").SetDotHere().Buffer(), false)
	testOutput(hideCursor + "\r" + "\033[4Cc" + "\r\033[5C" + showCursor)

	// Changing a cell in the middle erases the rest of the line.
	w.UpdateBuffer(nil, NewBufferBuilder(10).Write("> axc").SetDotHere().Buffer(), false)
	testOutput(hideCursor + "\r" + "\033[3C\033[Kxc" + "\r\033[5C" + showCursor)

	// Unchanged content only moves the cursor.
	w.UpdateBuffer(nil, NewBufferBuilder(10).Write("> a").SetDotHere().Write("xc").Buffer(), false)
	testOutput(hideCursor + "\r" + "\r\033[3C" + showCursor)

	// Notes force a full refresh.
	w.UpdateBuffer([]string{"note 1", "note 2"},
		NewBufferBuilder(10).Write("> axc").SetDotHere().Buffer(), false)
	testOutput(hideCursor + "\r" + " \033[J\r" +
		"\033[?7h" + "note 1\n" + "note 2\n" + "\033[?7l" +
		"> axc" + "\r\033[5C" + showCursor)
}

func TestWriter_MultiLine(t *testing.T) {
	sb := &strings.Builder{}
	w := NewWriter(sb)
	w.UpdateBuffer(nil, NewBufferBuilder(4).Write("abcdef").SetDotHere().Buffer(), false)
	if want := hideCursor + "\r" + "abcd\nef" + "\r\033[2C" + showCursor; sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
	sb.Reset()

	// Shrinking to one line erases the old second line, and the rewind
	// starts from the old dot on line 1.
	w.UpdateBuffer(nil, NewBufferBuilder(4).Write("ab").SetDotHere().Buffer(), false)
	want := hideCursor + "\033[1A\r" + "\033[2C\033[K" + "\n\033[J\033[A" +
		"\r\033[2C" + showCursor
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestWriter_ResetBufferAndClearScreen(t *testing.T) {
	sb := &strings.Builder{}
	w := NewWriter(sb)
	w.UpdateBuffer(nil, NewBufferBuilder(4).Write("abcdef").SetDotHere().Buffer(), false)
	w.ResetBuffer()
	if buf := w.Buffer(); len(buf.Lines) != 0 {
		t.Errorf("Buffer() after ResetBuffer has %d lines", len(buf.Lines))
	}
	sb.Reset()
	w.ClearScreen()
	if want := "\033[H\033[2J"; sb.String() != want {
		t.Errorf("ClearScreen wrote %q, want %q", sb.String(), want)
	}
}
