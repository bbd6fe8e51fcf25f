package cli

import "fmt"

// Outcome is returned by every Action to tell the Editor how to react.
type Outcome int

// Possible values of Outcome.
const (
	// Normal asks the Editor to insert the key that invoked the action,
	// repeated by the numeric argument.
	Normal Outcome = iota
	// Newline accepts the line.
	Newline
	// EOF signals the end of input.
	EOF
	// ArgHack means the action expects further input before taking a
	// visible effect. Nothing is redrawn and the numeric argument is kept.
	ArgHack
	// Refresh redraws the line.
	Refresh
	// Cursor means the cursor moved; the line is redrawn to show it.
	Cursor
	// Error beeps and discards pending input.
	Error
	// Fatal restores the terminal and stops the editor.
	Fatal
	// Redisplay redraws the prompt and the line from scratch. Actions that
	// write notes return it.
	Redisplay
	// RefreshBeep redraws the line and beeps.
	RefreshBeep
)

var outcomeNames = [...]string{
	Normal:      "normal",
	Newline:     "newline",
	EOF:         "eof",
	ArgHack:     "arghack",
	Refresh:     "refresh",
	Cursor:      "cursor",
	Error:       "error",
	Fatal:       "fatal",
	Redisplay:   "redisplay",
	RefreshBeep: "refresh-beep",
}

func (o Outcome) String() string {
	if 0 <= o && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}
