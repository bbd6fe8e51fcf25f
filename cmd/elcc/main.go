// Elcc is a demo of the elcc line editor: a small command interpreter with
// history, completion, key bindings read from a configuration file, and
// optional periodic notes written above the line being edited.
package main

import (
	"os"

	"src.elcc.sh/pkg/prog"
	"src.elcc.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args, shell.Program{}))
}
