package shell

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"src.elcc.sh/pkg/ui"
)

var errUsage = errors.New("wrong number of arguments")

type command struct {
	usage string
	descr string
	// Number of arguments accepted; max is -1 for no limit.
	min, max int
	fn       func(h *Host, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"echo":      {"echo [word...]", "print the words", 0, -1, echo},
		"history":   {"history", "list the history", 0, 0, history},
		"bindings":  {"bindings", "list the key bindings", 0, 0, bindings},
		"functions": {"functions", "list the editing functions", 0, 0, functions},
		"bind":      {"bind key function", "bind a key to a function", 2, 2, bind},
		"unbind":    {"unbind key", "remove the binding of a key", 1, 1, unbind},
		"prompt":    {"prompt text", "change the prompt", 1, 1, prompt},
		"help":      {"help", "list the commands", 0, 0, help},
		"exit":      {"exit", "end the session", 0, 0, exit},
	}
}

func (h *Host) exec(words []string) error {
	cmd, ok := commands[words[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", words[0])
	}
	args := words[1:]
	if len(args) < cmd.min || (cmd.max >= 0 && len(args) > cmd.max) {
		return fmt.Errorf("%w; usage: %s", errUsage, cmd.usage)
	}
	return cmd.fn(h, args)
}

func echo(h *Host, args []string) error {
	_, err := fmt.Fprintln(h.out, strings.Join(args, " "))
	return err
}

func history(h *Host, _ []string) error {
	entries, err := h.ed.History().Entries()
	if err != nil {
		return err
	}
	for i, entry := range entries {
		fmt.Fprintf(h.out, "%5d  %s\n", i+1, entry)
	}
	return nil
}

func bindings(h *Host, _ []string) error {
	for _, b := range h.ed.Bindings() {
		fmt.Fprintf(h.out, "%-16s %s\n", ui.DescribeSeq(b.Seq), b.Name)
	}
	return nil
}

func functions(h *Host, _ []string) error {
	for _, f := range h.ed.Functions() {
		fmt.Fprintf(h.out, "%-24s %s\n", f.Name, f.Descr)
	}
	return nil
}

func bind(h *Host, args []string) error { return h.ed.Bind(args[0], args[1]) }

func unbind(h *Host, args []string) error { return h.ed.Unbind(args[0]) }

func prompt(h *Host, args []string) error {
	h.ed.SetPrompt(args[0])
	return nil
}

func help(h *Host, _ []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(h.out, "%-20s %s\n", commands[name].usage, commands[name].descr)
	}
	return nil
}

func exit(h *Host, _ []string) error {
	h.exiting = true
	return nil
}
