// Package prog provides the command-line entry point of elcc: it parses flags,
// sets up logging and profiling, and runs a Program.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"time"

	"src.elcc.sh/pkg/logutil"
)

// Version is the version of elcc, overridden at link time for releases.
var Version = "0.1.0-dev"

// Flags keeps command-line flags.
type Flags struct {
	Log, CPUProfile string

	Help, Version bool

	RC   string
	NoRC bool
	DB   string

	Name string
	Tick time.Duration
}

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("elcc", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")
	fs.StringVar(&f.CPUProfile, "cpuprofile", "", "write cpu profile to file")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.Version, "version", false, "show version and quit")

	fs.StringVar(&f.RC, "rc", "", "path to the configuration file")
	fs.BoolVar(&f.NoRC, "norc", false, "don't read the configuration file")
	fs.StringVar(&f.DB, "db", "", "path to the history database, overriding the configuration file")

	fs.StringVar(&f.Name, "name", "", "name of the editor, selecting a section of the configuration file")
	fs.DurationVar(&f.Tick, "tick", 0, "write a note above the line with this period")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: elcc [flags]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs p. It returns the exit status of the
// program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(f)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// Parse returns ErrHelp when -h was requested, which is not
			// defined; treat it like any other undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.CPUProfile != "" {
		f, err := os.Create(f.CPUProfile)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot create CPU profile:", err)
			fmt.Fprintln(fds[2], "Continuing without CPU profiling.")
		} else {
			pprof.StartCPUProfile(f)
			defer pprof.StopCPUProfile()
		}
	}

	if f.Log != "" {
		err = logutil.SetOutputFile(f.Log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
		defer logutil.SetOutput(io.Discard)
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}
	if f.Version {
		fmt.Fprintln(fds[1], Version)
		return 0
	}

	err = p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	var (
		badUsage badUsageError
		exit     exitError
	)
	switch {
	case errors.As(err, &badUsage):
		usage(fds[2], fs)
	case errors.As(err, &exit):
		return exit.exit
	}
	return 2
}

// BadUsage returns a special error that may be returned by Program.Run. It
// causes Run to print out a message and the usage information, and exit
// with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// Run to exit with the given code without printing any error messages.
// Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program is what Run runs after handling the common flags.
type Program interface {
	Run(fds [3]*os.File, f *Flags, args []string) error
}
