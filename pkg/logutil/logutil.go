// Package logutil provides logging utilities.
//
// Every package that logs keeps its own *log.Logger obtained from GetLogger.
// All loggers share one output, which discards everything until SetOutput or
// SetOutputFile is called.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out     io.Writer = io.Discard
	// Set when out was opened by SetOutputFile.
	outFile *os.File
	loggers []*log.Logger
	mutex   sync.Mutex
)

// GetLogger gets a logger with the given prefix.
func GetLogger(prefix string) *log.Logger {
	mutex.Lock()
	defer mutex.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile, it
// is closed.
func SetOutput(newout io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	setOutput(newout)
	outFile = nil
}

func setOutput(newout io.Writer) {
	if outFile != nil && outFile != newout {
		outFile.Close()
	}
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file. If the name is empty, output is discarded.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	mutex.Lock()
	defer mutex.Unlock()
	setOutput(file)
	outFile = file
	return nil
}
