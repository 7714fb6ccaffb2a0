// FILE: ssetail/src/cmd/ssetail/output.go
package main

import (
	"fmt"
	"io"
	"os"
)

// OutputHandler manages direct console output respecting quiet mode
type OutputHandler struct {
	quiet  bool
	stdout io.Writer
	stderr io.Writer
}

// Global output handler instance
var output *OutputHandler

// InitOutputHandler initializes the global output handler
func InitOutputHandler(quiet bool) {
	output = &OutputHandler{
		quiet:  quiet,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Print writes to stdout if not in quiet mode
func (o *OutputHandler) Print(format string, args ...any) {
	if !o.quiet {
		fmt.Fprintf(o.stdout, format, args...)
	}
}

// Error writes to stderr if not in quiet mode
func (o *OutputHandler) Error(format string, args ...any) {
	if !o.quiet {
		fmt.Fprintf(o.stderr, format, args...)
	}
}

func Print(format string, args ...any) {
	if output != nil {
		output.Print(format, args...)
	}
}

func Error(format string, args ...any) {
	if output != nil {
		output.Error(format, args...)
	}
}

// FatalError writes to stderr (respecting quiet mode), flushes the logger and exits
func FatalError(code int, format string, args ...any) {
	if output != nil {
		output.Error(format, args...)
	} else {
		fmt.Fprintf(os.Stderr, format, args...)
	}
	shutdownLogger()
	os.Exit(code)
}
