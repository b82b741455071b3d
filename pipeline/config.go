package pipeline

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/aq/ason"
)

// Config is the resolved configuration of a single run.
// It is built once by the command-line layer and never modified.
type Config struct {
	// Output is the destination file. Empty means standard output.
	Output string
	// QueryFile is the path given with --query. It is carried but not read.
	QueryFile string
	// Query is the positional query expression, if any.
	Query string
	// Inputs are the input file paths, in command-line order.
	Inputs []string
	// Text is inline input text, used only when Inputs is empty.
	Text string
	// Printer renders the root document.
	Printer ason.Printer
}

// Streams are the process streams a run may touch.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	// Interactive reports whether Stdin is attached to a terminal.
	Interactive bool
}

// StdStreams returns the standard streams of the current process.
func StdStreams() Streams {
	fd := os.Stdin.Fd()

	return Streams{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}
