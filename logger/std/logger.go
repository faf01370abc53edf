package std

import (
	"fmt"
	"io"
	"os"

	"github.com/pwnedgod/cstruct/logger"
)

type stdLogger struct {
	out   io.Writer
	err   io.Writer
	debug bool
}

// NewLogger logs Info and Debug to stdout and Error to stderr.
func NewLogger() logger.Logger {
	return NewWriterLogger(os.Stdout, os.Stderr, true)
}

// NewWriterLogger is NewLogger with explicit sinks. Debug lines are dropped
// unless debug is set.
func NewWriterLogger(out, err io.Writer, debug bool) logger.Logger {
	return &stdLogger{out: out, err: err, debug: debug}
}

func (l stdLogger) Info(args ...any) {
	fmt.Fprintln(l.out, args...)
}

func (l stdLogger) Debug(args ...any) {
	if l.debug {
		fmt.Fprintln(l.out, args...)
	}
}

func (l stdLogger) Error(args ...any) {
	fmt.Fprintln(l.err, args...)
}
