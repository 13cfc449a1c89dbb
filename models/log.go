package models

import (
	"fmt"
	"io"
	"os"

	"github.com/mgutz/ansi"
)

// Logger is the side-channel used to surface failures that must not abort
// the operation that hit them. flag marks errors worth the user's
// attention; context names the operation that failed.
type Logger interface {
	Log(err error, flag bool, context string)
}

type writerLogger struct {
	w     io.Writer
	color bool
}

var errColor = ansi.ColorCode("red+b")
var warnColor = ansi.ColorCode("yellow")

// NewLogger returns a Logger writing one line per error to w.
func NewLogger(w io.Writer, color bool) Logger {
	return &writerLogger{w: w, color: color}
}

// DefaultLogger writes to stderr without color.
var DefaultLogger = NewLogger(os.Stderr, false)

func (l *writerLogger) Log(err error, flag bool, context string) {
	if err == nil {
		return
	}
	line := err.Error()
	if context != "" {
		line = context + ": " + line
	}
	if l.color {
		c := warnColor
		if flag {
			c = errColor
		}
		line = c + line + ansi.Reset
	}
	fmt.Fprintln(l.w, line)
}

// NullLogger drops everything. Handy for tests.
var NullLogger Logger = nullLogger{}

type nullLogger struct{}

func (nullLogger) Log(error, bool, string) {}
