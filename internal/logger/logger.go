package logger

import (
	"io"
	"log"
	"os"
)

// Logger is an alias so callers need not import log.
type Logger = log.Logger

// New returns a logger writing progress to stderr with a component prefix.
func New(component string) *Logger {
	return NewTo(os.Stderr, component)
}

func NewTo(out io.Writer, component string) *Logger {
	return log.New(out, "["+component+"] ", log.LstdFlags|log.Lmicroseconds)
}

// Discard drops everything.
func Discard() *Logger {
	return log.New(io.Discard, "", 0)
}
