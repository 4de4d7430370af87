// Package logger builds charmbracelet/log loggers shared by the xpuzzle packages.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a text logger on stdout that follows the global log level.
func New(prefix string) *log.Logger {
	return NewTo(os.Stdout, prefix)
}

// NewTo is New writing to w.
func NewTo(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Discard returns a logger that drops everything, for tests and quiet CLI runs.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// SetLevel parses name and sets the global level. Unknown names select info.
func SetLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	return level
}
