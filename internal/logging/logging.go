package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New builds the program logger. Unknown levels fall back to warn.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

func NewWithWriter(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:          "bolso",
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
	})
}
