// Package logger provides this repository's single charmbracelet/log
// wrapper, used by every package that wants a prefixed, leveled logger
// instead of reaching for the stdlib log package directly.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Default creates a logger that respects the process-wide log level set via
// log.SetLevel, with no timestamp or caller noise - the shape most CLI
// output wants.
func Default(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a logger with an explicit level, caller reporting
// and timestamp/formatter choice, for callers (such as tests) that don't
// want the ambient global level.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
