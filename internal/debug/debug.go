// Package debug provides conditional debug logging for todos.
//
// Debug logging is enabled by setting the TODOS_DEBUG environment variable
// or passing -debug:
//
//	TODOS_DEBUG=1 todos shell
//
// When disabled (default), all functions are no-ops.
package debug

import (
	"io"
	"log"
	"os"
)

const prefix = "[TODOS_DEBUG] "

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("TODOS_DEBUG") != "" {
		SetEnabled(true)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled turns debug logging on or off. The logger writes to stderr
// unless SetOutput was called.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// SetOutput redirects debug output, mainly for tests and for the TUI,
// which owns the terminal while it runs.
func SetOutput(w io.Writer) {
	logger = log.New(w, prefix, log.Ltime|log.Lmicroseconds)
}

// Log writes a debug message if debug logging is enabled.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}
