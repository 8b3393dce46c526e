// Package debug provides conditional debug logging for flowcanvas.
//
// Debug logging is enabled with the --debug flag, which writes to
// flowcanvas-debug.log in the working directory, or by setting
// FLOWCANVAS_DEBUG, which logs to stderr until the UI redirects it:
//
//	flowcanvas --debug scene.json
//
// When disabled (the default) every function returns immediately.
package debug

import (
	"io"
	"log"
	"os"
)

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("FLOWCANVAS_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[FLOWCANVAS] ", log.Ltime|log.Lmicroseconds)
	}
}

func Enabled() bool {
	return enabled
}

// SetEnabled turns logging on or off at runtime.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[FLOWCANVAS] ", log.Ltime|log.Lmicroseconds)
	}
}

// SetOutput redirects debug output. The UI points it at a file so nothing
// reaches stderr while the alt screen is active.
func SetOutput(w io.Writer) {
	if logger == nil {
		logger = log.New(w, "[FLOWCANVAS] ", log.Ltime|log.Lmicroseconds)
		return
	}
	logger.SetOutput(w)
}

func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

func LogIf(cond bool, format string, args ...any) {
	if !enabled || !cond {
		return
	}
	logger.Printf(format, args...)
}
