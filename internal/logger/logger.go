// Package logger configures the diagnostic log shared by every package.
// Packages obtain their own logger with logging.MustGetLogger from
// github.com/op/go-logging; this package only installs the backend.
package logger

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} %{module}: %{message}`,
)

// Setup routes all loggers to stderr. Only errors are shown unless verbose
// is set, in which case debug output is enabled too.
func Setup(verbose bool) {
	SetupWriter(os.Stderr, verbose)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, verbose bool) {
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	if verbose {
		leveled.SetLevel(logging.DEBUG, "")
	} else {
		leveled.SetLevel(logging.ERROR, "")
	}
	logging.SetBackend(leveled)
}
