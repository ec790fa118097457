// Package logging holds the shared logger of the flightline CLI.
package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Library packages never log; only board,
// store, render and the commands do.
var Log = logrus.New()

// SetLogLevel sets the level of Log from its name. Trace and panic levels are
// not exposed.
func SetLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "info", "":
		Log.SetLevel(logrus.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		Log.SetLevel(logrus.FatalLevel)
	default:
		return fmt.Errorf("unknown log level %q (want debug, info, warn, error or fatal)", level)
	}
	return nil
}
