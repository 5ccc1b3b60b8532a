// Package log provides the logging interface used by the commands and
// long-running helpers, backed by logrus.
package log

import "io"

// Logger is the logging interface used across the application
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})

	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// Nop returns a logger that discards everything
func Nop() Logger {
	return New(io.Discard, "panic")
}
