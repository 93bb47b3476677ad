// Package log defines the logging seam this library writes
// diagnostics through, and a default implementation backed by
// logrus.
package log

import "github.com/sirupsen/logrus"

// Logger receives diagnostic information during a server's
// operation: accept errors, protocol errors, backend panics. It is
// satisfied by *log.Logger from the standard library, so a caller
// who wants no dependency on logrus can pass one of those instead of
// the default.
type Logger interface {
	Printf(format string, v ...interface{})
}

// logrusAdapter satisfies Logger on top of a *logrus.Logger, the
// default this library wires up when a caller doesn't supply their
// own.
type logrusAdapter struct {
	l *logrus.Logger
}

// New returns a Logger backed by a logrus.Logger configured with
// sensible defaults for a long-running server: text output, second-
// precision timestamps, info level.
func New() Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return &logrusAdapter{l: l}
}

func (a *logrusAdapter) Printf(format string, v ...interface{}) {
	a.l.Printf(format, v...)
}
