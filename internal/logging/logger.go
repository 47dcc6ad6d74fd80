package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Fields map[string]interface{}

var log = newLogger("info", "json")

func newLogger(level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	if strings.ToLower(format) == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}

// Init replaces the process logger. Unknown levels fall back to info and any
// format other than "text" produces JSON lines.
func Init(level, format string) {
	log = newLogger(level, format)
}

// Logger exposes the underlying logger for libraries that want an io.Writer
// or a *logrus.Entry.
func Logger() *logrus.Logger { return log }

func entry(fields Fields, err error) *logrus.Entry {
	e := logrus.NewEntry(log)
	if len(fields) > 0 {
		e = e.WithFields(logrus.Fields(fields))
	}
	if err != nil {
		e = e.WithError(err)
	}
	return e
}

// Debug logs a debug message with optional fields.
func Debug(msg string, fields Fields) {
	entry(fields, nil).Debug(msg)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	entry(fields, nil).Info(msg)
}

// Warn logs a warning with optional fields.
func Warn(msg string, fields Fields) {
	entry(fields, nil).Warn(msg)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	entry(fields, err).Error(msg)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	entry(fields, err).Fatal(msg)
}
