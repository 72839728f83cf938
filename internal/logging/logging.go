// Package logging builds the logrus logger shared by the doclink binaries.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New creates a logger writing to out at the given level. format is "json"
// or "text"; anything else falls back to text.
func New(out io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(lvl)

	switch format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}

	return l, nil
}

// NewNullLogger creates a logger where log lines are discarded.
func NewNullLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
