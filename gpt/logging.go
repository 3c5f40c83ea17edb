package gpt

import (
	"io"

	"github.com/sirupsen/logrus"
)

// fieldLogger is the minimal surface this package needs from a logger,
// satisfied directly by *logrus.Logger and *logrus.Entry. Diagnostic
// only: no operation's outcome depends on whether one is attached.
type fieldLogger interface {
	WithField(key string, value interface{}) *logrus.Entry
}

var discardLogger fieldLogger = logrus.New()

func init() {
	// The default logger discards output unless a caller opts in via
	// WithLogger — a library should never force output onto a consumer's
	// stderr.
	discardLogger.(*logrus.Logger).SetOutput(io.Discard)
}
