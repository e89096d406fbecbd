// Package log provides the logrus logger used throughout desod and deso-cli.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// LogDebug enables debug level output for all Logs created after it is set.
var LogDebug bool

// Log wraps a logrus.Entry carrying a "pkg" field.
type Log struct {
	*logrus.Entry
}

// New returns a Log for pkg.
func New(pkg string) Log {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true,
		DisableTimestamp:       true,
		DisableLevelTruncation: true}
	if LogDebug {
		log.SetLevel(logrus.DebugLevel)
	}
	return Log{Entry: log.WithField("pkg", pkg)}
}

// Discard returns a Log that writes nothing. It is useful in tests and for
// library users who do not want output.
func Discard() Log {
	log := logrus.New()
	log.Out = io.Discard
	return Log{Entry: logrus.NewEntry(log)}
}
