// Package wslog is the package-level structured logger shared by the
// CLI and library-internal diagnostics (spec.md SPEC_FULL §2, C10).
// Grounded on schollz-kiki/src/logging: a package-level *logrus.Logger
// with a Debug(bool) verbosity toggle. It is never fed key material,
// plaintext, or nonces.
package wslog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Callers that want a sub-scope use
// Log.WithField instead of constructing their own logger.
var Log = logrus.New()

func init() {
	Log.Out = os.Stderr
	Log.SetLevel(logrus.InfoLevel)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Debug switches the logger between info and debug verbosity.
func Debug(enabled bool) {
	if enabled {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
}
