package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. Init replaces it with a configured
// instance; the zero-value default keeps early startup messages visible.
var Log = logrus.New()

// Init configures the shared logger with a specific level.
func Init(level string) {
	Log = NewLogger(level)
}

// NewLogger builds a logger with JSON output at the requested level.
func NewLogger(level string) *logrus.Logger {
	var log = logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	switch strings.ToLower(level) {
	case "trace":
		log.SetLevel(logrus.TraceLevel)
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
