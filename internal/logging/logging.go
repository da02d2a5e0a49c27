// Package logging provides the engine's structured logger: a single
// logrus.Logger initialized once at process start, plus contextual helper
// constructors mirroring the "WithXxxContext" pattern the rest of the
// stack uses for request/run tracing.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// Init configures the global logger: JSON output in production, colorized
// text in development, level from logLevel or LOG_LEVEL with a
// debug/info default split by environment.
func Init(logLevel string, isDevelopment bool) *logrus.Logger {
	log := logrus.New()

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			if isDevelopment {
				logLevel = "debug"
			} else {
				logLevel = "info"
			}
		}
	}

	if level, err := logrus.ParseLevel(strings.ToLower(logLevel)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", logLevel).Warn("invalid LOG_LEVEL, using info")
	}

	if !isDevelopment || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	}

	log.SetOutput(os.Stdout)
	logger = log
	return log
}

// Get returns the global logger, initializing it with production defaults
// if Init was never called.
func Get() *logrus.Logger {
	if logger == nil {
		return Init("info", false)
	}
	return logger
}

// WithRunContext tags every log line for one optimization run: its id, the
// sport/platform the pool was built for, and the engine mode dispatched to.
func WithRunContext(runID, sport, platform string, mode string) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"run_id":   runID,
		"sport":    sport,
		"platform": platform,
		"mode":     mode,
	})
}

// WithGenerationContext extends a run-scoped entry with the current
// generation number, for per-generation Debug lines.
func WithGenerationContext(base *logrus.Entry, generation int) *logrus.Entry {
	return base.WithField("generation", generation)
}

// WithHTTPContext tags a log line with the inbound HTTP request shape, for
// the thin gin boundary in internal/api/handlers.
func WithHTTPContext(method, path, requestID string) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"http_method": method,
		"http_path":   path,
		"request_id":  requestID,
	})
}
