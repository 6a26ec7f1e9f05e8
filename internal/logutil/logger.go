// Package logutil provides the shared application logger.
package logutil

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// GetLogger returns a singleton logger instance. Level comes from the
// LOG_LEVEL environment variable, defaulting to info.
func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = logrus.New()

		level := os.Getenv("LOG_LEVEL")
		if level == "" {
			level = "info"
		}
		logLevel, err := logrus.ParseLevel(level)
		if err != nil {
			logLevel = logrus.InfoLevel
		}
		logger.SetLevel(logLevel)

		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
		})
		logger.SetOutput(os.Stderr)
	}

	return logger
}
