// Package logger builds the process-wide logrus logger from configuration.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"bizdocs/internal/config"
)

// New returns a logrus logger honoring the configured level and format.
// Unknown levels fall back to info; any format other than "json" prints text.
func New(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			PrettyPrint:     false,
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return log
}

// LogError logs err with the supplied fields at error level.
func LogError(log logrus.FieldLogger, err error, msg string, fields logrus.Fields) {
	log.WithFields(fields).WithError(err).Error(msg)
}
