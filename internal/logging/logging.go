package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

func Init() {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(lvl)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// WithRedacted returns a logrus entry with sensitive values masked.
// Always route credential-adjacent context through here before logging.
func WithRedacted(fields logrus.Fields) *logrus.Entry {
	return logrus.WithFields(Redact(fields))
}
