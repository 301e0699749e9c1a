package logs

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New инициализирует логгер. JSON в релизном окружении, текст с debug
// уровнем локально.
func New(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	logger.SetFormatter(new(logrus.JSONFormatter))
	logger.SetLevel(logrus.InfoLevel)

	if os.Getenv("GIN_MODE") != "release" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(new(logrus.TextFormatter))
	}

	return logger
}
