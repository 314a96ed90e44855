package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rawbytedev/stackie/internal/config"
)

var log *logrus.Logger

// Init configures the shared logger from cfg. Unknown levels fall back to
// info; an output that cannot be opened falls back to stderr.
func Init(cfg config.LogConfig) {
	log = logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
		})
	}

	switch cfg.Output {
	case "", "stderr":
		log.SetOutput(os.Stderr)
	case "stdout":
		log.SetOutput(os.Stdout)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Warnf("cannot open log file %s: %v, using stderr", cfg.Output, err)
		} else {
			log.SetOutput(file)
		}
	}
}

// SetOutput redirects the shared logger.
func SetOutput(w io.Writer) {
	GetLogger().SetOutput(w)
}

// GetLogger returns the shared logger, creating a default one if Init was
// never called.
func GetLogger() *logrus.Logger {
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
	}
	return log
}

func Debugf(format string, args ...interface{}) {
	GetLogger().Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	GetLogger().Infof(format, args...)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return GetLogger().WithFields(fields)
}
