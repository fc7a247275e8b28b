package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	WithField(key string, value interface{}) *logrus.Entry
	WithFields(fields logrus.Fields) *logrus.Entry
	WithError(err error) *logrus.Entry
}

type logger struct {
	*logrus.Logger
}

// New builds a text logger at level. With a non-empty file, output is rotated through lumberjack.
func New(level, file string) Logger {
	log := logrus.New()
	log.SetOutput(output(file))
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(parseLevel(level))
	return &logger{log}
}

// NewWriter builds a logger writing to w, for tests
func NewWriter(w io.Writer, level string) Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	log.SetLevel(parseLevel(level))
	return &logger{log}
}

// Discard drops everything
func Discard() Logger {
	return NewWriter(io.Discard, "error")
}

func output(file string) io.Writer {
	if file == "" {
		return os.Stdout
	}
	if !strings.HasSuffix(file, ".log") {
		file += ".log"
	}
	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    50, // megabytes
		MaxBackups: 10,
		Compress:   true,
	}
}

func parseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
