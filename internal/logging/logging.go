package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*logrus.Logger
	LogFile string

	closer io.Closer
}

// New returns a logger at the given level (debug, info, warn or error; empty
// means info). Output goes to stderr, or to a rotating file when file is set.
func New(level, file string) (*Logger, error) {
	lvl := logrus.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = logrus.DebugLevel
	case "info", "":
		lvl = logrus.InfoLevel
	case "warn", "warning":
		lvl = logrus.WarnLevel
	case "error":
		lvl = logrus.ErrorLevel
	default:
		return nil, fmt.Errorf("%s: invalid log level", level)
	}

	l := &Logger{Logger: logrus.New(), LogFile: file}
	l.SetLevel(lvl)

	if file == "" {
		l.SetOutput(os.Stderr)
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return l, nil
	}

	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    16, // MB
		MaxBackups: 3,
		Compress:   true,
	}
	if lvl == logrus.DebugLevel {
		w.MaxSize = 128
	}
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.closer = w

	return l, nil
}

func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
