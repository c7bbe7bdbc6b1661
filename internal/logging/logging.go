// Package logging configures the diagnostic logger. User-facing output goes
// through internal/ui; logrus records what the diary did, for debugging.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Params controls where and how much is logged.
type Params struct {
	// File is the log file path. Empty disables file logging.
	File string
	// Level is a logrus level name; unknown names fall back to info.
	Level string
	// MaxSizeMB rotates the file after this many megabytes (0 = lumberjack default).
	MaxSizeMB int
	// Debug forces debug level and mirrors output to stderr.
	Debug bool
}

// Setup configures the standard logrus logger and returns a closer for the
// log file. The closer is never nil.
func Setup(p Params) io.Closer {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	level := GetLevel(p.Level)
	if p.Debug {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	if p.File == "" {
		if p.Debug {
			logrus.SetOutput(os.Stderr)
		} else {
			logrus.SetOutput(io.Discard)
		}
		return nopCloser{}
	}

	if !strings.HasSuffix(p.File, ".log") {
		p.File += ".log"
	}
	if err := os.MkdirAll(filepath.Dir(p.File), 0o755); err != nil {
		logrus.SetOutput(os.Stderr)
		logrus.Warnf("log dir unavailable, logging to stderr: %v", err)
		return nopCloser{}
	}

	lj := &lumberjack.Logger{
		Filename:   p.File,
		MaxSize:    p.MaxSizeMB,
		MaxBackups: 3,
		LocalTime:  true,
		Compress:   true,
	}

	if p.Debug {
		logrus.SetOutput(io.MultiWriter(os.Stderr, lj))
	} else {
		logrus.SetOutput(lj)
	}
	return lj
}

// GetLevel maps a level name to a logrus level, defaulting to info.
func GetLevel(name string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
