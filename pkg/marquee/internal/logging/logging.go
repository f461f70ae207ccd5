// Package logging owns the two process-wide slog loggers: the application
// logger for frontend events and the internal logger for the engine. Both
// write JSON lines to stdout and to the log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultFilename is used when no log path was configured.
const DefaultFilename = "log.txt"

var (
	logPath string
	logFile *os.File

	setupOnce sync.Once
	out       io.Writer = os.Stdout

	app    = &leveledLogger{}
	engine = &leveledLogger{attrs: []any{"component", "engine"}}
)

type leveledLogger struct {
	once   sync.Once
	level  slog.LevelVar
	logger *slog.Logger
	attrs  []any
}

func (l *leveledLogger) get() *slog.Logger {
	l.once.Do(func() {
		openLogFile()
		l.logger = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: &l.level})).With(l.attrs...)
	})
	return l.logger
}

// SetLogPath sets the full path for the log file, including filename.
// It must be called before the first logger is requested.
func SetLogPath(path string) {
	logPath = path
}

// openLogFile truncates the log on every start. Without a usable file the
// loggers write to stdout only.
func openLogFile() {
	setupOnce.Do(func() {
		path := logPath
		if path == "" {
			path = DefaultFilename
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
		if err != nil {
			return
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, f)
	})
}

func GetLogger() *slog.Logger {
	return app.get()
}

func GetInternalLogger() *slog.Logger {
	return engine.get()
}

func SetLogLevel(level slog.Level) {
	app.get()
	app.level.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	engine.get()
	engine.level.Set(level)
}

// ParseLevel maps the names accepted by the log.level setting. Unknown
// names are info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetRawLogLevel applies a level name to both loggers.
func SetRawLogLevel(rawLevel string) {
	level := ParseLevel(rawLevel)
	SetLogLevel(level)
	SetInternalLogLevel(level)
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
