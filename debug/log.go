package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.Mutex
	file   *os.File
	logger = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return l
}

// Setup directs logging to path (stderr when empty) at the given level
// ("debug", "info", "warn", ...). The file is truncated on every start.
func Setup(path, level string) error {
	lvl := logrus.InfoLevel
	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return err
		}
		lvl = parsed
	}

	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	logger.SetLevel(lvl)

	if path == "" {
		logger.SetOutput(os.Stderr)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	file = f
	logger.SetOutput(f)
	logger.WithField("cat", "debug").Info("=== logging started ===")
	return nil
}

// SetOutput redirects logging, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// SetLevel changes the level without touching the output.
func SetLevel(lvl logrus.Level) {
	logger.SetLevel(lvl)
}

// Close flushes and closes the log file, falling back to stderr.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Sync()
		file.Close()
		file = nil
	}
	logger.SetOutput(os.Stderr)
}

// Log writes a debug-level message under a category.
func Log(category, format string, args ...any) {
	logger.WithField("cat", category).Debugf(format, args...)
}

func Info(category, format string, args ...any) {
	logger.WithField("cat", category).Infof(format, args...)
}

func Warn(category, format string, args ...any) {
	logger.WithField("cat", category).Warnf(format, args...)
}

func Error(category string, err error, format string, args ...any) {
	logger.WithField("cat", category).WithError(err).Errorf(format, args...)
}

// LogEvery logs only every N calls (use for high-frequency events)
var (
	countersMu sync.Mutex
	counters   = make(map[string]int)
)

func LogEvery(n int, category, format string, args ...any) {
	countersMu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	countersMu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}

// Fatal logs and exits; only for setup failures.
func Fatal(category string, err error, format string, args ...any) {
	logger.WithField("cat", category).WithError(err).Fatal(fmt.Sprintf(format, args...))
}
