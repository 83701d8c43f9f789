package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type ctxKey string

// RequestIDKey carries the search request id through a context.
const RequestIDKey ctxKey = "requestId"

// Options controls where and how much the application logs.
type Options struct {
	File    string
	Level   string
	Verbose bool
}

// Setup builds the application logger. With a file the output goes there so
// the terminal stays free for the UI; otherwise it goes to stderr. The returned
// closer releases the file.
func Setup(opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
	})

	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if opts.File == "" {
		logger.SetOutput(os.Stderr)
		return logger, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

// Discard returns a logger that drops everything, for tests and for callers
// that have not configured logging.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// Component returns an entry tagged with the component name.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	if logger == nil {
		logger = Discard()
	}
	return logger.WithField("component", name)
}

// For returns base enriched with the request id stored in ctx, if any.
func For(ctx context.Context, base *logrus.Entry) *logrus.Entry {
	if base == nil {
		base = logrus.NewEntry(Discard())
	}
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok || id == "" {
		return base
	}
	return base.WithField("request_id", id)
}

// ContextWithID stores a request id in ctx.
func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Track logs msg with its duration when the returned func runs.
func Track(entry *logrus.Entry, msg string) func() {
	start := time.Now()
	return func() {
		dur := time.Since(start)
		e := entry.WithField("duration", dur.String())
		if dur > 2*time.Second {
			e.Warnf("%s completed (slow)", msg)
		} else {
			e.Debugf("%s completed", msg)
		}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func parseLevel(raw string) (logrus.Level, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return logrus.InfoLevel, nil
	}
	level, err := logrus.ParseLevel(value)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
