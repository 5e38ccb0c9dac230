// Package clilog adapts log/slog to gitwire.Logger for CLI use.
package clilog

import (
	"log/slog"
	"os"

	"github.com/gitwire-go/gitwire"
)

// slogLogger implements gitwire.Logger over a *slog.Logger.
type slogLogger struct {
	l *slog.Logger
}

// New returns a gitwire.Logger backed by slog, writing to stderr so it never
// mixes with a command's stdout output (human or JSON). debug controls
// whether Debug-level records are emitted.
func New(debug bool) gitwire.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &slogLogger{l: slog.New(h)}
}

func (s *slogLogger) Debug(msg string, keysAndValues ...any) { s.l.Debug(msg, keysAndValues...) }
func (s *slogLogger) Info(msg string, keysAndValues ...any)  { s.l.Info(msg, keysAndValues...) }
func (s *slogLogger) Warn(msg string, keysAndValues ...any)  { s.l.Warn(msg, keysAndValues...) }
func (s *slogLogger) Error(msg string, keysAndValues ...any) { s.l.Error(msg, keysAndValues...) }
