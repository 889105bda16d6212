package logging

import (
	"context"
	"io"
	"log/slog"
)

// SlogLogger bridges Logger onto log/slog. The client packages only ever see
// the Logger interface; this type owns the handler configuration.
type SlogLogger struct {
	sl *slog.Logger
}

// New builds a logger emitting text lines to w at the given level. The CLI
// wires os.Stderr; tests typically pass io.Discard.
func New(w io.Writer, level slog.Level) *SlogLogger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &SlogLogger{sl: slog.New(h)}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.sl.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.sl.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.sl.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.sl.ErrorContext(ctx, msg, args...)
}

// With returns a child logger carrying the given key-value pairs on every line.
func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{sl: s.sl.With(args...)}
}
