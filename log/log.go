// Package log provides the structured logging used across chirp: a thin
// wrapper over log/slog with a trace level below debug, text/JSON output,
// optional colorized pretty printing, and a package-level default logger
// configured once by the CLI.
//
// The zero Logger is valid and discards everything, so library code can
// accept a Logger without nil checks.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger provides a leveled structured logging interface. The zero value
// is a no-op.
type Logger struct {
	*slog.Logger
	cfg config
}

// Make creates a Logger writing to w, configured by the given options.
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{
		Logger: slog.New(cfg.handler()),
		cfg:    cfg,
	}
}

// Wrap returns a Logger with the receiver's configuration overridden by
// the given options.
func (l Logger) Wrap(opts ...Option) Logger {
	cfg := apply(l.cfg, opts...)

	return Logger{
		Logger: slog.New(cfg.handler()),
		cfg:    cfg,
	}
}

// With returns a Logger that includes the given attributes in every
// message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	return Logger{
		Logger: slog.New(l.Handler().WithAttrs(attrs)),
		cfg:    l.cfg,
	}
}

// Level returns the minimum log level.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	return l.cfg.level
}

// TraceContext logs a message at Trace level with the provided context.
func (l Logger) TraceContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelTrace, msg, attrs...)
}

// Trace logs a message at Trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.TraceContext(context.Background(), msg, attrs...)
}

// DebugContext logs a message at Debug level with the provided context.
func (l Logger) DebugContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelDebug, msg, attrs...)
}

// Debug logs a message at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.DebugContext(context.Background(), msg, attrs...)
}

// InfoContext logs a message at Info level with the provided context.
func (l Logger) InfoContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelInfo, msg, attrs...)
}

// Info logs a message at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.InfoContext(context.Background(), msg, attrs...)
}

// WarnContext logs a message at Warn level with the provided context.
func (l Logger) WarnContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelWarn, msg, attrs...)
}

// Warn logs a message at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.WarnContext(context.Background(), msg, attrs...)
}

// ErrorContext logs a message at Error level with the provided context.
func (l Logger) ErrorContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelError, msg, attrs...)
}

// Error logs a message at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.ErrorContext(context.Background(), msg, attrs...)
}

func (l Logger) logContext(
	ctx context.Context,
	level Level,
	msg string,
	attrs ...slog.Attr,
) {
	// Zero value loggers silently discard.
	if l.Logger == nil {
		return
	}

	l.LogAttrs(ctx, slog.Level(level), msg, attrs...)
}

// defaultLog is the process-wide logger used by the package-level
// functions; the CLI configures it via Config.
var (
	defaultMu  sync.RWMutex
	defaultLog = Make(os.Stderr)
)

// Config updates the default logger with the given options.
func Config(opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultLog = defaultLog.Wrap(opts...)
}

// Default returns the current default logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultLog
}

// TraceContext logs at Trace level using the default logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().TraceContext(ctx, msg, attrs...)
}

// DebugContext logs at Debug level using the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().DebugContext(ctx, msg, attrs...)
}

// Debug logs at Debug level using the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	Default().Debug(msg, attrs...)
}

// InfoContext logs at Info level using the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().InfoContext(ctx, msg, attrs...)
}

// Info logs at Info level using the default logger.
func Info(msg string, attrs ...slog.Attr) {
	Default().Info(msg, attrs...)
}

// WarnContext logs at Warn level using the default logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().WarnContext(ctx, msg, attrs...)
}

// Warn logs at Warn level using the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	Default().Warn(msg, attrs...)
}

// ErrorContext logs at Error level using the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().ErrorContext(ctx, msg, attrs...)
}

// Error logs at Error level using the default logger.
func Error(msg string, attrs ...slog.Attr) {
	Default().Error(msg, attrs...)
}
