package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Level represents the severity of a log message.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug - 4)
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return slog.Level(l).String()
	}
}

// Levels returns the names of all defined log levels.
func Levels() []string {
	return []string{"trace", "debug", "info", "warn", "error"}
}

// ParseLevel parses a string representation of a log level. Unknown
// strings fall back to DefaultLevel.
func ParseLevel(s string) Level {
	// slog.Level.UnmarshalText doesn't recognize "trace"
	if strings.EqualFold(s, "trace") {
		return LevelTrace
	}

	l := new(slog.Level)
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(*l)
}

// Format represents the output format for log messages.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the default log message format.
const DefaultFormat = FormatText

// String returns the lowercase format name.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}

	return "text"
}

// ParseFormat parses a string representation of a log format. Unknown
// strings fall back to DefaultFormat.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return DefaultFormat
	}
}

// DefaultTimeLayout is used when no time layout is configured.
const DefaultTimeLayout = time.RFC3339

// config holds the configuration options for a Logger.
type config struct {
	output     io.Writer
	timeLayout string
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

// Option applies a configuration option to config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// makeConfig creates a config with defaults applied, overridden by any
// provided options.
func makeConfig(w io.Writer, opts ...Option) config {
	if w == nil {
		w = io.Discard
	}

	cfg := config{
		output:     w,
		timeLayout: DefaultTimeLayout,
		level:      DefaultLevel,
		format:     DefaultFormat,
		pretty:     true,
	}

	return apply(cfg, opts...)
}

// WithOutput sets the output writer for log messages. A nil writer
// discards all output.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithLevel sets the minimum log level. Messages below this level are
// discarded.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat sets the output format for log messages.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout sets the layout used to format log timestamps. An empty
// layout disables timestamps.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.timeLayout = layout

		return c
	}
}

// WithCaller controls whether caller information is included in output.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithPretty controls whether output is colorized for terminals.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}

// handler creates a slog.Handler for the configuration.
func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					if c.timeLayout == "" {
						return slog.Attr{}
					}

					a.Value = slog.StringValue(t.Format(c.timeLayout))
				}
			}

			// Render "trace" instead of slog's "DEBUG-4".
			if a.Key == slog.LevelKey {
				if level, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(
						strings.ToUpper(Level(level).String()))
				}
			}

			return a
		},
	}

	if c.pretty && c.format == FormatText {
		return newPrettyHandler(c.output, opts)
	}

	if c.format == FormatJSON {
		return slog.NewJSONHandler(c.output, opts)
	}

	return slog.NewTextHandler(c.output, opts)
}
