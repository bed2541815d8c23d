package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/nilsblix/chirp/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler. As kong parses the
// --log-format flag, this method is called, allowing the logger to be
// configured early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"json,text"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp format."`
	Caller     bool      `default:"false"                                      help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                       help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(timeLayout(f.TimeLayout)),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// timeLayout translates well-known layout names to their format strings;
// anything else is treated as a literal layout.
func timeLayout(name string) string {
	switch strings.ToUpper(name) {
	case "RFC3339":
		return "2006-01-02T15:04:05Z07:00"
	case "RFC3339NANO":
		return "2006-01-02T15:04:05.999999999Z07:00"
	case "KITCHEN":
		return "3:04PM"
	case "STAMP":
		return "Jan _2 15:04:05"
	case "NONE", "":
		return ""
	default:
		return name
	}
}

// scan performs an early pass over command-line arguments to apply logger
// configuration before kong begins parsing, so that parse-time diagnostics
// already use the requested level and format.
//
// logFormat and logLevel configure the logger through TextUnmarshaler as
// kong encounters them, but boolean flags like --log-pretty do not go
// through that interface; this pre-scan catches all of them regardless of
// flag position.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		// Value flags may also appear as "--flag value".
		next := func() string {
			if assigned {
				return value
			}

			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return ""
		}

		// Boolean flags are true unless "=false" was given explicitly.
		enabled := func() bool {
			if !assigned {
				return true
			}

			v, err := strconv.ParseBool(value)

			return err == nil && v
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(next()))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(next()))

		case "--log-pretty":
			f.Pretty = enabled()
			log.Config(log.WithPretty(f.Pretty))

		case "--no-log-pretty":
			f.Pretty = !enabled()
			log.Config(log.WithPretty(f.Pretty))

		case "--log-caller":
			f.Caller = enabled()
			log.Config(log.WithCaller(f.Caller))

		case "--no-log-caller":
			f.Caller = !enabled()
			log.Config(log.WithCaller(f.Caller))
		}
	}
}
