// Package cli contains the command line interface for chirp.
//
// # Commands
//
//   - eval (default): evaluate a source file, stdin, or an inline -e
//     expression
//   - fmt: reparse source and render it as canonical chirp, JSON, or YAML
//   - repl: interactive session with completion and persistent history
//   - cmd: store named programs in a local database and run them by name
//
// # Configuration
//
// Flag defaults may be set in a YAML config file at
// ~/.config/chirp/config.yaml, keyed by flag name:
//
//	log_level: debug
//	log_format: json
//
// Command-line flags always override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o chirp .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/chirp/pprof)
//
// # Examples
//
//	# Evaluate a script
//	chirp eval script.chirp
//
//	# Inline expression with a seeded variable
//	chirp eval -e 'echo("Hello, ", who, "!")' -s who='"world"'
//
//	# Store a command and run it later
//	chirp cmd add greet 'echo("Hello, ", arg0, "!")'
//	chirp cmd run greet world
package cli
