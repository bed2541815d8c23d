package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/nilsblix/chirp/lang"
)

// Fmt parses chirp source and re-renders it in the chosen format.
type Fmt struct {
	Native FmtNative `cmd:"" default:"withargs" help:"Format as canonical chirp syntax (default)."`
	JSON   FmtJSON   `cmd:""                    help:"Format as JSON."`
	YAML   FmtYAML   `cmd:""                    help:"Format as YAML."`
}

// parseSource reads and parses one source input for the fmt subcommands.
func parseSource(
	ctx context.Context,
	path, format string,
) ([]*lang.Expression, error) {
	file, name, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	exprs, err := lang.ParseReader(ctx, bufio.NewReader(file),
		lang.WithSourceName(name))
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("format", format))
	}

	return exprs, nil
}

// FmtNative renders source in canonical chirp syntax: one top-level
// expression per line, strings double-quoted, uniform argument spacing.
type FmtNative struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt command.
func (f *FmtNative) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	exprs, err := parseSource(ctx, f.Source, "native")
	if err != nil {
		return err
	}

	for _, x := range exprs {
		fmt.Println(x)
	}

	return nil
}

// FmtJSON renders source as a JSON array of expression trees.
type FmtJSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the json command.
func (j *FmtJSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	exprs, err := parseSource(ctx, j.Source, "json")
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", indent(j.Indent))

	return enc.Encode(exprs)
}

// FmtYAML renders source as a YAML sequence of expression trees.
type FmtYAML struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the yaml command.
func (y *FmtYAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	exprs, err := parseSource(ctx, y.Source, "yaml")
	if err != nil {
		return err
	}

	return lang.EncodeYAML(os.Stdout, exprs)
}

func indent(width int) string {
	if width <= 0 {
		return ""
	}

	b := make([]byte, width)
	for i := range b {
		b[i] = ' '
	}

	return string(b)
}
