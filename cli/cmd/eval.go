package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nilsblix/chirp/lang"
)

// Eval evaluates chirp source from a file, stdin, or an inline expression.
type Eval struct {
	Source string            `arg:""                                             default:"-" help:"Source input file or '-' for stdin."      name:"source" optional:""`
	Expr   string            `help:"Evaluate an inline expression instead of a source file."                                                                short:"e"`
	Set    map[string]string `help:"Seed variables as name=expression bindings."                                                              name:"set"   short:"s"`
	Quiet  bool              `help:"Suppress printing the final result."                                                                                   short:"q"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in, err := newInterp(ctx, e.Set)
	if err != nil {
		return err
	}

	source := e.Expr
	name := "expr"

	if source == "" {
		file, srcName, err := openSource(e.Source)
		if err != nil {
			return err
		}
		defer file.Close()

		data, err := io.ReadAll(bufio.NewReader(file))
		if err != nil {
			return err
		}

		source = string(data)
		name = srcName
	}

	result, err := in.Run(ctx, source, lang.WithSourceName(name))
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "eval"))
	}

	if !e.Quiet && result.Kind != lang.KindVoid {
		fmt.Println(result)
	}

	return nil
}
