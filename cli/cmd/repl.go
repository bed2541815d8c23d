package cmd

import (
	"context"
	"path/filepath"

	"github.com/nilsblix/chirp/cli/cmd/repl"
	"github.com/nilsblix/chirp/log"
	"github.com/nilsblix/chirp/pkg"
)

// Repl starts an interactive session: expressions are evaluated as they
// are entered, with completion over the visible function and variable
// names, persistent history, and long-lived bindings surviving across
// inputs.
type Repl struct {
	Set map[string]string `help:"Seed variables as name=expression bindings." name:"set" short:"s"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in, err := newInterp(ctx, r.Set)
	if err != nil {
		return err
	}

	banner := pkg.Name + " " + pkg.Version()
	if ktx := kongContextFrom(ctx); ktx != nil {
		banner = ktx.Model.Name + " " + pkg.Version()
	}

	historyPath := filepath.Join(dataDirFrom(ctx), repl.BaseHistory)

	return repl.Run(ctx, in, banner, historyPath, log.Default())
}
