package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/nilsblix/chirp/lang"
	"github.com/nilsblix/chirp/log"
	"github.com/nilsblix/chirp/store"
)

// Cmd manages the stored-command database: named chirp programs persisted
// as source text and runnable by name.
type Cmd struct {
	Add    CmdAdd    `cmd:"" help:"Store a named command."`
	List   CmdList   `cmd:"" help:"List stored commands."`
	Remove CmdRemove `cmd:"" help:"Remove a stored command."`
	Run    CmdRun    `cmd:"" help:"Run a stored command."`
}

// openStore opens the command database configured for this invocation.
func openStore(ctx context.Context) (*store.Store, error) {
	path := storePathFrom(ctx)
	if path == "" {
		return nil, ErrNoStore
	}

	return store.Open(path)
}

// CmdAdd stores a named command, replacing any existing one. The source is
// parsed before storing so the database only ever holds well-formed
// programs.
type CmdAdd struct {
	Name   string `arg:"" help:"Command name."                                      name:"name"`
	Source string `arg:"" help:"Command source text, or '-' to read it from stdin." name:"source"`
}

// Run executes the cmd add command.
func (c *CmdAdd) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	source := c.Source
	if source == stdinSource {
		file, _, err := openSource(stdinSource)
		if err != nil {
			return err
		}
		defer file.Close()

		data, err := io.ReadAll(bufio.NewReader(file))
		if err != nil {
			return err
		}

		source = string(data)
	}

	if _, err := lang.ParseString(ctx, source,
		lang.WithSourceName(c.Name)); err != nil {
		return lang.WrapError(err).With(slog.String("command", "cmd add"))
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Put(c.Name, source); err != nil {
		return err
	}

	log.InfoContext(ctx, "command stored",
		slog.String("name", c.Name),
		slog.Int("bytes", len(source)),
	)

	return nil
}

// CmdList lists all stored commands.
type CmdList struct {
	Long bool `help:"Include each command's source text." short:"l"`
}

// Run executes the cmd list command.
func (c *CmdList) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	cmds, err := db.List()
	if err != nil {
		return err
	}

	for _, cmd := range cmds {
		if c.Long {
			fmt.Printf("%s\t%s\n", cmd.Name, cmd.Source)
		} else {
			fmt.Println(cmd.Name)
		}
	}

	return nil
}

// CmdRemove removes a stored command.
type CmdRemove struct {
	Name string `arg:"" help:"Command name." name:"name"`
}

// Run executes the cmd remove command.
func (c *CmdRemove) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Delete(c.Name)
}

// CmdRun runs a stored command by name. Positional arguments are seeded as
// string variables arg0..argN, with argc holding the count, so stored
// programs can reference their invocation arguments.
type CmdRun struct {
	Name string   `arg:"" help:"Command name."          name:"name"`
	Args []string `arg:"" help:"Command arguments."     name:"args" optional:""`

	Set map[string]string `help:"Seed variables as name=expression bindings." name:"set" short:"s"`
}

// Run executes the cmd run command.
func (c *CmdRun) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	source, err := db.Get(c.Name)
	if err != nil {
		return err
	}

	in, err := newInterp(ctx, c.Set)
	if err != nil {
		return err
	}

	in.SetVar("argc", lang.NewInt(uint64(len(c.Args))))

	for i, arg := range c.Args {
		in.SetVar("arg"+strconv.Itoa(i), lang.NewString(arg))
	}

	result, err := in.Run(ctx, source, lang.WithSourceName(c.Name))
	if err != nil {
		return lang.WrapError(err).With(
			slog.String("command", "cmd run"),
			slog.String("name", c.Name),
		)
	}

	if result.Kind != lang.KindVoid {
		fmt.Println(result)
	}

	return nil
}
