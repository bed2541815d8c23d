package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/nilsblix/chirp/lang"
	"github.com/nilsblix/chirp/log"
)

type (
	contextKey   struct{}
	storePathKey struct{}
	dataDirKey   struct{}
)

// WithContext returns a new context.Context containing the given
// kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok {
		return nil
	}

	return ktx
}

// WithStorePath returns a new context.Context carrying the path to the
// stored-command database.
func WithStorePath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, storePathKey{}, path)
}

func storePathFrom(ctx context.Context) string {
	path, _ := ctx.Value(storePathKey{}).(string)

	return path
}

// WithDataDir returns a new context.Context carrying the runtime data
// directory path (REPL history, profiles).
func WithDataDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, dataDirKey{}, dir)
}

func dataDirFrom(ctx context.Context) string {
	dir, _ := ctx.Value(dataDirKey{}).(string)

	return dir
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSource opens the named source file, mapping "-" to stdin. The
// returned closer is a no-op for stdin.
func openSource(path string) (io.ReadCloser, string, error) {
	if path == "" {
		return nil, "", ErrNoSource
	}

	if path == stdinSource {
		return io.NopCloser(os.Stdin), "stdin", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}

	return f, path, nil
}

// newInterp builds an interpreter wired to the process stdout and the
// default logger, with any name=source seed bindings applied. Seed values
// are parsed as single expressions and bound unevaluated, matching the
// macro-substitution model of variable references.
func newInterp(
	ctx context.Context,
	seed map[string]string,
) (*lang.Interp, error) {
	in := lang.New(
		lang.WithOutput(os.Stdout),
		lang.WithLogger(log.Default()),
	)

	for name, src := range seed {
		exprs, err := lang.ParseString(ctx, src, lang.WithSourceName(name))
		if err != nil {
			return nil, err
		}

		switch len(exprs) {
		case 0:
			in.SetVar(name, lang.NewVoid())
		case 1:
			in.SetVar(name, exprs[0])
		default:
			return nil, ErrSeedValue.With(seedAttrs(name, src)...)
		}
	}

	return in, nil
}
