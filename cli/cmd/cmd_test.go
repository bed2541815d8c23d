package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nilsblix/chirp/lang"
)

func TestNewInterpSeeds(t *testing.T) {
	ctx := context.Background()

	in, err := newInterp(ctx, map[string]string{
		"who":   `"world"`,
		"count": "42",
		"later": "add(1, 2)",
		"blank": "",
	})
	if err != nil {
		t.Fatalf("newInterp: %v", err)
	}

	tests := []struct {
		name string
		want *lang.Expression
	}{
		{"who", lang.NewString("world")},
		{"count", lang.NewInt(42)},
		// Seeds bind unevaluated, like any other variable reference.
		{"later", lang.NewCall("add", lang.NewInt(1), lang.NewInt(2))},
		{"blank", lang.NewVoid()},
	}

	for _, tt := range tests {
		got, ok := in.LookupVar(tt.name)
		if !ok {
			t.Errorf("LookupVar(%q) not found", tt.name)

			continue
		}

		if !got.Eql(tt.want) {
			t.Errorf("LookupVar(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewInterpSeedErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("multiple expressions", func(t *testing.T) {
		_, err := newInterp(ctx, map[string]string{"pair": "1 2"})
		if !errors.Is(err, ErrSeedValue) {
			t.Errorf("err = %v, want ErrSeedValue", err)
		}
	})

	t.Run("malformed source", func(t *testing.T) {
		_, err := newInterp(ctx, map[string]string{"bad": "echo("})

		var perr *lang.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("err = %v, want *lang.ParseError", err)
		}
	})
}

func TestOpenSource(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "script.chirp")
		if err := os.WriteFile(path, []byte("echo(1)\n"), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		file, name, err := openSource(path)
		if err != nil {
			t.Fatalf("openSource: %v", err)
		}
		defer file.Close()

		if name != path {
			t.Errorf("name = %q, want %q", name, path)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		file, name, err := openSource(stdinSource)
		if err != nil {
			t.Fatalf("openSource(-): %v", err)
		}
		defer file.Close()

		if name != "stdin" {
			t.Errorf("name = %q, want %q", name, "stdin")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		_, _, err := openSource("")
		if !errors.Is(err, ErrNoSource) {
			t.Errorf("err = %v, want ErrNoSource", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := openSource(filepath.Join(t.TempDir(), "ghost.chirp"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()

	if got := storePathFrom(ctx); got != "" {
		t.Errorf("storePathFrom on bare context = %q, want empty", got)
	}

	if got := dataDirFrom(ctx); got != "" {
		t.Errorf("dataDirFrom on bare context = %q, want empty", got)
	}

	if got := kongContextFrom(ctx); got != nil {
		t.Errorf("kongContextFrom on bare context = %v, want nil", got)
	}

	ctx = WithStorePath(ctx, "/tmp/commands.db")
	ctx = WithDataDir(ctx, "/tmp/data")

	if got := storePathFrom(ctx); got != "/tmp/commands.db" {
		t.Errorf("storePathFrom = %q, want %q", got, "/tmp/commands.db")
	}

	if got := dataDirFrom(ctx); got != "/tmp/data" {
		t.Errorf("dataDirFrom = %q, want %q", got, "/tmp/data")
	}
}
