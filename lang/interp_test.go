package lang

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInterp_EvalLiterals(t *testing.T) {
	in := New(WithOutput(nil))
	ctx := context.Background()

	for _, x := range []*Expression{NewVoid(), NewInt(7), NewString("hi")} {
		got, err := in.Eval(ctx, x)
		if err != nil {
			t.Fatalf("Eval(%s): %v", x, err)
		}

		if !got.Eql(x) {
			t.Errorf("Eval(%s) = %s, want self", x, got)
		}
	}
}

func TestInterp_VariableResolution(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown variable", func(t *testing.T) {
		in := New(WithOutput(nil))

		_, err := in.Eval(ctx, NewVar("ghost"))
		if !errors.Is(err, ErrUnknownVariable) {
			t.Errorf("error = %v, want ErrUnknownVariable", err)
		}
	})

	t.Run("direct binding", func(t *testing.T) {
		in := New(WithOutput(nil))
		in.SetVar("x", NewInt(42))

		got, err := in.Eval(ctx, NewVar("x"))
		if err != nil {
			t.Fatalf("Eval: %v", err)
		}

		if !got.Eql(NewInt(42)) {
			t.Errorf("result = %s, want 42", got)
		}
	})

	t.Run("alias chain resolves recursively", func(t *testing.T) {
		in := New(WithOutput(nil))
		in.SetVar("a", NewVar("b"))
		in.SetVar("b", NewVar("c"))
		in.SetVar("c", NewString("end"))

		got, err := in.Eval(ctx, NewVar("a"))
		if err != nil {
			t.Fatalf("Eval: %v", err)
		}

		if !got.Eql(NewString("end")) {
			t.Errorf("result = %s, want \"end\"", got)
		}
	})

	t.Run("binding re-evaluates on every reference", func(t *testing.T) {
		// Macro-style substitution: the bound expression is a call, so each
		// reference runs it again.
		in := New(WithOutput(nil))

		calls := 0
		in.Register("tick", func(
			_ context.Context, _ *Interp, _ []*Expression,
		) (*Expression, error) {
			calls++

			return NewInt(uint64(calls)), nil
		})

		in.SetVar("t", NewCall("tick"))

		for want := uint64(1); want <= 3; want++ {
			got, err := in.Eval(ctx, NewVar("t"))
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}

			if !got.Eql(NewInt(want)) {
				t.Errorf("reference %d = %s, want %d", want, got, want)
			}
		}
	})

	t.Run("cyclic binding hits the recursion limit", func(t *testing.T) {
		in := New(WithOutput(nil))
		in.SetVar("a", NewVar("b"))
		in.SetVar("b", NewVar("a"))

		_, err := in.Eval(ctx, NewVar("a"))
		if !errors.Is(err, ErrRecursionLimit) {
			t.Errorf("error = %v, want ErrRecursionLimit", err)
		}
	})

	t.Run("self-referential binding", func(t *testing.T) {
		in := New(WithOutput(nil))
		in.SetVar("loop", NewVar("loop"))

		_, err := in.Eval(ctx, NewVar("loop"))
		if !errors.Is(err, ErrRecursionLimit) {
			t.Errorf("error = %v, want ErrRecursionLimit", err)
		}
	})
}

func TestInterp_Scopes(t *testing.T) {
	in := New(WithOutput(nil))

	in.SetVar("x", NewInt(1))
	in.SetScratch("x", NewInt(2))

	if got, ok := in.LookupVar("x"); !ok || !got.Eql(NewInt(2)) {
		t.Errorf("lookup with scratch binding = (%v, %v), want (2, true)",
			got, ok)
	}

	in.ResetScratch()

	if got, ok := in.LookupVar("x"); !ok || !got.Eql(NewInt(1)) {
		t.Errorf("lookup after reset = (%v, %v), want (1, true)", got, ok)
	}

	in.SetScratch("tmp", NewVoid())
	in.ResetScratch()

	if _, ok := in.LookupVar("tmp"); ok {
		t.Error("scratch binding survived ResetScratch")
	}
}

func TestInterp_RemoveScratchPanics(t *testing.T) {
	in := New(WithOutput(nil))

	defer func() {
		if recover() == nil {
			t.Error("removing a never-added scratch binding did not panic")
		}
	}()

	in.removeScratch("never-added")
}

func TestInterp_Names(t *testing.T) {
	in := New(WithOutput(nil))

	in.SetVar("beta", NewInt(1))
	in.SetVar("alpha", NewInt(2))
	in.SetScratch("alpha", NewInt(3)) // shadows, must not duplicate
	in.SetScratch("gamma", NewInt(4))

	want := []string{"alpha", "beta", "gamma"}
	if diff := cmp.Diff(want, in.VarNames()); diff != "" {
		t.Errorf("VarNames mismatch (-want +got):\n%s", diff)
	}

	funcs := in.FuncNames()
	if len(funcs) == 0 {
		t.Fatal("FuncNames is empty, want builtin catalog")
	}

	for i := 1; i < len(funcs); i++ {
		if funcs[i-1] >= funcs[i] {
			t.Errorf("FuncNames not sorted: %q before %q",
				funcs[i-1], funcs[i])
		}
	}
}

func TestInterp_CallDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown function", func(t *testing.T) {
		in := New(WithOutput(nil))

		_, err := in.Eval(ctx, NewCall("ghost"))
		if !errors.Is(err, ErrUnknownFunction) {
			t.Errorf("error = %v, want ErrUnknownFunction", err)
		}
	})

	t.Run("arguments arrive unevaluated", func(t *testing.T) {
		in := New(WithOutput(nil))

		var seen []*Expression
		in.Register("probe", func(
			_ context.Context, _ *Interp, args []*Expression,
		) (*Expression, error) {
			seen = args

			return NewVoid(), nil
		})

		// The argument references an unbound variable; evaluation would
		// fail, so success proves the callee received it unevaluated.
		_, err := in.Eval(ctx, NewCall("probe", NewVar("unbound")))
		if err != nil {
			t.Fatalf("Eval: %v", err)
		}

		if len(seen) != 1 || !seen[0].Eql(NewVar("unbound")) {
			t.Errorf("callee saw %v, want [unbound]", seen)
		}
	})

	t.Run("host error is wrapped", func(t *testing.T) {
		in := New(WithOutput(nil))

		boom := errors.New("boom")
		in.Register("fail", func(
			_ context.Context, _ *Interp, _ []*Expression,
		) (*Expression, error) {
			return nil, boom
		})

		_, err := in.Eval(ctx, NewCall("fail"))
		if !errors.Is(err, ErrHost) {
			t.Errorf("error = %v, want ErrHost", err)
		}

		if !errors.Is(err, boom) {
			t.Errorf("error = %v, want wrapping the original", err)
		}
	})

	t.Run("taxonomy errors pass through unwrapped", func(t *testing.T) {
		in := New(WithOutput(nil))

		// The body of the call fails with a language error; it must not be
		// re-wrapped as a host failure.
		_, err := in.Eval(ctx, NewCall("not", NewVar("unbound")))
		if !errors.Is(err, ErrUnknownVariable) {
			t.Errorf("error = %v, want ErrUnknownVariable", err)
		}

		if errors.Is(err, ErrHost) {
			t.Errorf("error = %v, must not be ErrHost", err)
		}
	})

	t.Run("registration replaces builtins", func(t *testing.T) {
		in := New(WithOutput(nil))
		in.Register("add", func(
			_ context.Context, _ *Interp, _ []*Expression,
		) (*Expression, error) {
			return NewString("overridden"), nil
		})

		got, err := in.Eval(ctx, NewCall("add", NewInt(1), NewInt(2)))
		if err != nil {
			t.Fatalf("Eval: %v", err)
		}

		if !got.Eql(NewString("overridden")) {
			t.Errorf("result = %s, want \"overridden\"", got)
		}
	})
}

func TestInterp_MaxDepth(t *testing.T) {
	in := New(WithOutput(nil), WithMaxDepth(4))
	ctx := context.Background()

	// Depth 4 still admits a shallow tree.
	if _, err := in.Eval(ctx, NewCall("add", NewInt(1), NewInt(2))); err != nil {
		t.Fatalf("shallow Eval: %v", err)
	}

	// Nesting past the bound fails instead of exhausting the stack.
	deep := NewInt(1)
	for i := 0; i < 8; i++ {
		deep = NewCall("add", deep, NewInt(1))
	}

	if _, err := in.Eval(ctx, deep); !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("deep Eval = %v, want ErrRecursionLimit", err)
	}

	// The depth counter unwinds after a failure; later evaluations work.
	if _, err := in.Eval(ctx, NewInt(1)); err != nil {
		t.Errorf("Eval after limit: %v", err)
	}
}

func TestInterp_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("returns last result", func(t *testing.T) {
		in := New(WithOutput(nil))

		got, err := in.Run(ctx, "let(x, 40)\nadd(x, 2)")
		if err != nil {
			t.Fatalf("Run: %v", err)
		}

		if !got.Eql(NewInt(42)) {
			t.Errorf("result = %s, want 42", got)
		}
	})

	t.Run("empty source yields void", func(t *testing.T) {
		in := New(WithOutput(nil))

		got, err := in.Run(ctx, "   \n  ")
		if err != nil {
			t.Fatalf("Run: %v", err)
		}

		if got.Kind != KindVoid {
			t.Errorf("result = %s, want void", got)
		}
	})

	t.Run("parse error stops evaluation", func(t *testing.T) {
		var buf bytes.Buffer

		in := New(WithOutput(&buf))

		_, err := in.Run(ctx, "foo bar\necho(\"never\")")

		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("error type = %T, want *ParseError", err)
		}

		if buf.Len() != 0 {
			t.Errorf("output = %q, want none", buf.String())
		}
	})

	t.Run("evaluation error stops the loop", func(t *testing.T) {
		var buf bytes.Buffer

		in := New(WithOutput(&buf))

		_, err := in.Run(ctx, "echo(\"once\")\necho(ghost)\necho(\"never\")")
		if !errors.Is(err, ErrUnknownVariable) {
			t.Fatalf("error = %v, want ErrUnknownVariable", err)
		}

		if got := buf.String(); got != "once\n" {
			t.Errorf("output = %q, want %q", got, "once\n")
		}
	})

	t.Run("long-lived bindings survive across expressions", func(t *testing.T) {
		in := New(WithOutput(nil))

		if _, err := in.Run(ctx, "let(greeting, \"hi\")"); err != nil {
			t.Fatalf("first Run: %v", err)
		}

		got, err := in.Run(ctx, "greeting")
		if err != nil {
			t.Fatalf("second Run: %v", err)
		}

		if !got.Eql(NewString("hi")) {
			t.Errorf("result = %s, want \"hi\"", got)
		}
	})
}
