package lang

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/nilsblix/chirp/log"
)

// NativeFunc is the protocol every function implementation follows,
// builtin or host-registered. Arguments arrive unevaluated: the callee
// decides which to evaluate, how many times, and in what order, which is
// what enables short-circuit and macro-like constructs. Captured state
// rides in the Go closure itself; define builds on nothing more than this.
type NativeFunc func(
	ctx context.Context,
	in *Interp,
	args []*Expression,
) (*Expression, error)

// DefaultMaxDepth bounds recursive evaluation. Variable resolution is
// recursive with no cycle detection, so a self-referential binding would
// otherwise recurse until the goroutine stack is exhausted; exceeding the
// bound fails with ErrRecursionLimit instead.
const DefaultMaxDepth = 512

// Interp evaluates expressions against a mutable binding environment. One
// Interp serves one session (a REPL, or one incoming command); it is not
// safe for concurrent use — concurrent sessions run independent instances.
//
// Variable bindings live in two scopes with different lifetimes: the
// long-lived scope survives across top-level evaluations for the life of
// the session, while the scratch scope is reset by the driver after every
// top-level expression. Lookup consults scratch first, so a scratch
// binding temporarily hides a long-lived one of the same name.
type Interp struct {
	vars    map[string]*Expression
	scratch map[string]*Expression
	funcs   map[string]NativeFunc

	out      io.Writer
	logger   log.Logger
	maxDepth int
	depth    int
}

// InterpOption configures an Interp.
type InterpOption func(*Interp)

// WithOutput sets the sink that echo and log write to. Defaults to
// os.Stdout.
func WithOutput(w io.Writer) InterpOption {
	return func(in *Interp) {
		if w == nil {
			w = io.Discard
		}

		in.out = w
	}
}

// WithLogger sets the structured logger for trace-level diagnostics. The
// zero logger is a no-op.
func WithLogger(logger log.Logger) InterpOption {
	return func(in *Interp) {
		in.logger = logger
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) InterpOption {
	return func(in *Interp) {
		if depth > 0 {
			in.maxDepth = depth
		}
	}
}

// New creates an interpreter with the builtin catalog installed. Hosts add
// their own functions with Register and seed per-session context with
// SetVar before evaluating.
func New(opts ...InterpOption) *Interp {
	in := &Interp{
		vars:     make(map[string]*Expression),
		scratch:  make(map[string]*Expression),
		funcs:    make(map[string]NativeFunc),
		out:      os.Stdout,
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(in)
	}

	registerBuiltins(in)

	return in
}

// Register binds a native function implementation to a name, replacing any
// existing binding (including builtins).
func (in *Interp) Register(name string, fn NativeFunc) {
	in.funcs[name] = fn
}

// SetVar binds a name to an unevaluated expression in the long-lived
// scope, overwriting any existing binding of that name.
func (in *Interp) SetVar(name string, x *Expression) {
	in.vars[name] = x
}

// SetScratch binds a name in the scratch scope. The binding disappears at
// the next ResetScratch.
func (in *Interp) SetScratch(name string, x *Expression) {
	in.scratch[name] = x
}

// LookupVar resolves a name against the scratch scope first, then the
// long-lived scope. The bound expression is returned unevaluated.
func (in *Interp) LookupVar(name string) (*Expression, bool) {
	if x, ok := in.scratch[name]; ok {
		return x, true
	}

	x, ok := in.vars[name]

	return x, ok
}

// removeScratch unbinds a scratch-scope name. The binding must exist:
// callers only remove names they previously added, so a miss is a
// programming error, not a user-facing one.
func (in *Interp) removeScratch(name string) {
	if _, ok := in.scratch[name]; !ok {
		panic("lang: removing scratch binding that was never added: " + name)
	}

	delete(in.scratch, name)
}

// ResetScratch clears the scratch scope. The driver calls it after each
// top-level expression; the granularity is the host's choice.
func (in *Interp) ResetScratch() {
	clear(in.scratch)
}

// FuncNames returns every registered function name, sorted. Used by hosts
// for completion and introspection.
func (in *Interp) FuncNames() []string {
	names := make([]string, 0, len(in.funcs))
	for name := range in.funcs {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// VarNames returns every visible variable name, sorted.
func (in *Interp) VarNames() []string {
	names := make([]string, 0, len(in.vars)+len(in.scratch))
	for name := range in.vars {
		names = append(names, name)
	}

	for name := range in.scratch {
		if _, ok := in.vars[name]; !ok {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}

// Eval evaluates an expression to a result expression. Literals are
// self-quoting; variables resolve recursively through the binding
// environment; calls dispatch by name to a native implementation with
// their arguments unevaluated.
func (in *Interp) Eval(
	ctx context.Context,
	x *Expression,
) (*Expression, error) {
	if in.depth >= in.maxDepth {
		return nil, ErrRecursionLimit.With(slog.Int("depth", in.depth))
	}

	in.depth++
	defer func() { in.depth-- }()

	switch x.Kind {
	case KindVoid, KindInt, KindString:
		return x, nil

	case KindVar:
		bound, ok := in.LookupVar(x.Text)
		if !ok {
			return nil, ErrUnknownVariable.With(slog.String("name", x.Text))
		}

		// Macro-style substitution: the binding is itself an expression,
		// re-evaluated on every reference. Chains of aliases resolve here;
		// cycles are caught by the depth bound.
		return in.Eval(ctx, bound)

	case KindCall:
		fn, ok := in.funcs[x.Text]
		if !ok {
			return nil, ErrUnknownFunction.With(slog.String("name", x.Text))
		}

		in.logger.TraceContext(ctx, "call",
			slog.String("name", x.Text),
			slog.Int("args", len(x.Args)),
		)

		result, err := fn(ctx, in, x.Args)
		if err != nil {
			return nil, in.wrapNative(x.Text, err)
		}

		return result, nil
	}

	return nil, ErrInvalidCast.With(slog.String("got", x.Kind.String()))
}

// wrapNative keeps the evaluation error taxonomy closed: failures from
// host-supplied natives that are not already *Error are wrapped into
// ErrHost without exposing host internals.
func (in *Interp) wrapNative(name string, err error) error {
	e := &Error{}
	if errors.As(err, &e) {
		return err
	}

	return ErrHost.Wrap(err).With(slog.String("name", name))
}

// Run parses source and evaluates each top-level expression in order,
// resetting the scratch scope between expressions. Parsing stops at the
// first syntax error; evaluation stops at the first evaluation error. The
// result of the last expression is returned.
func (in *Interp) Run(
	ctx context.Context,
	source string,
	opts ...ParseOption,
) (*Expression, error) {
	p := NewParser(source, opts...)
	last := NewVoid()

	for {
		expr, err := p.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrEndOfInput) {
				return last, nil
			}

			return nil, err
		}

		last, err = in.Eval(ctx, expr)

		in.ResetScratch()

		if err != nil {
			return nil, err
		}
	}
}
