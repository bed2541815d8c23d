package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// The builtin catalog is a plain data table iterated once at interpreter
// construction; there is no ambient global registration state.
var builtins = []struct {
	name string
	fn   NativeFunc
}{
	{"log", builtinEcho},
	{"echo", builtinEcho},
	{"if", builtinIf},
	{"eql", builtinEql},
	{"not", builtinNot},
	{"and", builtinAnd},
	{"gt", compareBuiltin("gt", func(a, b uint64) bool { return a > b })},
	{"gte", compareBuiltin("gte", func(a, b uint64) bool { return a >= b })},
	{"ls", compareBuiltin("ls", func(a, b uint64) bool { return a < b })},
	{"lse", compareBuiltin("lse", func(a, b uint64) bool { return a <= b })},
	{"add", builtinAdd},
	{"let", builtinLet},
	{"repeat", builtinRepeat},
	{"do", builtinDo},
	{"define", builtinDefine},
}

func registerBuiltins(in *Interp) {
	for _, b := range builtins {
		in.Register(b.name, b.fn)
	}
}

// Booleans are the strings "true" and "false"; the language has no
// dedicated boolean variant.
const (
	trueText  = "true"
	falseText = "false"
)

var (
	trueExpr  = NewString(trueText)
	falseExpr = NewString(falseText)
)

func boolExpr(b bool) *Expression {
	if b {
		return trueExpr
	}

	return falseExpr
}

// asBool narrows an evaluated expression to a boolean string.
func asBool(x *Expression) (bool, error) {
	if x.Kind == KindString {
		switch x.Text {
		case trueText:
			return true, nil
		case falseText:
			return false, nil
		}
	}

	return false, ErrArgumentValue.With(
		slog.String("want", `"true" or "false"`),
		slog.String("got", x.String()),
	)
}

// wantArgs enforces an exact argument count.
func wantArgs(name string, args []*Expression, n int) error {
	if len(args) != n {
		return ErrArgumentCount.With(
			slog.String("name", name),
			slog.Int("want", n),
			slog.Int("got", len(args)),
		)
	}

	return nil
}

// wantAtLeast enforces a minimum argument count.
func wantAtLeast(name string, args []*Expression, n int) error {
	if len(args) < n {
		return ErrArgumentCount.With(
			slog.String("name", name),
			slog.Int("want_at_least", n),
			slog.Int("got", len(args)),
		)
	}

	return nil
}

// builtinEcho evaluates each argument, concatenates the results (integers
// in decimal, strings as-is), and writes the joined text to the
// interpreter's output sink. Registered as both "echo" and "log".
func builtinEcho(
	ctx context.Context,
	in *Interp,
	args []*Expression,
) (*Expression, error) {
	if err := wantAtLeast("echo", args, 1); err != nil {
		return nil, err
	}

	var buf strings.Builder

	for _, arg := range args {
		val, err := in.Eval(ctx, arg)
		if err != nil {
			return nil, err
		}

		switch val.Kind {
		case KindInt:
			buf.WriteString(strconv.FormatUint(val.Int, 10))

		case KindString:
			buf.WriteString(val.Text)

		default:
			return nil, ErrInvalidCast.With(
				slog.String("name", "echo"),
				slog.String("want", "Int or String"),
				slog.String("got", val.Kind.String()),
			)
		}
	}

	if _, err := io.WriteString(in.out, buf.String()+"\n"); err != nil {
		return nil, ErrHost.Wrap(err)
	}

	return NewVoid(), nil
}

// builtinIf evaluates its condition and then exactly one branch; the
// untaken branch is never evaluated.
func builtinIf(
	ctx context.Context,
	in *Interp,
	args []*Expression,
) (*Expression, error) {
	if err := wantArgs("if", args, 3); err != nil {
		return nil, err
	}

	cond, err := in.Eval(ctx, args[0])
	if err != nil {
		return nil, err
	}

	b, err := asBool(cond)
	if err != nil {
		return nil, err
	}

	if b {
		return in.Eval(ctx, args[1])
	}

	return in.Eval(ctx, args[2])
}

// builtinEql evaluates both arguments and compares them structurally.
func builtinEql(
	ctx context.Context,
	in *Interp,
	args []*Expression,
) (*Expression, error) {
	if err := wantArgs("eql", args, 2); err != nil {
		return nil, err
	}

	a, err := in.Eval(ctx, args[0])
	if err != nil {
		return nil, err
	}

	b, err := in.Eval(ctx, args[1])
	if err != nil {
		return nil, err
	}

	return boolExpr(a.Eql(b)), nil
}

func builtinNot(
	ctx context.Context,
	in *Interp,
	args []*Expression,
) (*Expression, error) {
	if err := wantArgs("not", args, 1); err != nil {
		return nil, err
	}

	val, err := in.Eval(ctx, args[0])
	if err != nil {
		return nil, err
	}

	b, err := asBool(val)
	if err != nil {
		return nil, err
	}

	return boolExpr(!b), nil
}

// builtinAnd evaluates arguments left to right and short-circuits on the
// first "false"; later arguments are then never evaluated.
func builtinAnd(
	ctx context.Context,
	in *Interp,
	args []*Expression,
) (*Expression, error) {
	if err := wantAtLeast("and", args, 1); err != nil {
		return nil, err
	}

	for _, arg := range args {
		val, err := in.Eval(ctx, arg)
		if err != nil {
			return nil, err
		}

		b, err := asBool(val)
		if err != nil {
			return nil, err
		}

		if !b {
			return falseExpr, nil
		}
	}

	return trueExpr, nil
}

// compareBuiltin builds the integer comparison builtins (gt, gte, ls,
// lse). Both arguments are evaluated and must yield integers.
func compareBuiltin(name string, cmp func(a, b uint64) bool) NativeFunc {
	return func(
		ctx context.Context,
		in *Interp,
		args []*Expression,
	) (*Expression, error) {
		if err := wantArgs(name, args, 2); err != nil {
			return nil, err
		}

		lhs, err := in.Eval(ctx, args[0])
		if err != nil {
			return nil, err
		}

		a, err := lhs.AsInt()
		if err != nil {
			return nil, err
		}

		rhs, err := in.Eval(ctx, args[1])
		if err != nil {
			return nil, err
		}

		b, err := rhs.AsInt()
		if err != nil {
			return nil, err
		}

		return boolExpr(cmp(a, b)), nil
	}
}

// builtinAdd sums its arguments as uint64; overflow wraps, following
// native unsigned arithmetic.
func builtinAdd(
	ctx context.Context,
	in *Interp,
	args []*Expression,
) (*Expression, error) {
	if err := wantAtLeast("add", args, 1); err != nil {
		return nil, err
	}

	var sum uint64

	for _, arg := range args {
		val, err := in.Eval(ctx, arg)
		if err != nil {
			return nil, err
		}

		n, err := val.AsInt()
		if err != nil {
			return nil, err
		}

		sum += n
	}

	return NewInt(sum), nil
}

// builtinLet binds a name to the evaluated value of its second argument in
// the long-lived scope. Unlike define's formal parameters, let performs no
// shadow check: rebinding an existing name overwrites it.
func builtinLet(
	ctx context.Context,
	in *Interp,
	args []*Expression,
) (*Expression, error) {
	if err := wantArgs("let", args, 2); err != nil {
		return nil, err
	}

	name, err := args[0].AsVar()
	if err != nil {
		return nil, err
	}

	val, err := in.Eval(ctx, args[1])
	if err != nil {
		return nil, err
	}

	in.SetVar(name, val)

	return NewVoid(), nil
}

// builtinRepeat evaluates its second argument to a count, then evaluates
// the first argument exactly that many times, concatenating the
// string-typed results. Non-string iteration results are silently dropped
// rather than errored; see the repeat tests, which pin this quirk down.
// If nothing accumulates the result is Void.
func builtinRepeat(
	ctx context.Context,
	in *Interp,
	args []*Expression,
) (*Expression, error) {
	if err := wantArgs("repeat", args, 2); err != nil {
		return nil, err
	}

	count, err := in.Eval(ctx, args[1])
	if err != nil {
		return nil, err
	}

	n, err := count.AsInt()
	if err != nil {
		return nil, err
	}

	var (
		buf  strings.Builder
		some bool
	)

	for i := uint64(0); i < n; i++ {
		val, err := in.Eval(ctx, args[0])
		if err != nil {
			return nil, err
		}

		if val.Kind == KindString {
			buf.WriteString(val.Text)

			some = true
		}
	}

	if !some {
		return NewVoid(), nil
	}

	return NewString(buf.String()), nil
}

// builtinDo evaluates each argument in order for its side effects.
func builtinDo(
	ctx context.Context,
	in *Interp,
	args []*Expression,
) (*Expression, error) {
	for _, arg := range args {
		if _, err := in.Eval(ctx, arg); err != nil {
			return nil, err
		}
	}

	return NewVoid(), nil
}

// builtinDefine synthesizes a new named function at evaluation time:
//
//	define(name, args(p1, p2, ...), body)
//
// The formal parameter names and the body are captured by the registered
// closure. Calling the function binds each formal to the corresponding
// actual argument expression — unevaluated, so evaluation happens lazily
// if and when the body references the parameter — evaluates the body, and
// unconditionally unbinds the formals afterwards.
func builtinDefine(
	_ context.Context,
	in *Interp,
	args []*Expression,
) (*Expression, error) {
	if err := wantArgs("define", args, 3); err != nil {
		return nil, err
	}

	name, err := args[0].AsVar()
	if err != nil {
		return nil, ErrArgumentName.With(
			slog.String("want", "bare function name"),
			slog.String("got", args[0].Kind.String()),
		)
	}

	argsName, argsList, err := args[1].AsCall()
	if err != nil || argsName != "args" {
		return nil, ErrArgumentName.With(
			slog.String("want", "args(...)"),
			slog.String("got", args[1].String()),
		)
	}

	params := make([]string, len(argsList))

	for i, arg := range argsList {
		p, err := arg.AsVar()
		if err != nil {
			return nil, ErrArgumentName.With(
				slog.String("want", "bare parameter name"),
				slog.String("got", arg.String()),
			)
		}

		params[i] = p
	}

	body := args[2]

	in.Register(name, defined(name, params, body))

	return NewVoid(), nil
}

// defined builds the closure registered by define. The bind/unbind
// protocol is strict:
//
//  1. arity must match exactly;
//  2. each formal must not already be bound in the caller's visible scope
//     (shadowing an outer binding is an error, and a failed call leaves
//     no partial bindings behind);
//  3. formals are bound in the scratch scope and removed on every exit
//     path — removal must succeed because the binding was always added,
//     and a miss panics as a programming error.
func defined(name string, params []string, body *Expression) NativeFunc {
	return func(
		ctx context.Context,
		in *Interp,
		actual []*Expression,
	) (*Expression, error) {
		if len(actual) != len(params) {
			return nil, ErrArgumentCount.With(
				slog.String("name", name),
				slog.Int("want", len(params)),
				slog.Int("got", len(actual)),
			)
		}

		for i, p := range params {
			if _, bound := in.LookupVar(p); bound {
				for _, q := range params[:i] {
					in.removeScratch(q)
				}

				return nil, ErrShadowing.With(
					slog.String("name", name),
					slog.String("parameter", p),
				)
			}

			in.SetScratch(p, actual[i])
		}

		defer func() {
			for _, p := range params {
				in.removeScratch(p)
			}
		}()

		return in.Eval(ctx, body)
	}
}
