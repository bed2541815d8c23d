package lang

import (
	"log/slog"
	"strconv"
)

// ExprKind identifies the variant held by an Expression.
type ExprKind int

const (
	// KindVoid is the unit result. Most side-effecting builtins return it.
	KindVoid ExprKind = iota

	// KindInt is an unsigned 64-bit integer literal.
	KindInt

	// KindString is a byte-for-byte string value.
	KindString

	// KindVar is a symbolic reference resolved against the variable scope
	// at evaluation time.
	KindVar

	// KindCall is a named call with zero or more positional arguments.
	KindCall
)

// String returns the variant name, used in cast error messages.
func (k ExprKind) String() string {
	switch k {
	case KindVoid:
		return "Void"
	case KindInt:
		return "Int"
	case KindString:
		return "String"
	case KindVar:
		return "Var"
	case KindCall:
		return "Call"
	default:
		return "Unknown"
	}
}

// Expression is the shared AST and value node: a closed tagged union of
// void, integer, string, variable reference, and function call. Trees are
// immutable once constructed and strictly acyclic.
type Expression struct {
	Kind ExprKind
	Int  uint64        // KindInt
	Text string        // KindString value, or KindVar/KindCall name
	Args []*Expression // KindCall arguments, in order
}

// Void is the shared unit value. It is safe to return from any native
// function; nothing ever mutates an Expression.
var voidExpr = &Expression{Kind: KindVoid}

// NewVoid returns the unit expression.
func NewVoid() *Expression { return voidExpr }

// NewInt returns an integer literal expression.
func NewInt(v uint64) *Expression {
	return &Expression{Kind: KindInt, Int: v}
}

// NewString returns a string literal expression.
func NewString(s string) *Expression {
	return &Expression{Kind: KindString, Text: s}
}

// NewVar returns a variable reference expression.
func NewVar(name string) *Expression {
	return &Expression{Kind: KindVar, Text: name}
}

// NewCall returns a function call expression with the given arguments.
func NewCall(name string, args ...*Expression) *Expression {
	return &Expression{Kind: KindCall, Text: name, Args: args}
}

// castErr builds the InvalidCast error for a failed accessor.
func (x *Expression) castErr(want ExprKind) error {
	return ErrInvalidCast.With(
		slog.String("want", want.String()),
		slog.String("got", x.Kind.String()),
	)
}

// AsInt narrows to the integer variant.
func (x *Expression) AsInt() (uint64, error) {
	if x.Kind != KindInt {
		return 0, x.castErr(KindInt)
	}

	return x.Int, nil
}

// AsString narrows to the string variant.
func (x *Expression) AsString() (string, error) {
	if x.Kind != KindString {
		return "", x.castErr(KindString)
	}

	return x.Text, nil
}

// AsVar narrows to the variable variant, returning the referenced name.
func (x *Expression) AsVar() (string, error) {
	if x.Kind != KindVar {
		return "", x.castErr(KindVar)
	}

	return x.Text, nil
}

// AsCall narrows to the call variant, returning the callee name and the
// unevaluated argument list.
func (x *Expression) AsCall() (string, []*Expression, error) {
	if x.Kind != KindCall {
		return "", nil, x.castErr(KindCall)
	}

	return x.Text, x.Args, nil
}

// Eql reports structural equality. The comparison is syntactic on the
// unevaluated tree: two variables are equal only if their names match, and
// a variable is never equal to the value it resolves to.
func (x *Expression) Eql(y *Expression) bool {
	if x == y {
		return true
	}

	if x == nil || y == nil || x.Kind != y.Kind {
		return false
	}

	switch x.Kind {
	case KindVoid:
		return true

	case KindInt:
		return x.Int == y.Int

	case KindString, KindVar:
		return x.Text == y.Text

	case KindCall:
		if x.Text != y.Text || len(x.Args) != len(y.Args) {
			return false
		}

		for i := range x.Args {
			if !x.Args[i].Eql(y.Args[i]) {
				return false
			}
		}

		return true
	}

	return false
}

// String renders the expression as source text: integers in decimal,
// strings double-quoted, calls as name(a, b). Void renders as "void" and
// is the one variant with no source form (the grammar has no void
// literal), so it does not round-trip through the parser.
func (x *Expression) String() string {
	return string(x.appendSource(nil))
}

func (x *Expression) appendSource(b []byte) []byte {
	if x == nil {
		return b
	}

	switch x.Kind {
	case KindVoid:
		return append(b, "void"...)

	case KindInt:
		return strconv.AppendUint(b, x.Int, 10)

	case KindString:
		b = append(b, '"')
		b = append(b, x.Text...)

		return append(b, '"')

	case KindVar:
		return append(b, x.Text...)

	case KindCall:
		b = append(b, x.Text...)
		b = append(b, '(')

		for i, arg := range x.Args {
			if i > 0 {
				b = append(b, ", "...)
			}

			b = arg.appendSource(b)
		}

		return append(b, ')')
	}

	return b
}
