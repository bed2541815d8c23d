package lang

import (
	"encoding/json"
	"io"

	"github.com/goccy/go-yaml"
)

// ToNative converts an expression tree to plain Go values suitable for
// generic encoders: Void becomes nil, integers and strings themselves,
// variables a {var: name} map, and calls a {call: name, args: [...]} map.
// The mapping is for tooling output only; it is not a parser input format.
func (x *Expression) ToNative() any {
	switch x.Kind {
	case KindInt:
		return x.Int

	case KindString:
		return x.Text

	case KindVar:
		return map[string]any{"var": x.Text}

	case KindCall:
		args := make([]any, len(x.Args))
		for i, arg := range x.Args {
			args[i] = arg.ToNative()
		}

		return map[string]any{"call": x.Text, "args": args}

	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (x *Expression) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.ToNative())
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (x *Expression) MarshalYAML() (any, error) {
	return x.ToNative(), nil
}

// EncodeYAML writes the expressions to w as a YAML sequence, one document
// entry per top-level expression.
func EncodeYAML(w io.Writer, exprs []*Expression) error {
	native := make([]any, len(exprs))
	for i, x := range exprs {
		native[i] = x.ToNative()
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()

	return enc.Encode(native)
}
