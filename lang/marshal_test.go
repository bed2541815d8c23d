package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

func TestExpression_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		x    *Expression
		want string
	}{
		{"void", NewVoid(), `null`},
		{"int", NewInt(42), `42`},
		{"string", NewString("hi"), `"hi"`},
		{"var", NewVar("author"), `{"var":"author"}`},
		{
			"call",
			NewCall("echo", NewString("hi"), NewInt(2)),
			`{"args":["hi",2],"call":"echo"}`,
		},
		{
			"nested call",
			NewCall("repeat", NewCall("echo", NewVar("x")), NewInt(3)),
			`{"args":[{"args":[{"var":"x"}],"call":"echo"},3],"call":"repeat"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.x)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			if string(data) != tt.want {
				t.Errorf("JSON = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestEncodeYAML(t *testing.T) {
	exprs, err := ParseString(context.Background(),
		`echo("hi")`+"\n"+`let(x, 42)`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeYAML(&buf, exprs); err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Decode back and compare structurally; key order in the encoded text
	// is not part of the contract.
	var got []any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []any{
		map[string]any{
			"call": "echo",
			"args": []any{"hi"},
		},
		map[string]any{
			"call": "let",
			"args": []any{
				map[string]any{"var": "x"},
				uint64(42),
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded YAML mismatch (-want +got):\n%s", diff)
	}
}
