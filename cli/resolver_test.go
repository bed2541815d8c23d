package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, yaml, flag string) any {
	t.Helper()

	resolver, err := resolveYAML(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("resolveYAML: %v", err)
	}

	value, err := resolver.Resolve(nil, nil, &kong.Flag{
		Value: &kong.Value{Name: flag},
	})
	if err != nil {
		t.Fatalf("Resolve(%q): %v", flag, err)
	}

	return value
}

func TestResolveYAML(t *testing.T) {
	const src = `
log_level: debug
log-format: json
log_pretty: false
indent: 4
`

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "json"},
		{"log-pretty", false},
		// Numbers are handed to kong as strings for parsing.
		{"indent", "4"},
		{"absent", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			if got := resolveFlag(t, src, tt.flag); got != tt.want {
				t.Errorf("Resolve(%q) = %v (%T), want %v",
					tt.flag, got, got, tt.want)
			}
		})
	}
}

func TestResolveYAMLMalformed(t *testing.T) {
	// A broken config file must not make the CLI unusable.
	if got := resolveFlag(t, ":\n  - [", "log-level"); got != nil {
		t.Errorf("Resolve on malformed config = %v, want nil", got)
	}
}
