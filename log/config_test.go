package log

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"ERROR", LevelError},
		{"", DefaultLevel},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v",
					tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(slog.LevelError + 4), "ERROR+4"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q",
				tt.level, got, tt.want)
		}
	}
}

func TestLevels(t *testing.T) {
	names := Levels()
	if len(names) != 5 {
		t.Fatalf("Levels() = %v, want 5 names", names)
	}

	for _, name := range names {
		if ParseLevel(name).String() != name {
			t.Errorf("ParseLevel(%q).String() = %q, want round-trip",
				name, ParseLevel(name).String())
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{" json ", FormatJSON},
		{"text", FormatText},
		{"", DefaultFormat},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatString(t *testing.T) {
	if got := FormatText.String(); got != "text" {
		t.Errorf("FormatText.String() = %q, want %q", got, "text")
	}

	if got := FormatJSON.String(); got != "json" {
		t.Errorf("FormatJSON.String() = %q, want %q", got, "json")
	}
}
