// Package pkg holds project identity shared by the CLI and help output.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version of the chirp module embedded at build
// time. It is printed by the CLI's --version flag.
//
//go:embed VERSION
var rawVersion string

// Version returns the embedded version string, trimmed.
func Version() string {
	return strings.TrimSpace(rawVersion)
}

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text and default config paths.
	Name = "chirp"
	// Description is a short, human-readable summary of the project used
	// in help output.
	Description = "Embeddable command expression language"
)
