// Package cmd implements the chirp subcommands: evaluating source,
// formatting expression trees, managing the stored-command database, and
// launching the interactive REPL.
package cmd

var (
	// ConfigIdentifier is the kong variable identifier containing the path
	// to the configuration file.
	ConfigIdentifier = "config"

	// DataIdentifier is the kong variable identifier containing the path to
	// the runtime data directory.
	DataIdentifier = "data"
)
