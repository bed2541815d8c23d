package cli

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/nilsblix/chirp/pkg"
)

// baseConfig is the base name of the configuration file. A sibling JSON
// file (baseConfigJSON) is honored as a lower-precedence config layer.
const (
	baseConfig     = "config.yaml"
	baseConfigJSON = "config.json"
)

// baseStore is the base name of the stored-command database.
const baseStore = "commands.db"

// defaultDirMode is the permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(
	func() string {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir, err = os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(dir, ".config")
			} else {
				dir, err = os.Getwd()
				if err != nil {
					dir = "."
				}
			}
		}

		return filepath.Join(dir, pkg.Name)
	},
)

// dataDir returns the data directory path, which holds the command store,
// REPL history, and profiling output.
var dataDir = sync.OnceValue(
	func() string {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir, err = os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(dir, ".cache")
			} else {
				dir, err = os.Getwd()
				if err != nil {
					dir = "."
				}
			}
		}

		return filepath.Join(dir, pkg.Name)
	},
)

// configPath returns the absolute path to a file or directory formed by
// joining the configuration directory path with the given path elements.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// dataPath returns the absolute path to a file or directory formed by
// joining the data directory path with the given path elements.
func dataPath(elem ...string) string {
	return filepath.Join(append([]string{dataDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	if err := os.MkdirAll(configDir(), defaultDirMode); err != nil {
		return err
	}

	return os.MkdirAll(dataDir(), defaultDirMode)
}
