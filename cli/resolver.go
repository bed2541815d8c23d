package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] that reads flag defaults from
// a YAML config file. The file is a flat mapping from flag names to values;
// hyphenated flag names (e.g. "log-level") may be written with underscores
// ("log_level"). Command-line flags override config file values.
//
// Example config file:
//
//	log_level: debug
//	log_format: json
//	log_pretty: true
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		// A malformed config file should not make the whole CLI unusable.
		return config{}, nil
	}

	return config(values), nil
}

// config implements [kong.Resolver] over a decoded YAML mapping.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	value, ok := r[flag.Name]
	if !ok {
		value, ok = r[strings.ReplaceAll(flag.Name, "-", "_")]
	}

	if !ok {
		// Let kong fall back to the flag's default.
		return nil, nil
	}

	// Kong expects numbers as strings for parsing.
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return value, nil
	}
}
