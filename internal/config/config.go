// Package config holds the parsed run configuration for a book build
// invocation, built by cmd/pgnbook from cobra/pflag flags, with the flag
// parsing itself left to the CLI layer.
package config

// Config holds everything a book build run needs once flags have been
// parsed and validated.
type Config struct {
	// InputPath is the source PGN file to read.
	InputPath string

	// OutputPath is the destination Polyglot book file. Empty means
	// derive it from InputPath by replacing its extension with ".bin".
	OutputPath string

	// Full disables deduplication in the writer, emitting every
	// aggregated entry instead of collapsing consecutive duplicates.
	Full bool

	// Strict controls the SAN resolver's behaviour on ambiguous moves:
	// true reports ambiguity as unresolved, false applies the looser
	// smallest-file tie-break.
	Strict bool

	// Verbosity is 0 (warnings and errors), 1 (info) or 2+ (debug).
	Verbosity int

	// MetricsAddr, if non-empty, serves Prometheus metrics on this
	// address for the duration of the run.
	MetricsAddr string
}

// OutputPathOrDefault returns OutputPath if set, otherwise InputPath with
// its extension replaced by ".bin".
func (c *Config) OutputPathOrDefault() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	return replaceExt(c.InputPath, ".bin")
}

func replaceExt(path, ext string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[:i] + ext
		}
		if path[i] == '/' || path[i] == '\\' {
			break
		}
	}
	return path + ext
}
