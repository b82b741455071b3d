// Package pkg holds program metadata and per-user directories.
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version embedded from the VERSION file.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It appears in usage text, diagnostics,
	// configuration paths, and as the environment variable prefix.
	Name = "aq"
	// Description is a one-line summary used in help output.
	Description = "Read ASON documents, combine them, and write the result"
)
