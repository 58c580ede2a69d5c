// Package cli holds shared flag parsing and console output for the
// command-line tools.
package cli

import "flag"

// ImportFlags are the common flags for the import command.
type ImportFlags struct {
	File    string
	UserID  string
	DryRun  bool
	Verbose bool
}

// ParseImportFlags parses import flags from the command line.
func ParseImportFlags() ImportFlags {
	var flags ImportFlags
	flag.StringVar(&flags.File, "file", "", "Path to a JSON file of raw transactions")
	flag.StringVar(&flags.UserID, "user", "", "User the batch belongs to")
	flag.BoolVar(&flags.DryRun, "dry-run", false, "Run without persisting anything")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}
