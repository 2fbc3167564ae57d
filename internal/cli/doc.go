// Package cli wires together the Cobra command tree for the lintpost binary.
//
// It defines the root command and its subcommands (report, config, version),
// binds flags, reads configuration, builds the report pipeline with either a
// GitHub or a local dry-run reviewer, and returns deterministic exit codes
// for CI.
package cli
