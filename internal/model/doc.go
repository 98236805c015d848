// Package model defines the domain types and value objects for the
// pybootstrap CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (Version, OSFamily, ComponentState, ComponentReport) are
// transient per-run representations; the only state that survives a run
// lives on the filesystem as the environment directory, the requirements
// manifest and the receipt file.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
