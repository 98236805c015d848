// Package config defines the explicit, immutable configuration for the
// pybootstrap CLI and its optional JSONC config file.
//
// A Config value carries everything the bootstrap steps need: the project
// directory, the target Python version, the environment directory name,
// the manifest paths (primary and fallback), the entry point and the
// install log location. Steps receive it by value and resolve paths
// through its helper methods; no package-level configuration exists.
//
// The config file (.pybootstrap/pybootstrap.json or .pybootstrap.json) is
// optional and parsed with github.com/tidwall/jsonc so comments are
// tolerated. `pybootstrap init` writes a starter file with the defaults.
package config
