// Package config builds the immutable bootstrap configuration.
//
// Every step of the bootstrap receives an explicit Config value instead of
// reading package-level constants or globals: tests substitute a Config
// pointing into a temp directory and nothing else has to change. The
// compiled defaults describe the conventional Python project layout
// (requirements.txt, a .venv directory, app/main.py) and an optional JSONC
// config file can override any of them.
//
// Key responsibilities:
//   - Define the Config value object and its compiled defaults
//   - Locate and parse the optional config file (JSONC tolerated)
//   - Validate overrides (strict target version, bare env dir name, relative paths)
//   - Resolve the relative entries against the project directory
package config

import (
	"fmt"
	"path/filepath"

	"github.com/shinji-kodama/pybootstrap/internal/model"
)

// Compiled defaults. These are the values a project with no config file
// gets, and the values `pybootstrap init` writes into a starter file.
const (
	// DefaultTargetVersion is the Python MAJOR.MINOR the bootstrap
	// locates or installs when no config file overrides it.
	DefaultTargetVersion = "3.10"

	// DefaultEnvDirName is the virtual environment directory name,
	// created directly under the project directory.
	DefaultEnvDirName = ".venv"

	// DefaultManifestPath is the primary requirements manifest location.
	DefaultManifestPath = "requirements.txt"

	// DefaultManifestFallbackPath is the flat-file alternate probed when
	// the primary manifest is absent. When only the fallback exists it is
	// copied to the primary location.
	DefaultManifestFallbackPath = "requirement.txt"

	// DefaultEntryPoint is the downstream application's startup script,
	// run with the environment's interpreter once bootstrapping completes.
	DefaultEntryPoint = "app/main.py"

	// ConfigDirName is the tool's own directory under the project root,
	// holding the config file and the install log.
	ConfigDirName = ".pybootstrap"

	// ConfigFileName is the config file name inside ConfigDirName.
	ConfigFileName = "pybootstrap.json"

	// AltConfigFileName is the root-level alternate config location.
	AltConfigFileName = ".pybootstrap.json"

	// installLogName is the install log file name inside ConfigDirName.
	installLogName = "install.log"
)

// Config is the explicit configuration for one bootstrap run. It is
// immutable by convention: built once by Load (or Default), passed by
// value into each step, never modified afterwards.
//
// All path fields except ProjectDir are relative to ProjectDir; the
// resolver methods (EnvDir, Manifest, ...) join them.
type Config struct {
	// ProjectDir is the project root directory everything else is
	// resolved against. Always set, defaults to ".".
	ProjectDir string

	// TargetVersion is the Python MAJOR.MINOR to locate or install.
	TargetVersion model.Version

	// EnvDirName is the virtual environment directory name, a bare
	// single path element directly under ProjectDir.
	EnvDirName string

	// ManifestPath is the primary requirements manifest, relative to
	// ProjectDir. May contain directory components.
	ManifestPath string

	// ManifestFallbackPath is the flat-file manifest alternate,
	// relative to ProjectDir.
	ManifestFallbackPath string

	// EntryPoint is the downstream application's startup script,
	// relative to ProjectDir.
	EntryPoint string

	// InstallLogPath is the install log file, relative to ProjectDir.
	InstallLogPath string
}

// Default returns the compiled-default configuration rooted at projectDir.
func Default(projectDir string) Config {
	return Config{
		ProjectDir:           projectDir,
		TargetVersion:        model.Version{Major: 3, Minor: 10},
		EnvDirName:           DefaultEnvDirName,
		ManifestPath:         DefaultManifestPath,
		ManifestFallbackPath: DefaultManifestFallbackPath,
		EntryPoint:           DefaultEntryPoint,
		InstallLogPath:       filepath.Join(ConfigDirName, installLogName),
	}
}

// EnvDir returns the absolute-or-project-relative path of the virtual
// environment directory.
func (c Config) EnvDir() string {
	return filepath.Join(c.ProjectDir, c.EnvDirName)
}

// Manifest returns the resolved primary manifest path.
func (c Config) Manifest() string {
	return filepath.Join(c.ProjectDir, c.ManifestPath)
}

// ManifestFallback returns the resolved fallback manifest path.
func (c Config) ManifestFallback() string {
	return filepath.Join(c.ProjectDir, c.ManifestFallbackPath)
}

// EntryPointPath returns the resolved entry point script path.
func (c Config) EntryPointPath() string {
	return filepath.Join(c.ProjectDir, c.EntryPoint)
}

// InstallLog returns the resolved install log path.
func (c Config) InstallLog() string {
	return filepath.Join(c.ProjectDir, c.InstallLogPath)
}

// Validate checks the configuration for structural problems: an invalid
// environment directory name, absolute paths where project-relative ones
// are required, or empty required entries. Load calls this after applying
// file overrides, so a Config obtained from Load is always valid.
func (c Config) Validate() error {
	if c.ProjectDir == "" {
		return fmt.Errorf("project directory must not be empty")
	}
	if err := model.ValidateEnvDirName(c.EnvDirName); err != nil {
		return err
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"manifest", c.ManifestPath},
		{"manifestFallback", c.ManifestFallbackPath},
		{"entryPoint", c.EntryPoint},
		{"installLog", c.InstallLogPath},
	} {
		if field.value == "" {
			return fmt.Errorf("%s path must not be empty", field.name)
		}
		if filepath.IsAbs(field.value) {
			return fmt.Errorf("%s path must be relative to the project directory, got %q", field.name, field.value)
		}
	}
	return nil
}
