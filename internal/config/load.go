// load.go handles the optional config file: locating it, parsing it with
// JSONC tolerance, merging its overrides onto the compiled defaults, and
// writing the starter file for `pybootstrap init`.
//
// The config file is optional. A project with no file at all gets
// Default(), and the loaded Config is identical whether a field was
// omitted from the file or the file is absent entirely.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/pybootstrap/internal/model"
	"github.com/tidwall/jsonc"
)

// RawConfig represents the JSON structure of the config file. Every field
// is optional; empty values mean "keep the default". Unknown fields are
// silently ignored during parsing.
type RawConfig struct {
	// TargetVersion is the Python MAJOR.MINOR string, e.g. "3.10".
	TargetVersion string `json:"targetVersion,omitempty"`

	// EnvDir is the virtual environment directory name.
	EnvDir string `json:"envDir,omitempty"`

	// Manifest is the primary requirements manifest path.
	Manifest string `json:"manifest,omitempty"`

	// ManifestFallback is the flat-file manifest alternate path.
	ManifestFallback string `json:"manifestFallback,omitempty"`

	// EntryPoint is the downstream application's startup script path.
	EntryPoint string `json:"entryPoint,omitempty"`

	// InstallLog is the install log file path.
	InstallLog string `json:"installLog,omitempty"`
}

// FindConfigFile searches for the config file in the standard locations
// within a project directory.
//
// The search order:
//  1. <projectDir>/.pybootstrap/pybootstrap.json (preferred)
//  2. <projectDir>/.pybootstrap.json (root-level alternate)
//
// Returns the path of the first found file and true, or "" and false when
// neither location has one. Absence is not an error: the caller falls back
// to the compiled defaults.
func FindConfigFile(projectDir string) (string, bool) {
	candidates := []string{
		filepath.Join(projectDir, ConfigDirName, ConfigFileName),
		filepath.Join(projectDir, AltConfigFileName),
	}

	for _, path := range candidates {
		// os.Stat checks existence without reading contents.
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}

	return "", false
}

// Load builds the Config for projectDir: compiled defaults, overridden by
// the config file if one exists, then validated.
//
// A malformed config file is an error rather than a silent fallback: a
// project that wrote one wants its overrides applied, not quietly dropped.
func Load(projectDir string) (Config, error) {
	cfg := Default(projectDir)

	path, found := FindConfigFile(projectDir)
	if !found {
		return cfg, nil
	}

	raw, err := readRaw(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err = applyRaw(cfg, raw)
	if err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// readRaw reads a config file, strips JSONC comments, and parses it into
// a RawConfig struct.
//
// github.com/tidwall/jsonc strips // and /* */ comments plus trailing
// commas before the standard encoding/json parse, so hand-edited config
// files can carry commentary.
func readRaw(path string) (*RawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cleanJSON := jsonc.ToJSON(data)

	var raw RawConfig
	if err := json.Unmarshal(cleanJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &raw, nil
}

// applyRaw merges non-empty RawConfig fields onto cfg. The target version
// is parsed strictly here so a typo like "3.10.2" or "3,10" surfaces as a
// load error instead of a never-matching locate loop.
func applyRaw(cfg Config, raw *RawConfig) (Config, error) {
	if raw.TargetVersion != "" {
		v, err := model.ParseVersion(raw.TargetVersion)
		if err != nil {
			return Config{}, err
		}
		cfg.TargetVersion = v
	}
	if raw.EnvDir != "" {
		cfg.EnvDirName = raw.EnvDir
	}
	if raw.Manifest != "" {
		cfg.ManifestPath = raw.Manifest
	}
	if raw.ManifestFallback != "" {
		cfg.ManifestFallbackPath = raw.ManifestFallback
	}
	if raw.EntryPoint != "" {
		cfg.EntryPoint = raw.EntryPoint
	}
	if raw.InstallLog != "" {
		cfg.InstallLogPath = raw.InstallLog
	}
	return cfg, nil
}

// WriteStarterFile writes a config file populated with the compiled
// defaults to the preferred location, creating the .pybootstrap directory.
// Returns the written path.
//
// Refuses to overwrite: if either config location already has a file, the
// existing path is returned with an error so `init` never clobbers a
// project's tuned configuration.
func WriteStarterFile(projectDir string) (string, error) {
	if existing, found := FindConfigFile(projectDir); found {
		return existing, fmt.Errorf("config file already exists: %s", existing)
	}

	raw := RawConfig{
		TargetVersion:    DefaultTargetVersion,
		EnvDir:           DefaultEnvDirName,
		Manifest:         DefaultManifestPath,
		ManifestFallback: DefaultManifestFallbackPath,
		EntryPoint:       DefaultEntryPoint,
		InstallLog:       filepath.Join(ConfigDirName, installLogName),
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize starter config: %w", err)
	}
	// MarshalIndent does not append a trailing newline.
	data = append(data, '\n')

	dir := filepath.Join(projectDir, ConfigDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write starter config to %s: %w", path, err)
	}

	return path, nil
}
