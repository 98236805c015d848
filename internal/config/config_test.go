package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/pybootstrap/internal/model"
)

// --- Default tests ---

// TestDefault verifies the compiled defaults for a project with no
// config file.
func TestDefault(t *testing.T) {
	cfg := Default("/work/proj")

	assert.Equal(t, "/work/proj", cfg.ProjectDir)
	assert.Equal(t, model.Version{Major: 3, Minor: 10}, cfg.TargetVersion)
	assert.Equal(t, ".venv", cfg.EnvDirName)
	assert.Equal(t, "requirements.txt", cfg.ManifestPath)
	assert.Equal(t, "requirement.txt", cfg.ManifestFallbackPath)
	assert.Equal(t, "app/main.py", cfg.EntryPoint)
	assert.Equal(t, filepath.Join(".pybootstrap", "install.log"), cfg.InstallLogPath)
}

// --- Path resolver tests ---

// TestPathResolvers verifies that the resolver methods join each relative
// entry onto the project directory.
func TestPathResolvers(t *testing.T) {
	cfg := Default("/work/proj")

	assert.Equal(t, filepath.Join("/work/proj", ".venv"), cfg.EnvDir())
	assert.Equal(t, filepath.Join("/work/proj", "requirements.txt"), cfg.Manifest())
	assert.Equal(t, filepath.Join("/work/proj", "requirement.txt"), cfg.ManifestFallback())
	assert.Equal(t, filepath.Join("/work/proj", "app", "main.py"), cfg.EntryPointPath())
	assert.Equal(t, filepath.Join("/work/proj", ".pybootstrap", "install.log"), cfg.InstallLog())
}

// TestPathResolversWithOverrides verifies resolution of non-default
// relative entries, including ones with directory components.
func TestPathResolversWithOverrides(t *testing.T) {
	cfg := Default("/work/proj")
	cfg.EnvDirName = "env310"
	cfg.ManifestPath = filepath.Join("deps", "requirements.txt")

	assert.Equal(t, filepath.Join("/work/proj", "env310"), cfg.EnvDir())
	assert.Equal(t, filepath.Join("/work/proj", "deps", "requirements.txt"), cfg.Manifest())
}

// --- Validate tests ---

// TestValidate verifies acceptance of the defaults and rejection of each
// structural problem class.
func TestValidate(t *testing.T) {
	require.NoError(t, Default("/work/proj").Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty project dir", func(c *Config) { c.ProjectDir = "" }},
		{"empty env dir name", func(c *Config) { c.EnvDirName = "" }},
		{"env dir with separator", func(c *Config) { c.EnvDirName = "envs/main" }},
		{"env dir dot-dot", func(c *Config) { c.EnvDirName = ".." }},
		{"empty manifest", func(c *Config) { c.ManifestPath = "" }},
		{"absolute manifest", func(c *Config) { c.ManifestPath = "/etc/requirements.txt" }},
		{"absolute fallback", func(c *Config) { c.ManifestFallbackPath = "/etc/requirement.txt" }},
		{"empty entry point", func(c *Config) { c.EntryPoint = "" }},
		{"absolute entry point", func(c *Config) { c.EntryPoint = "/srv/app/main.py" }},
		{"absolute install log", func(c *Config) { c.InstallLogPath = "/var/log/install.log" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("/work/proj")
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
