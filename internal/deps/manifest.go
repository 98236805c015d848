// Package deps resolves the requirements manifest and installs it into
// the virtual environment with pip.
//
// Manifest resolution has a primary path and a flat-file fallback: when
// only the fallback exists it is copied byte-for-byte into the primary
// location (creating the parent directory), so the canonical path is
// populated for every later run. Neither existing is fatal with
// ExitManifestNotFound, and in that case no install subprocess runs.
package deps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/pybootstrap/internal/config"
	"github.com/shinji-kodama/pybootstrap/internal/model"
)

// ResolveManifest locates the requirements manifest for cfg.
//
// The probe order:
//  1. The primary path (cfg.Manifest()), used as-is when present.
//  2. The fallback flat file (cfg.ManifestFallback()), copied into the
//     primary location, which is returned.
//
// Returns the usable manifest path and whether a fallback copy happened.
// When neither file exists the error is a CLIError with
// ExitManifestNotFound naming both probed paths.
func ResolveManifest(cfg config.Config) (string, bool, error) {
	primary := cfg.Manifest()
	fallback := cfg.ManifestFallback()

	if fileExists(primary) {
		return primary, false, nil
	}

	if fileExists(fallback) {
		if err := copyManifest(fallback, primary); err != nil {
			return "", false, model.WrapCLIError(
				model.ExitGeneralError,
				fmt.Sprintf("failed to copy fallback manifest %s to %s", fallback, primary),
				err,
			)
		}
		return primary, true, nil
	}

	return "", false, model.NewCLIError(
		model.ExitManifestNotFound,
		fmt.Sprintf("requirements manifest not found: %s (also tried fallback %s)", primary, fallback),
	)
}

// fileExists reports whether path is an existing regular file.
// Directories do not count: a directory at the manifest path would make
// pip fail with a far less useful message.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// copyManifest copies the fallback manifest into the primary location,
// creating the primary's parent directory tree if needed. The copy
// preserves content exactly; the fallback file itself is left in place.
func copyManifest(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}

	// MkdirAll is a no-op when the directory already exists.
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}

	return nil
}
