// receipt.go persists a small YAML receipt into the environment directory
// after a successful bootstrap.
//
// The receipt is the only record of what an environment was provisioned
// for. The status command reads it to detect a stale environment (one
// provisioned for a different target version than the one now
// configured), and repeated up runs carry the original creation time
// forward. A missing or damaged receipt downgrades reporting, never the
// bootstrap itself: writes are logged-not-fatal and reads surface
// os.ErrNotExist for callers to branch on.
package venv

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/pybootstrap/internal/model"
)

// ReceiptFileName is the receipt file name inside the environment
// directory.
const ReceiptFileName = "pybootstrap.yml"

// Receipt records what the last successful bootstrap provisioned.
type Receipt struct {
	// RunID is the UUID of the bootstrap run that wrote this receipt.
	RunID string `yaml:"runId"`

	// TargetVersion is the dotted MAJOR.MINOR the environment was
	// provisioned for.
	TargetVersion string `yaml:"targetVersion"`

	// Interpreter is the host interpreter path the environment was
	// created from.
	Interpreter string `yaml:"interpreter"`

	// CreatedAt is when the environment directory was first created.
	CreatedAt time.Time `yaml:"createdAt"`

	// UpdatedAt is when the receipt was last rewritten.
	UpdatedAt time.Time `yaml:"updatedAt"`
}

// MatchesTarget reports whether the receipt was written for the given
// target version. An unparseable recorded version counts as a mismatch.
func (r Receipt) MatchesTarget(target model.Version) bool {
	v, err := model.ParseVersion(r.TargetVersion)
	if err != nil {
		return false
	}
	return v == target
}

// ReceiptPath returns the receipt location for an environment directory.
func ReceiptPath(dir string) string {
	return filepath.Join(dir, ReceiptFileName)
}

// WriteReceipt serializes the receipt to YAML with a header comment and
// writes it into the environment directory.
func WriteReceipt(dir string, r Receipt) error {
	yamlBytes, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("failed to serialize receipt: %w", err)
	}

	// Header comment warning against manual edits; the file is rewritten
	// on every successful up run.
	header := "# Auto-generated by pybootstrap\n# DO NOT EDIT - this file is rewritten on each successful up\n"

	path := ReceiptPath(dir)
	if err := os.WriteFile(path, []byte(header+string(yamlBytes)), 0o644); err != nil {
		return fmt.Errorf("failed to write receipt to %s: %w", path, err)
	}
	return nil
}

// ReadReceipt loads the receipt from an environment directory. The read
// error is returned unwrapped so callers can distinguish a missing
// receipt (errors.Is(err, os.ErrNotExist)) from a damaged one.
func ReadReceipt(dir string) (Receipt, error) {
	path := ReceiptPath(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		return Receipt{}, err
	}

	var r Receipt
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Receipt{}, fmt.Errorf("failed to parse receipt at %s: %w", path, err)
	}
	return r, nil
}
