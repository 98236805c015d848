// Package venv creates and inspects the isolated virtual environment
// directory that holds the bootstrap's dedicated interpreter copy and
// installed packages.
//
// Creation is idempotent at the Ensure level: an existing directory
// short-circuits before any subprocess is spawned, so repeated runs are
// safe and cheap. Creation failure is fatal by contract and surfaces as
// a CLIError with ExitEnvCreateFailed.
package venv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/pybootstrap/internal/execx"
	"github.com/shinji-kodama/pybootstrap/internal/model"
)

// Builder creates virtual environments through an interpreter's venv
// module.
type Builder struct {
	runner execx.Runner
}

// NewBuilder creates a Builder using the given runner.
func NewBuilder(runner execx.Runner) *Builder {
	return &Builder{runner: runner}
}

// Exists reports whether dir is an existing directory. A plain file at
// the path counts as absent: venv creation would fail against it, and
// that failure is the clearer diagnostic.
func (b *Builder) Exists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// Ensure makes sure the environment directory exists, creating it with
// the given interpreter when absent. Returns whether a creation actually
// happened.
//
// The existence check runs first so that an already-provisioned
// environment costs one os.Stat and zero subprocesses.
func (b *Builder) Ensure(ctx context.Context, interpreter, dir string) (bool, error) {
	if b.Exists(dir) {
		return false, nil
	}
	if err := b.Create(ctx, interpreter, dir); err != nil {
		return false, err
	}
	return true, nil
}

// Create runs `<interpreter> -m venv <dir>` and waits for it.
//
// Any failure, whether the interpreter refusing to start or the venv
// module exiting non-zero, is wrapped in a CLIError with ExitEnvCreateFailed,
// including the captured subprocess output for diagnosis. A partially
// created directory is left in place for a human to inspect.
func (b *Builder) Create(ctx context.Context, interpreter, dir string) error {
	res := b.runner.Run(ctx, execx.CommandSpec{
		Command: interpreter,
		Args:    []string{"-m", "venv", dir},
	})
	if !res.Ok() {
		message := fmt.Sprintf("failed to create virtual environment at %s", dir)
		if detail := strings.TrimSpace(res.Output); detail != "" {
			message = fmt.Sprintf("%s: %s", message, detail)
		}
		return model.WrapCLIError(model.ExitEnvCreateFailed, message, res.Err)
	}
	return nil
}

// InterpreterPath returns the environment's own interpreter location:
// bin/python on unix families, Scripts\python.exe on windows. The family
// is a parameter rather than runtime.GOOS so every branch is testable on
// any host.
func InterpreterPath(dir string, family model.OSFamily) string {
	if family == model.OSWindows {
		return filepath.Join(dir, "Scripts", "python.exe")
	}
	return filepath.Join(dir, "bin", "python")
}
