// Package execx runs the external commands the bootstrap orchestrates:
// interpreter version queries, OS package manager installs, virtual
// environment creation, pip invocations and the downstream application.
//
// Every invocation is described by a CommandSpec and yields a Result that
// carries the exit code and the captured combined output, so callers can
// branch on outcomes and surface diagnostics without relying on printed
// side effects. The Runner interface exists so step packages accept a
// recording fake in tests instead of spawning real processes.
package execx

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// CommandSpec describes a single external command invocation.
type CommandSpec struct {
	// Command is the program to run: a bare name resolved against PATH
	// or an absolute path (e.g. the environment's own interpreter).
	Command string

	// Args are the command arguments, excluding the program name.
	Args []string

	// Dir is the working directory for the command.
	// Empty means the calling process's working directory.
	Dir string

	// Env holds extra environment variables in KEY=VALUE form,
	// appended to the parent process environment.
	Env []string

	// InheritStdio wires the command directly to the parent's
	// stdin/stdout/stderr instead of capturing output. Used only by the
	// launcher, where the downstream application owns the terminal.
	InheritStdio bool
}

// Result is the outcome of one external command.
//
// The two failure channels are deliberately separate: ExitCode reports the
// process's own exit status, while Err reports spawn-level failures
// (command not found, permission denied). A command that ran and exited
// non-zero has Err == nil.
type Result struct {
	// Command is the program that was run.
	Command string

	// Args are the arguments it was run with.
	Args []string

	// ExitCode is the process exit status: 0 on success, -1 if the
	// process could not be started or was terminated by a signal.
	ExitCode int

	// Output is the combined stdout and stderr captured from the command.
	// Empty when the command ran with inherited stdio.
	Output string

	// Err is the spawn error, if the command could not be run at all.
	Err error
}

// Ok reports whether the command started and exited with status zero.
func (r Result) Ok() bool {
	return r.Err == nil && r.ExitCode == 0
}

// CommandLine returns the invocation as a single shell-style string,
// for log entries and diagnostics.
func (r Result) CommandLine() string {
	if len(r.Args) == 0 {
		return r.Command
	}
	return r.Command + " " + strings.Join(r.Args, " ")
}

// Runner executes external commands. The bootstrap engine and the step
// packages depend on this interface rather than os/exec directly.
type Runner interface {
	// Run executes the command described by spec and blocks until it
	// finishes. No timeout is imposed: a hanging external tool hangs the
	// bootstrap, which is the documented behavior.
	Run(ctx context.Context, spec CommandSpec) Result

	// LookPath resolves a command name against the executable search
	// path, returning the absolute path or an error.
	LookPath(name string) (string, error)
}

// SystemRunner is the production Runner backed by os/exec.
type SystemRunner struct{}

// NewSystemRunner creates a Runner that spawns real processes.
func NewSystemRunner() *SystemRunner {
	return &SystemRunner{}
}

// Run executes the command, capturing combined output unless the spec asks
// for inherited stdio.
func (r *SystemRunner) Run(ctx context.Context, spec CommandSpec) Result {
	// #nosec G204 -- specs are constructed by the step packages, not from user input
	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	cmd.Env = os.Environ()
	if len(spec.Env) > 0 {
		cmd.Env = append(cmd.Env, spec.Env...)
	}

	res := Result{Command: spec.Command, Args: spec.Args}

	var output strings.Builder
	if spec.InheritStdio {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &output
		cmd.Stderr = &output
	}

	err := cmd.Run()
	res.Output = output.String()
	if err == nil {
		return res
	}

	// A non-zero exit is an outcome, not a spawn error: report it via
	// ExitCode and leave Err empty so callers see one failure channel.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res
	}

	res.ExitCode = -1
	res.Err = err
	return res
}

// LookPath resolves name against PATH via exec.LookPath.
func (r *SystemRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
