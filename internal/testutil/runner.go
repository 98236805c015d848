// Package testutil provides the recording fake Runner used by the step
// package and engine tests.
//
// The fake answers LookPath from a name→path map and Run from a list of
// programmed responses matched against the command line, recording every
// call so tests can assert on exactly which subprocesses would have been
// spawned and in what order. Unscripted commands succeed with empty
// output, so a test only programs the commands it cares about.
package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/shinji-kodama/pybootstrap/internal/execx"
)

// FakeResponse programs the Result for Run calls whose command line
// contains Substring. Responses are consulted in order; first match wins.
type FakeResponse struct {
	// Substring is matched against the full command line
	// ("apt-get install -y python3.10").
	Substring string

	// ExitCode is the exit status the fake command reports.
	ExitCode int

	// Output is the captured combined output the fake command produces.
	Output string

	// Err is the spawn error, for simulating a command that cannot start.
	Err error
}

// FakeRunner is an execx.Runner that records calls and replays programmed
// responses instead of spawning processes.
type FakeRunner struct {
	// Executables maps command names LookPath resolves to their paths.
	// Names absent from the map are reported as not found.
	Executables map[string]string

	// Responses are matched in order against each Run call.
	Responses []FakeResponse

	// Calls records every Run invocation, in order.
	Calls []execx.CommandSpec

	// LookPathCalls records every LookPath invocation, in order.
	LookPathCalls []string

	// OnRun, when set, runs for every Run call after recording. Tests
	// use it to create the filesystem side effects a real command would
	// have (e.g. the directory `python -m venv` produces).
	OnRun func(spec execx.CommandSpec)
}

var _ execx.Runner = (*FakeRunner)(nil)

// Run records the spec and returns the first matching programmed
// response, or a zero-exit empty Result when nothing matches.
func (f *FakeRunner) Run(_ context.Context, spec execx.CommandSpec) execx.Result {
	f.Calls = append(f.Calls, spec)
	if f.OnRun != nil {
		f.OnRun(spec)
	}

	line := commandLine(spec)
	for _, resp := range f.Responses {
		if strings.Contains(line, resp.Substring) {
			return execx.Result{
				Command:  spec.Command,
				Args:     spec.Args,
				ExitCode: resp.ExitCode,
				Output:   resp.Output,
				Err:      resp.Err,
			}
		}
	}

	return execx.Result{Command: spec.Command, Args: spec.Args}
}

// LookPath records the name and resolves it from Executables.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.LookPathCalls = append(f.LookPathCalls, name)
	if path, ok := f.Executables[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("executable %q not found in fake PATH", name)
}

// CommandLines returns the recorded Run calls as command-line strings,
// convenient for sequence assertions.
func (f *FakeRunner) CommandLines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, spec := range f.Calls {
		lines = append(lines, commandLine(spec))
	}
	return lines
}

func commandLine(spec execx.CommandSpec) string {
	if len(spec.Args) == 0 {
		return spec.Command
	}
	return spec.Command + " " + strings.Join(spec.Args, " ")
}
