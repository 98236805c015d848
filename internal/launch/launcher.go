// Package launch runs the downstream application entry point with the
// virtual environment's interpreter.
//
// The launcher owns the last step of the bootstrap and the only one with
// inherited stdio: the application gets the terminal, nothing is
// captured. A missing entry point and a non-zero application exit are
// both fatal, with distinct exit codes so scripts can tell a broken
// project layout from a failing application.
package launch

import (
	"context"
	"fmt"
	"os"

	"github.com/shinji-kodama/pybootstrap/internal/execx"
	"github.com/shinji-kodama/pybootstrap/internal/model"
)

// Launcher invokes the downstream application through a runner.
type Launcher struct {
	runner execx.Runner
}

// NewLauncher creates a Launcher using the given runner.
func NewLauncher(runner execx.Runner) *Launcher {
	return &Launcher{runner: runner}
}

// Run executes `<envInterpreter> <entryPoint>` with dir as the working
// directory and the parent's standard streams, blocking until the
// application exits.
//
// Failure modes:
//   - entry point missing → CLIError with ExitEntryPointNotFound,
//     before any subprocess is spawned
//   - interpreter fails to start → CLIError with ExitAppFailed wrapping
//     the spawn error
//   - application exits non-zero → CLIError with ExitAppFailed carrying
//     the application's own exit code in the message
func (l *Launcher) Run(ctx context.Context, envInterpreter, entryPoint, dir string) error {
	if _, err := os.Stat(entryPoint); err != nil {
		if os.IsNotExist(err) {
			return model.NewCLIError(
				model.ExitEntryPointNotFound,
				fmt.Sprintf("entry point not found: %s", entryPoint),
			)
		}
		return model.WrapCLIError(
			model.ExitEntryPointNotFound,
			fmt.Sprintf("entry point not accessible: %s", entryPoint),
			err,
		)
	}

	res := l.runner.Run(ctx, execx.CommandSpec{
		Command:      envInterpreter,
		Args:         []string{entryPoint},
		Dir:          dir,
		InheritStdio: true,
	})
	if res.Err != nil {
		return model.WrapCLIError(
			model.ExitAppFailed,
			fmt.Sprintf("failed to launch %s", entryPoint),
			res.Err,
		)
	}
	if res.ExitCode != 0 {
		return model.NewCLIError(
			model.ExitAppFailed,
			fmt.Sprintf("application %s exited with code %d", entryPoint, res.ExitCode),
		)
	}
	return nil
}
