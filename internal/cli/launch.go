// Package cli — launch.go implements the "pybootstrap launch" command.
//
// The launch command starts the application entry point using an already
// bootstrapped environment, without re-checking interpreters or
// reinstalling dependencies. It refuses to run when the virtual
// environment is missing, pointing the user at "pybootstrap up" instead
// of failing deep inside the interpreter.
//
// The child process inherits stdin, stdout, and stderr, so interactive
// applications behave exactly as if started by hand.
package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/pybootstrap/internal/execx"
	"github.com/shinji-kodama/pybootstrap/internal/launch"
	"github.com/shinji-kodama/pybootstrap/internal/model"
	"github.com/shinji-kodama/pybootstrap/internal/venv"
)

// NewLaunchCommand creates the "launch" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewLaunchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Launch the entry point in the prepared environment",
		Long: `Launch the application entry point using the existing virtual environment.

The environment must have been prepared by a prior "pybootstrap up" run.
The entry point runs in the foreground with inherited stdio; its exit
status becomes this command's exit status.

Examples:
  pybootstrap launch
  pybootstrap launch --dir ~/src/myservice`,

		// No positional arguments; the project is selected with --dir.
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd.Context())
		},
	}

	return cmd
}

// runLaunch is the main logic function for the launch command.
// It verifies the environment exists, checks the receipt against the
// configured target, and starts the entry point.
func runLaunch(ctx context.Context) error {
	// Step 1: Load the project configuration.
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	// Step 2: Verify the environment has been built.
	builder := venv.NewBuilder(execx.NewSystemRunner())
	if !builder.Exists(cfg.EnvDir()) {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("no virtual environment at %s; run \"pybootstrap up\" first", cfg.EnvDir()))
	}
	VerboseLog("Using virtual environment: %s", cfg.EnvDir())

	// Step 3: Compare the receipt against the configured target.
	// A mismatch is a warning, not an error: the environment still works,
	// it just predates a target version change.
	if receipt, readErr := venv.ReadReceipt(cfg.EnvDir()); readErr == nil {
		if !receipt.MatchesTarget(cfg.TargetVersion) {
			VerboseLog("Warning: environment was built for Python %s, current target is %s",
				receipt.TargetVersion, cfg.TargetVersion)
		}
	}

	// Step 4: Launch the entry point with inherited stdio. On success the
	// application has already produced all the output there is; nothing
	// more is printed.
	envInterpreter := venv.InterpreterPath(cfg.EnvDir(), model.DetectOSFamily(runtime.GOOS))
	VerboseLog("Launching %s with %s", cfg.EntryPoint, envInterpreter)

	launcher := launch.NewLauncher(execx.NewSystemRunner())
	return launcher.Run(ctx, envInterpreter, cfg.EntryPointPath(), cfg.ProjectDir)
}
