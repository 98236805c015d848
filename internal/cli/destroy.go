// Package cli — destroy.go implements the "pybootstrap destroy" command.
//
// The destroy command removes the project's virtual environment directory,
// including the receipt inside it. The project sources, the requirements
// manifest, and the install log are left untouched, so a subsequent
// "pybootstrap up" rebuilds from a clean slate.
//
// By default, the command prompts for confirmation before proceeding.
// The --force flag skips the confirmation prompt.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/pybootstrap/internal/execx"
	"github.com/shinji-kodama/pybootstrap/internal/model"
	"github.com/shinji-kodama/pybootstrap/internal/venv"
)

// destroyFlags holds the flag values for the destroy command.
type destroyFlags struct {
	// force skips the interactive confirmation prompt when true.
	force bool
}

// NewDestroyCommand creates the "destroy" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDestroyCommand() *cobra.Command {
	flags := &destroyFlags{}

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Remove the project's virtual environment",
		Long: `Remove the project's virtual environment directory.

Only the environment directory is removed. Project sources, the
requirements manifest, and the install log are preserved, so
"pybootstrap up" can rebuild the environment afterwards.

Unless --force is specified, the command prompts for confirmation.

Examples:
  pybootstrap destroy
  pybootstrap destroy --force
  pybootstrap destroy --dir ~/src/myservice`,

		// No positional arguments; the project is selected with --dir.
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDestroy(flags)
		},
	}

	// Register command-specific flags.
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Remove without confirmation")

	return cmd
}

// runDestroy is the main logic function for the destroy command.
// It locates the environment, optionally prompts for confirmation, and
// removes the directory tree.
func runDestroy(flags *destroyFlags) error {
	// Step 1: Load the project configuration.
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	// Step 2: Check there is an environment to remove. Destroying a clean
	// project is a no-op, not an error.
	builder := venv.NewBuilder(execx.NewSystemRunner())
	if !builder.Exists(cfg.EnvDir()) {
		printDestroyResult(cfg.EnvDir(), false)
		return nil
	}

	// Step 3: Prompt for confirmation unless --force is specified.
	if !flags.force {
		confirmed, promptErr := promptConfirmation(cfg.EnvDir())
		if promptErr != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to read user input", promptErr)
		}
		if !confirmed {
			return model.NewCLIError(model.ExitGeneralError, "operation cancelled by user")
		}
	}

	// Step 4: Remove the environment directory tree.
	VerboseLog("Removing virtual environment at %s...", cfg.EnvDir())
	if err := os.RemoveAll(cfg.EnvDir()); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to remove virtual environment at %s", cfg.EnvDir()), err)
	}

	// Step 5: Output the result.
	printDestroyResult(cfg.EnvDir(), true)
	return nil
}

// promptConfirmation asks the user to confirm the destroy operation.
// It reads a single line from stdin and checks for "y" or "yes".
// Returns true if the user confirmed, false otherwise.
func promptConfirmation(envDir string) (bool, error) {
	fmt.Printf("About to remove the virtual environment at %s\n", envDir)
	fmt.Print("\nContinue? [y/N] ")

	// Read a line from stdin. bufio.Scanner handles different line endings
	// across platforms (LF on Unix, CRLF on Windows).
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return answer == "y" || answer == "yes", nil
	}

	// If stdin is closed or an error occurred, treat it as "no".
	if err := scanner.Err(); err != nil {
		return false, err
	}

	return false, nil
}

// printDestroyResult outputs the destroy command result in text or JSON
// format. removed is false when there was no environment to begin with.
func printDestroyResult(envDir string, removed bool) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"action":  "destroyed",
			"envDir":  envDir,
			"removed": removed,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	if removed {
		fmt.Printf("Removed virtual environment at %s\n", envDir)
	} else {
		fmt.Printf("No virtual environment at %s, nothing to do\n", envDir)
	}
}
