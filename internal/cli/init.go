// Package cli — init.go implements the "pybootstrap init" command.
//
// The init command writes a starter configuration file populated with the
// compiled defaults, giving a project a file to edit instead of a format
// to remember. It refuses to overwrite an existing configuration.
package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/pybootstrap/internal/config"
	"github.com/shinji-kodama/pybootstrap/internal/model"
)

// NewInitCommand creates the "init" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a starter configuration file with the compiled defaults.

The file is created at .pybootstrap/pybootstrap.json inside the project
directory. Every field is optional; remove the ones you don't need to
override. JSONC comments are tolerated.

Examples:
  pybootstrap init
  pybootstrap init --dir ~/src/myservice`,

		// No positional arguments; the project is selected with --dir.
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit()
		},
	}

	return cmd
}

// runInit writes the starter file and reports where it went.
func runInit() error {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to resolve project directory %q", projectDir), err)
	}

	path, err := config.WriteStarterFile(abs)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write starter config", err)
	}

	printInitResult(path)
	return nil
}

// printInitResult outputs the init command result in text or JSON format.
func printInitResult(path string) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"action": "initialized",
			"config": path,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Wrote starter config to %s\n", path)
	fmt.Println("Edit it to change the target Python version, paths, or entry point.")
}
