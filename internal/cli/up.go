// Package cli — up.go implements the "pybootstrap up" command.
//
// The up command is the primary user-facing operation. It runs the full
// bootstrap sequence for a project directory:
//  1. Load project configuration (compiled defaults plus optional file)
//  2. Locate a Python interpreter matching the target version
//  3. Dispatch the platform package manager when none is found
//  4. Create the virtual environment unless it already exists
//  5. Resolve the requirements manifest, copying the fallback if needed
//  6. Upgrade packaging tooling and install the manifest
//  7. Launch the application entry point (unless --no-launch)
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/pybootstrap/internal/bootstrap"
	"github.com/shinji-kodama/pybootstrap/internal/config"
	"github.com/shinji-kodama/pybootstrap/internal/execx"
)

// upFlags holds the flag values for the up command.
// These are bound to cobra flags in NewUpCommand.
type upFlags struct {
	noLaunch bool // --no-launch: prepare everything but skip the entry point
}

// NewUpCommand creates the "up" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewUpCommand() *cobra.Command {
	flags := &upFlags{}

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Bootstrap the project and launch its entry point",
		Long: `Bootstrap a Python project from a bare checkout and launch it.

The command automatically:
  - Locates a Python interpreter matching the configured target version
  - Installs the interpreter via the platform package manager when missing
  - Creates the project's virtual environment if it does not exist
  - Installs dependencies from the requirements manifest
  - Launches the application entry point with inherited stdio

Examples:
  pybootstrap up
  pybootstrap up --dir ~/src/myservice
  pybootstrap up --no-launch
  pybootstrap up --json --no-launch`,

		// No positional arguments; the project is selected with --dir.
		Args: cobra.NoArgs,

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUp(cmd.Context(), flags)
		},
	}

	// Register command-specific flags.
	cmd.Flags().BoolVar(&flags.noLaunch, "no-launch", false, "Prepare the environment but don't launch the entry point")

	return cmd
}

// runUp is the main orchestration function for the up command.
// The step sequence itself lives in the bootstrap engine; this function
// wires configuration, logging, and output formatting around it.
func runUp(ctx context.Context, flags *upFlags) error {
	// Step 1: Load the project configuration.
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	VerboseLog("Project directory: %s", cfg.ProjectDir)
	VerboseLog("Target version: Python %s", cfg.TargetVersion)

	// Step 2: Configure install logging. The engine redirects output to
	// the project's install log; verbose mode also lowers the threshold.
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	// Step 3: Run the bootstrap engine against the real system runner.
	engine := bootstrap.NewEngine(cfg, execx.NewSystemRunner())
	engine.SetProgress(VerboseLog)

	outcome, err := engine.Run(ctx, bootstrap.Options{NoLaunch: flags.noLaunch})
	if err != nil {
		return err
	}

	// Step 4: Output results.
	printUpResult(cfg, outcome)
	return nil
}

// printUpResult reports the completed run. After a foreground launch the
// application's own output has already gone to the terminal, so text mode
// stays quiet unless the run stopped before launching.
func printUpResult(cfg config.Config, outcome *bootstrap.Outcome) {
	if IsJSONOutput() {
		printUpResultJSON(cfg, outcome)
		return
	}
	if outcome.Launched {
		return
	}
	printUpResultText(cfg, outcome)
}

// printUpResultJSON outputs the run summary as structured JSON.
func printUpResultJSON(cfg config.Config, outcome *bootstrap.Outcome) {
	type resultJSON struct {
		RunID            string `json:"runId"`
		ProjectDir       string `json:"projectDir"`
		TargetVersion    string `json:"targetVersion"`
		Interpreter      string `json:"interpreter"`
		InstallAttempted bool   `json:"installAttempted"`
		EnvDir           string `json:"envDir"`
		EnvCreated       bool   `json:"envCreated"`
		Manifest         string `json:"manifest"`
		ManifestCopied   bool   `json:"manifestCopied"`
		Launched         bool   `json:"launched"`
		Duration         string `json:"duration"`
	}

	result := resultJSON{
		RunID:            outcome.RunID,
		ProjectDir:       cfg.ProjectDir,
		TargetVersion:    cfg.TargetVersion.String(),
		Interpreter:      outcome.InterpreterPath,
		InstallAttempted: outcome.InstallAttempted,
		EnvDir:           outcome.EnvDir,
		EnvCreated:       outcome.EnvCreated,
		Manifest:         outcome.ManifestPath,
		ManifestCopied:   outcome.ManifestCopied,
		Launched:         outcome.Launched,
		Duration:         outcome.Duration.String(),
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printUpResultText outputs the run summary as human-readable text.
func printUpResultText(cfg config.Config, outcome *bootstrap.Outcome) {
	fmt.Printf("Bootstrap complete for %s\n", cfg.ProjectDir)
	fmt.Printf("  Interpreter:  %s\n", outcome.InterpreterPath)

	envState := "reused"
	if outcome.EnvCreated {
		envState = "created"
	}
	fmt.Printf("  Environment:  %s (%s)\n", outcome.EnvDir, envState)

	manifest := outcome.ManifestPath
	if outcome.ManifestCopied {
		manifest += " (copied from fallback)"
	}
	fmt.Printf("  Manifest:     %s\n", manifest)
	fmt.Printf("  Launch:       skipped (--no-launch)\n")
}
