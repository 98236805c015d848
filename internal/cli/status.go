// Package cli — status.go implements the "pybootstrap status" command.
//
// The status command inspects the four bootstrap components (interpreter,
// virtual environment, requirements manifest, entry point) without
// changing anything, and reports each as ready, missing, or stale.
// Stale means present but out of step: an environment built for a
// different Python version, or a manifest present only at the fallback
// location.
//
// Output is a text table with colorized states, or JSON with --json.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/pybootstrap/internal/config"
	"github.com/shinji-kodama/pybootstrap/internal/execx"
	"github.com/shinji-kodama/pybootstrap/internal/interp"
	"github.com/shinji-kodama/pybootstrap/internal/model"
	"github.com/shinji-kodama/pybootstrap/internal/venv"
)

// NewStatusCommand creates the "status" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report the bootstrap state of the project",
		Long: `Report the state of each bootstrap component without changing anything.

Each component is reported as:
  ready    present and matching the configuration
  stale    present but out of step (e.g. wrong Python version)
  missing  absent; "pybootstrap up" would create or install it

Examples:
  pybootstrap status
  pybootstrap status --dir ~/src/myservice
  pybootstrap status --json`,

		// No positional arguments; the project is selected with --dir.
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context())
		},
	}

	return cmd
}

// runStatus is the main logic function for the status command.
// It inspects each component and outputs the reports; inspection never
// fails the command, only configuration problems do.
func runStatus(ctx context.Context) error {
	// Step 1: Load the project configuration.
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	// Step 2: Inspect the components. The interpreter check runs the
	// candidate binaries' --version, everything else is filesystem-only.
	reports := statusReports(ctx, cfg, execx.NewSystemRunner())

	// Step 3: Output results in the appropriate format.
	printStatusResult(cfg, reports)
	return nil
}

// statusReports inspects each bootstrap component and returns one report
// per component, in display order.
func statusReports(ctx context.Context, cfg config.Config, runner execx.Runner) []model.ComponentReport {
	reports := make([]model.ComponentReport, 0, 4)

	// Interpreter: probe PATH the same way up does.
	locator := interp.NewLocator(runner)
	if path, found := locator.Locate(ctx, cfg.TargetVersion); found {
		reports = append(reports, model.ComponentReport{
			Name:   "interpreter",
			State:  model.StateReady,
			Detail: path,
		})
	} else {
		reports = append(reports, model.ComponentReport{
			Name:   "interpreter",
			State:  model.StateMissing,
			Detail: fmt.Sprintf("no Python %s on PATH", cfg.TargetVersion),
		})
	}

	// Environment: existence plus receipt agreement with the target.
	reports = append(reports, environmentReport(cfg, runner))

	// Manifest: primary location, fallback location, or neither.
	switch {
	case isRegularFile(cfg.Manifest()):
		reports = append(reports, model.ComponentReport{
			Name:   "manifest",
			State:  model.StateReady,
			Detail: cfg.ManifestPath,
		})
	case isRegularFile(cfg.ManifestFallback()):
		reports = append(reports, model.ComponentReport{
			Name:   "manifest",
			State:  model.StateStale,
			Detail: fmt.Sprintf("fallback only: %s", cfg.ManifestFallbackPath),
		})
	default:
		reports = append(reports, model.ComponentReport{
			Name:   "manifest",
			State:  model.StateMissing,
			Detail: fmt.Sprintf("%s or %s", cfg.ManifestPath, cfg.ManifestFallbackPath),
		})
	}

	// Entry point: plain existence check.
	if isRegularFile(cfg.EntryPointPath()) {
		reports = append(reports, model.ComponentReport{
			Name:   "entrypoint",
			State:  model.StateReady,
			Detail: cfg.EntryPoint,
		})
	} else {
		reports = append(reports, model.ComponentReport{
			Name:   "entrypoint",
			State:  model.StateMissing,
			Detail: cfg.EntryPoint,
		})
	}

	return reports
}

// environmentReport classifies the virtual environment directory.
// An existing environment whose receipt names a different Python version
// is reported as stale rather than ready.
func environmentReport(cfg config.Config, runner execx.Runner) model.ComponentReport {
	builder := venv.NewBuilder(runner)
	if !builder.Exists(cfg.EnvDir()) {
		return model.ComponentReport{
			Name:   "environment",
			State:  model.StateMissing,
			Detail: cfg.EnvDir(),
		}
	}

	receipt, err := venv.ReadReceipt(cfg.EnvDir())
	if err != nil {
		// No readable receipt: the directory exists but was not built by
		// this tool, or predates receipts. Treat it as usable.
		return model.ComponentReport{
			Name:   "environment",
			State:  model.StateReady,
			Detail: cfg.EnvDir(),
		}
	}

	if !receipt.MatchesTarget(cfg.TargetVersion) {
		return model.ComponentReport{
			Name:   "environment",
			State:  model.StateStale,
			Detail: fmt.Sprintf("built for Python %s, target is %s", receipt.TargetVersion, cfg.TargetVersion),
		}
	}

	return model.ComponentReport{
		Name:   "environment",
		State:  model.StateReady,
		Detail: fmt.Sprintf("%s (Python %s)", cfg.EnvDir(), receipt.TargetVersion),
	}
}

// isRegularFile reports whether path exists and is a regular file.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// allReady reports whether every component is in the ready state.
func allReady(reports []model.ComponentReport) bool {
	for _, r := range reports {
		if r.State != model.StateReady {
			return false
		}
	}
	return true
}

// printStatusResult outputs the component reports in text or JSON format,
// depending on the global --json flag.
func printStatusResult(cfg config.Config, reports []model.ComponentReport) {
	if IsJSONOutput() {
		printStatusResultJSON(cfg, reports)
	} else {
		printStatusResultText(cfg, reports)
	}
}

// printStatusResultJSON outputs the reports as structured JSON.
// The top-level "ready" field is the conjunction of all component states.
func printStatusResultJSON(cfg config.Config, reports []model.ComponentReport) {
	type resultJSON struct {
		Project       string                  `json:"project"`
		TargetVersion string                  `json:"targetVersion"`
		Components    []model.ComponentReport `json:"components"`
		Ready         bool                    `json:"ready"`
	}

	result := resultJSON{
		Project:       cfg.ProjectDir,
		TargetVersion: cfg.TargetVersion.String(),
		Components:    reports,
		Ready:         allReady(reports),
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printStatusResultText outputs the reports as a human-readable table
// with a colorized state column.
//
// The table format is:
//
//	COMPONENT     STATE    DETAIL
//	interpreter   ready    /usr/bin/python3.10
//	environment   missing  /home/user/proj/.venv
func printStatusResultText(cfg config.Config, reports []model.ComponentReport) {
	fmt.Printf("Project: %s\n", cfg.ProjectDir)
	fmt.Printf("Target:  Python %s\n", cfg.TargetVersion)
	fmt.Println()

	// Print header row.
	fmt.Printf("%-13s %-8s %s\n", "COMPONENT", "STATE", "DETAIL")

	profile := termenv.ColorProfile()
	for _, r := range reports {
		fmt.Printf("%-13s %s %s\n", r.Name, colorizeState(profile, r.State, 8), r.Detail)
	}

	fmt.Println()
	if allReady(reports) {
		fmt.Println("Ready: \"pybootstrap launch\" will start the application.")
	} else {
		fmt.Println("Run \"pybootstrap up\" to prepare this project.")
	}
}

// colorizeState renders a component state colored by severity. The text
// is padded to width before coloring so the ANSI escape sequences do not
// break column alignment.
func colorizeState(profile termenv.Profile, state model.ComponentState, width int) string {
	padded := fmt.Sprintf("%-*s", width, state.String())
	switch state {
	case model.StateReady:
		return termenv.String(padded).Foreground(profile.Color("#22c55e")).String()
	case model.StateStale:
		return termenv.String(padded).Foreground(profile.Color("#eab308")).String()
	default:
		return termenv.String(padded).Foreground(profile.Color("#ef4444")).String()
	}
}
