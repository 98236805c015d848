package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/shinji-kodama/pybootstrap/internal/config"
	"github.com/shinji-kodama/pybootstrap/internal/deps"
	"github.com/shinji-kodama/pybootstrap/internal/execx"
	"github.com/shinji-kodama/pybootstrap/internal/interp"
	"github.com/shinji-kodama/pybootstrap/internal/launch"
	"github.com/shinji-kodama/pybootstrap/internal/model"
	"github.com/shinji-kodama/pybootstrap/internal/venv"
)

// Options adjusts a single bootstrap run.
type Options struct {
	// NoLaunch stops the sequence after dependency installation,
	// leaving the entry point unlaunched.
	NoLaunch bool
}

// Outcome records what a bootstrap run did. It is populated step by step,
// so it remains meaningful when Run returns an error: the zero fields tell
// you which steps never ran.
type Outcome struct {
	// RunID uniquely identifies this run in logs and in the receipt.
	RunID string

	// InterpreterPath is the PATH interpreter that matched the target version.
	InterpreterPath string

	// InstallAttempted reports whether a package-manager install was dispatched.
	InstallAttempted bool

	// EnvDir is the absolute path of the virtual environment directory.
	EnvDir string

	// EnvCreated is true when this run created the environment, false when
	// the directory already existed and was reused.
	EnvCreated bool

	// ManifestPath is the resolved requirements manifest path.
	ManifestPath string

	// ManifestCopied reports whether the fallback manifest was copied into
	// the primary location.
	ManifestCopied bool

	// Launched reports whether the entry point was started.
	Launched bool

	// Duration is the wall-clock time of the run, set even on failure.
	Duration time.Duration
}

// Engine drives the bootstrap sequence for one project directory.
// Construct with NewEngine; the zero value is not usable.
type Engine struct {
	cfg      config.Config
	runner   execx.Runner
	osFamily model.OSFamily
	progress func(format string, args ...interface{})
}

// NewEngine returns an Engine that bootstraps the project described by cfg,
// spawning subprocesses through runner.
func NewEngine(cfg config.Config, runner execx.Runner) *Engine {
	return &Engine{
		cfg:      cfg,
		runner:   runner,
		osFamily: model.DetectOSFamily(runtime.GOOS),
		progress: func(string, ...interface{}) {},
	}
}

// SetOSFamily overrides the detected operating system family. The family
// selects the installer branch and the interpreter layout inside the
// environment directory.
func (e *Engine) SetOSFamily(family model.OSFamily) {
	e.osFamily = family
}

// SetProgress installs a callback for human-readable step progress.
// The CLI wires this to its verbose logger.
func (e *Engine) SetProgress(fn func(format string, args ...interface{})) {
	if fn == nil {
		return
	}
	e.progress = fn
}

// Run executes the bootstrap sequence: locate (and if needed install) the
// target interpreter, ensure the virtual environment, install dependencies
// from the requirements manifest, and launch the entry point. The returned
// Outcome is valid even when err is non-nil and reports how far the run got.
func (e *Engine) Run(ctx context.Context, opts Options) (*Outcome, error) {
	started := time.Now()
	outcome := &Outcome{
		RunID:  uuid.New().String(),
		EnvDir: e.cfg.EnvDir(),
	}
	defer func() { outcome.Duration = time.Since(started) }()

	// Step 0: Point the install log at <project>/.pybootstrap/install.log.
	// A log failure degrades to stderr and never blocks the run.
	if logFile := e.openInstallLog(); logFile != nil {
		defer func() { _ = logFile.Close() }()
	}
	log.WithFields(log.Fields{
		"run":     outcome.RunID,
		"project": e.cfg.ProjectDir,
		"target":  e.cfg.TargetVersion.String(),
	}).Info("bootstrap run starting")

	// Step 1: Locate a matching interpreter on PATH.
	locator := interp.NewLocator(e.runner)
	e.progress("Locating Python %s on PATH...", e.cfg.TargetVersion)
	interpreterPath, found := locator.Locate(ctx, e.cfg.TargetVersion)

	// Step 2: Dispatch the platform installer when the interpreter is
	// missing. At most one installer runs per platform; unrecognized
	// platforms go straight to the failure path without spawning anything.
	if !found {
		if desc, ok := interp.DescriptorFor(e.osFamily); ok {
			e.progress("Python %s not found, attempting install via %s...", e.cfg.TargetVersion, desc.Tool)
			installer := interp.NewInstaller(e.runner)
			res := installer.Install(ctx, desc, e.cfg.TargetVersion)
			outcome.InstallAttempted = true
			logResult("interpreter install", res)

			// Step 3: Locate again after the install attempt.
			interpreterPath, found = locator.Locate(ctx, e.cfg.TargetVersion)
		} else {
			log.WithField("os", e.osFamily.String()).Warn("no interpreter installer for this platform")
		}

		if !found {
			names := strings.Join(interp.CandidateNames(e.cfg.TargetVersion), ", ")
			return outcome, model.NewCLIError(model.ExitInterpreterNotFound,
				fmt.Sprintf("Python %s not found on PATH (tried %s)", e.cfg.TargetVersion, names))
		}
	}
	outcome.InterpreterPath = interpreterPath
	e.progress("Using interpreter: %s", interpreterPath)
	log.WithField("interpreter", interpreterPath).Info("interpreter located")

	// Step 4: Ensure the virtual environment directory. An existing
	// directory is reused without touching the interpreter.
	builder := venv.NewBuilder(e.runner)
	created, err := builder.Ensure(ctx, interpreterPath, e.cfg.EnvDir())
	if err != nil {
		log.WithError(err).Error("virtual environment creation failed")
		return outcome, err
	}
	outcome.EnvCreated = created
	if created {
		e.progress("Created virtual environment: %s", e.cfg.EnvDir())
		log.WithField("dir", e.cfg.EnvDir()).Info("virtual environment created")
	} else {
		e.progress("Reusing virtual environment: %s", e.cfg.EnvDir())
	}

	// Step 5: Resolve the requirements manifest, copying the fallback
	// flat file into the primary location when only it exists.
	manifest, copied, err := deps.ResolveManifest(e.cfg)
	if err != nil {
		log.WithError(err).Error("manifest resolution failed")
		return outcome, err
	}
	outcome.ManifestPath = manifest
	outcome.ManifestCopied = copied
	if copied {
		e.progress("Copied fallback manifest to %s", manifest)
		log.WithFields(log.Fields{"from": e.cfg.ManifestFallback(), "to": manifest}).Info("fallback manifest copied")
	}

	// Step 6: Upgrade packaging tooling, then install the manifest, both
	// through the environment's own interpreter.
	envInterpreter := venv.InterpreterPath(e.cfg.EnvDir(), e.osFamily)
	depsInstaller := deps.NewInstaller(e.runner, e.cfg.InstallLog())

	e.progress("Upgrading pip, setuptools and wheel...")
	res, err := depsInstaller.UpgradeTooling(ctx, envInterpreter)
	logResult("tooling upgrade", res)
	if err != nil {
		return outcome, err
	}

	e.progress("Installing dependencies from %s...", manifest)
	res, err = depsInstaller.InstallManifest(ctx, envInterpreter, manifest)
	logResult("dependency install", res)
	if err != nil {
		return outcome, err
	}

	// Step 7: Record the run receipt inside the environment directory.
	e.writeReceipt(outcome)

	// Step 8: Launch the entry point with inherited stdio, unless the
	// caller asked for setup only.
	if !opts.NoLaunch {
		e.progress("Launching %s...", e.cfg.EntryPoint)
		launcher := launch.NewLauncher(e.runner)
		if launchErr := launcher.Run(ctx, envInterpreter, e.cfg.EntryPointPath(), e.cfg.ProjectDir); launchErr != nil {
			log.WithError(launchErr).Error("entry point launch failed")
			return outcome, launchErr
		}
		outcome.Launched = true
	}

	log.WithFields(log.Fields{
		"run":      outcome.RunID,
		"duration": time.Since(started).String(),
	}).Info("bootstrap run complete")
	return outcome, nil
}

// openInstallLog redirects the logrus singleton to the install log file,
// creating the log directory on first use. On failure the logger falls
// back to stderr so the run can proceed.
func (e *Engine) openInstallLog() *os.File {
	logPath := e.cfg.InstallLog()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		log.SetOutput(os.Stderr)
		log.WithError(err).Warn("install log directory unavailable, logging to stderr")
		return nil
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.WithError(err).Warn("install log unavailable, logging to stderr")
		return nil
	}
	log.SetOutput(f)
	return f
}

// logResult records a subprocess result in the install log, including the
// captured output so a failed pip run leaves its diagnostics behind.
func logResult(step string, res execx.Result) {
	entry := log.WithFields(log.Fields{
		"step":    step,
		"command": res.CommandLine(),
		"exit":    res.ExitCode,
	})
	switch {
	case res.Err != nil:
		entry.WithError(res.Err).Error("command could not be started")
	case res.ExitCode != 0:
		entry.Error("command exited nonzero")
	default:
		entry.Info("command completed")
	}
	if out := strings.TrimSpace(res.Output); out != "" {
		log.WithField("step", step).Info(out)
	}
}

// writeReceipt records the run in the environment directory, preserving
// the original creation time across reruns. Receipt problems are logged,
// not fatal: the environment is already usable at this point.
func (e *Engine) writeReceipt(outcome *Outcome) {
	now := time.Now().UTC()
	receipt := venv.Receipt{
		RunID:         outcome.RunID,
		TargetVersion: e.cfg.TargetVersion.String(),
		Interpreter:   outcome.InterpreterPath,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if prev, err := venv.ReadReceipt(e.cfg.EnvDir()); err == nil && !prev.CreatedAt.IsZero() {
		receipt.CreatedAt = prev.CreatedAt
	}
	if err := venv.WriteReceipt(e.cfg.EnvDir(), receipt); err != nil {
		log.WithError(err).Warn("failed to write environment receipt")
	}
}
