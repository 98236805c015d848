// installer.go runs the two pip invocations of the bootstrap: the
// packaging-tooling upgrade and the manifest install. Both use the
// environment's own interpreter so packages land inside the virtual
// environment, and both are fatal on failure with a diagnostic pointing
// at the install log.
package deps

import (
	"context"
	"fmt"

	"github.com/shinji-kodama/pybootstrap/internal/execx"
	"github.com/shinji-kodama/pybootstrap/internal/model"
)

// toolingPackages are upgraded before the manifest install. Old pip
// versions routinely fail on current manifests, so the upgrade comes
// first unconditionally.
var toolingPackages = []string{"pip", "setuptools", "wheel"}

// Installer runs pip inside the virtual environment.
type Installer struct {
	runner  execx.Runner
	logPath string
}

// NewInstaller creates an Installer. logPath is the install log location
// named in failure diagnostics; the caller owns writing to it.
func NewInstaller(runner execx.Runner, logPath string) *Installer {
	return &Installer{runner: runner, logPath: logPath}
}

// UpgradeTooling runs `<envInterpreter> -m pip install --upgrade pip
// setuptools wheel`. The Result is returned even on failure so the
// caller can log the captured pip output; the error, when set, is a
// CLIError with ExitDepsInstallFailed.
func (i *Installer) UpgradeTooling(ctx context.Context, envInterpreter string) (execx.Result, error) {
	args := append([]string{"-m", "pip", "install", "--upgrade"}, toolingPackages...)
	res := i.runner.Run(ctx, execx.CommandSpec{Command: envInterpreter, Args: args})
	if !res.Ok() {
		return res, model.WrapCLIError(
			model.ExitDepsInstallFailed,
			fmt.Sprintf("failed to upgrade packaging tooling (see install log: %s)", i.logPath),
			res.Err,
		)
	}
	return res, nil
}

// InstallManifest runs `<envInterpreter> -m pip install -r <manifest>`.
// Same contract as UpgradeTooling: the Result always comes back for
// logging, the error is fatal with ExitDepsInstallFailed.
func (i *Installer) InstallManifest(ctx context.Context, envInterpreter, manifest string) (execx.Result, error) {
	res := i.runner.Run(ctx, execx.CommandSpec{
		Command: envInterpreter,
		Args:    []string{"-m", "pip", "install", "-r", manifest},
	})
	if !res.Ok() {
		return res, model.WrapCLIError(
			model.ExitDepsInstallFailed,
			fmt.Sprintf("failed to install requirements from %s (see install log: %s)", manifest, i.logPath),
			res.Err,
		)
	}
	return res, nil
}
