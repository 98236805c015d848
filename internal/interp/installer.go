// installer.go maps each supported OS family to its interpreter install
// command and dispatches the single best-effort attempt.
//
// The mapping is a closed declarative table rather than string dispatch
// at call sites: one descriptor per family, no retries, no alternate
// package managers within a family. An unrecognized family has no
// descriptor and therefore no command is ever run for it; the caller
// falls through to the overall interpreter-not-found outcome.
package interp

import (
	"context"

	"github.com/shinji-kodama/pybootstrap/internal/execx"
	"github.com/shinji-kodama/pybootstrap/internal/model"
)

// InstallerDescriptor declares the package manager invocation for one
// OS family.
type InstallerDescriptor struct {
	// Tool is the package manager executable name.
	Tool string

	// Args are the literal arguments preceding the package reference.
	Args []string

	// PackagePrefix is prepended to the dotted target version to form
	// the package reference (e.g. "python@" + "3.10" → "python@3.10").
	PackagePrefix string
}

// descriptors is the closed installer table. All three package managers
// accept the dotted MAJOR.MINOR in their package reference:
//
//	linux:   apt-get install -y python3.10
//	darwin:  brew install python@3.10
//	windows: winget install --exact --id Python.Python.3.10
var descriptors = map[model.OSFamily]InstallerDescriptor{
	model.OSLinux:   {Tool: "apt-get", Args: []string{"install", "-y"}, PackagePrefix: "python"},
	model.OSDarwin:  {Tool: "brew", Args: []string{"install"}, PackagePrefix: "python@"},
	model.OSWindows: {Tool: "winget", Args: []string{"install", "--exact", "--id"}, PackagePrefix: "Python.Python."},
}

// DescriptorFor returns the installer descriptor for the given family,
// or false when the family has none (OSUnknown or anything else outside
// the closed table).
func DescriptorFor(family model.OSFamily) (InstallerDescriptor, bool) {
	d, ok := descriptors[family]
	return d, ok
}

// CommandLine renders the full invocation for the target version:
// the tool name plus its arguments ending in the package reference.
func (d InstallerDescriptor) CommandLine(target model.Version) (string, []string) {
	args := make([]string, 0, len(d.Args)+1)
	args = append(args, d.Args...)
	args = append(args, d.PackagePrefix+target.String())
	return d.Tool, args
}

// Installer dispatches interpreter install attempts through a runner.
type Installer struct {
	runner execx.Runner
}

// NewInstaller creates an Installer using the given runner.
func NewInstaller(runner execx.Runner) *Installer {
	return &Installer{runner: runner}
}

// Install runs the descriptor's invocation for the target version and
// returns the raw Result. The attempt is best-effort by contract: the
// caller logs the result and re-runs the locator rather than treating a
// non-zero exit as fatal here.
func (i *Installer) Install(ctx context.Context, desc InstallerDescriptor, target model.Version) execx.Result {
	tool, args := desc.CommandLine(target)
	return i.runner.Run(ctx, execx.CommandSpec{Command: tool, Args: args})
}
