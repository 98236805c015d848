package deps

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/pybootstrap/internal/model"
	"github.com/shinji-kodama/pybootstrap/internal/testutil"
)

const envPython = "/proj/.venv/bin/python"

// --- UpgradeTooling tests ---

// TestUpgradeTooling verifies the exact pip invocation through the
// environment's interpreter.
func TestUpgradeTooling(t *testing.T) {
	fake := &testutil.FakeRunner{}
	installer := NewInstaller(fake, "/proj/.pybootstrap/install.log")

	res, err := installer.UpgradeTooling(context.Background(), envPython)

	require.NoError(t, err)
	assert.True(t, res.Ok())
	require.Len(t, fake.Calls, 1)
	assert.Equal(t, envPython, fake.Calls[0].Command)
	assert.Equal(t, []string{"-m", "pip", "install", "--upgrade", "pip", "setuptools", "wheel"}, fake.Calls[0].Args)
}

// TestUpgradeTooling_FailureIsFatal verifies the fatal outcome pointing
// at the install log, with the Result still returned for logging.
func TestUpgradeTooling_FailureIsFatal(t *testing.T) {
	fake := &testutil.FakeRunner{
		Responses: []testutil.FakeResponse{
			{Substring: "install --upgrade", ExitCode: 1, Output: "ERROR: network unreachable\n"},
		},
	}
	installer := NewInstaller(fake, "/proj/.pybootstrap/install.log")

	res, err := installer.UpgradeTooling(context.Background(), envPython)

	require.Error(t, err)
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitDepsInstallFailed, cliErr.Code)
	assert.Contains(t, cliErr.Message, "/proj/.pybootstrap/install.log")
	assert.Equal(t, 1, res.ExitCode, "the Result comes back for logging even on failure")
	assert.Contains(t, res.Output, "network unreachable")
}

// --- InstallManifest tests ---

// TestInstallManifest verifies the exact pip invocation for a manifest.
func TestInstallManifest(t *testing.T) {
	fake := &testutil.FakeRunner{}
	installer := NewInstaller(fake, "/proj/.pybootstrap/install.log")

	res, err := installer.InstallManifest(context.Background(), envPython, "/proj/requirements.txt")

	require.NoError(t, err)
	assert.True(t, res.Ok())
	require.Len(t, fake.Calls, 1)
	assert.Equal(t, envPython, fake.Calls[0].Command)
	assert.Equal(t, []string{"-m", "pip", "install", "-r", "/proj/requirements.txt"}, fake.Calls[0].Args)
}

// TestInstallManifest_FailureIsFatal verifies the diagnostic names both
// the manifest and the install log.
func TestInstallManifest_FailureIsFatal(t *testing.T) {
	fake := &testutil.FakeRunner{
		Responses: []testutil.FakeResponse{
			{Substring: "install -r", ExitCode: 2, Output: "ERROR: No matching distribution\n"},
		},
	}
	installer := NewInstaller(fake, "/proj/.pybootstrap/install.log")

	res, err := installer.InstallManifest(context.Background(), envPython, "/proj/requirements.txt")

	require.Error(t, err)
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitDepsInstallFailed, cliErr.Code)
	assert.Contains(t, cliErr.Message, "/proj/requirements.txt")
	assert.Contains(t, cliErr.Message, "/proj/.pybootstrap/install.log")
	assert.Equal(t, 2, res.ExitCode)
}
