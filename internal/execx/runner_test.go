package execx

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireShell skips the test when no POSIX shell is available, which is
// the case on plain Windows runners.
func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skipf("sh not available: %v", err)
	}
}

// --- SystemRunner.Run tests ---

// TestSystemRunnerRun_CapturesCombinedOutput verifies that stdout and
// stderr are captured into a single Output stream, in order.
func TestSystemRunnerRun_CapturesCombinedOutput(t *testing.T) {
	requireShell(t)
	runner := NewSystemRunner()

	res := runner.Run(context.Background(), CommandSpec{
		Command: "sh",
		Args:    []string{"-c", "echo to-stdout; echo to-stderr 1>&2"},
	})

	require.True(t, res.Ok(), "shell command should succeed: %v", res.Err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Output, "to-stdout")
	assert.Contains(t, res.Output, "to-stderr")
}

// TestSystemRunnerRun_NonZeroExit verifies the failure-channel contract:
// a command that ran but exited non-zero reports its exit code and no
// spawn error.
func TestSystemRunnerRun_NonZeroExit(t *testing.T) {
	requireShell(t)
	runner := NewSystemRunner()

	res := runner.Run(context.Background(), CommandSpec{
		Command: "sh",
		Args:    []string{"-c", "exit 3"},
	})

	assert.Equal(t, 3, res.ExitCode)
	assert.NoError(t, res.Err, "a non-zero exit is not a spawn error")
	assert.False(t, res.Ok())
}

// TestSystemRunnerRun_SpawnError verifies that a command that cannot be
// started at all reports through Err with ExitCode -1.
func TestSystemRunnerRun_SpawnError(t *testing.T) {
	runner := NewSystemRunner()

	res := runner.Run(context.Background(), CommandSpec{
		Command: "definitely-not-a-real-command-pybootstrap",
	})

	assert.Error(t, res.Err)
	assert.Equal(t, -1, res.ExitCode)
	assert.False(t, res.Ok())
}

// TestSystemRunnerRun_WorkingDirectory verifies that Dir changes the
// command's working directory.
func TestSystemRunnerRun_WorkingDirectory(t *testing.T) {
	requireShell(t)
	runner := NewSystemRunner()

	dir := t.TempDir()
	marker := filepath.Join(dir, "marker.txt")
	require.NoError(t, os.WriteFile(marker, []byte("here\n"), 0644))

	res := runner.Run(context.Background(), CommandSpec{
		Command: "sh",
		Args:    []string{"-c", "ls"},
		Dir:     dir,
	})

	require.True(t, res.Ok())
	assert.Contains(t, res.Output, "marker.txt")
}

// TestSystemRunnerRun_ExtraEnv verifies that Env entries are appended to
// the inherited environment.
func TestSystemRunnerRun_ExtraEnv(t *testing.T) {
	requireShell(t)
	runner := NewSystemRunner()

	res := runner.Run(context.Background(), CommandSpec{
		Command: "sh",
		Args:    []string{"-c", "echo $PYBOOTSTRAP_TEST_VALUE"},
		Env:     []string{"PYBOOTSTRAP_TEST_VALUE=wired-through"},
	})

	require.True(t, res.Ok())
	assert.Contains(t, res.Output, "wired-through")
}

// --- LookPath tests ---

// TestSystemRunnerLookPath verifies PATH resolution for a present and an
// absent command name.
func TestSystemRunnerLookPath(t *testing.T) {
	requireShell(t)
	runner := NewSystemRunner()

	path, err := runner.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = runner.LookPath("definitely-not-a-real-command-pybootstrap")
	assert.Error(t, err)
}

// --- Result tests ---

// TestResultOk verifies the two failure channels both negate Ok.
func TestResultOk(t *testing.T) {
	assert.True(t, Result{}.Ok())
	assert.False(t, Result{ExitCode: 1}.Ok())
	assert.False(t, Result{Err: os.ErrNotExist}.Ok())
}

// TestResultCommandLine verifies the rendering used in logs and
// diagnostics.
func TestResultCommandLine(t *testing.T) {
	assert.Equal(t, "pip", Result{Command: "pip"}.CommandLine())
	assert.Equal(t, "python -m venv .venv",
		Result{Command: "python", Args: []string{"-m", "venv", ".venv"}}.CommandLine())
}
