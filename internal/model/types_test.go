package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Version tests ---

// TestParseVersion verifies that well-formed MAJOR.MINOR strings parse into
// their field-wise representation and everything else is rejected.
func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{
			name:  "default target",
			input: "3.10",
			want:  Version{Major: 3, Minor: 10},
		},
		{
			name:  "single digit minor",
			input: "3.9",
			want:  Version{Major: 3, Minor: 9},
		},
		{
			name:  "three digit minor parses as its own version",
			input: "3.100",
			want:  Version{Major: 3, Minor: 100},
		},
		{
			name:  "surrounding whitespace tolerated",
			input: "  3.11  ",
			want:  Version{Major: 3, Minor: 11},
		},
		{
			name:    "full triple rejected",
			input:   "3.10.2",
			wantErr: true,
		},
		{
			name:    "bare major rejected",
			input:   "3",
			wantErr: true,
		},
		{
			name:    "v prefix rejected",
			input:   "v3.10",
			wantErr: true,
		},
		{
			name:    "comma separator rejected",
			input:   "3,10",
			wantErr: true,
		},
		{
			name:    "empty string rejected",
			input:   "",
			wantErr: true,
		},
		{
			name:    "non-numeric rejected",
			input:   "3.x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestVersionStrictness verifies the property the whole locator hinges on:
// 3.100 is a different version than 3.10, even though "3.10" is a prefix
// of "3.100" textually.
func TestVersionStrictness(t *testing.T) {
	target := Version{Major: 3, Minor: 10}

	longer, err := ParseVersion("3.100")
	require.NoError(t, err)

	assert.NotEqual(t, target, longer, "3.100 must not satisfy a 3.10 target")
}

// TestVersionString verifies the dotted and compact renderings.
func TestVersionString(t *testing.T) {
	v := Version{Major: 3, Minor: 10}

	assert.Equal(t, "3.10", v.String())
	assert.Equal(t, "310", v.Compact())

	// fmt verbs pick up the Stringer.
	assert.Equal(t, "Python 3.10", fmt.Sprintf("Python %s", v))
}

// --- OSFamily tests ---

// TestDetectOSFamily verifies the GOOS mapping, including the fall-through
// to OSUnknown for anything outside the three supported families.
func TestDetectOSFamily(t *testing.T) {
	tests := []struct {
		goos string
		want OSFamily
	}{
		{"linux", OSLinux},
		{"darwin", OSDarwin},
		{"windows", OSWindows},
		{"freebsd", OSUnknown},
		{"js", OSUnknown},
		{"", OSUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectOSFamily(tt.goos))
		})
	}
}

// TestOSFamilyIsValid verifies that only the three installable families
// are valid; OSUnknown exists as a detection result, not a valid family.
func TestOSFamilyIsValid(t *testing.T) {
	assert.True(t, OSLinux.IsValid())
	assert.True(t, OSDarwin.IsValid())
	assert.True(t, OSWindows.IsValid())

	assert.False(t, OSUnknown.IsValid())
	assert.False(t, OSFamily("plan9").IsValid())
	assert.False(t, OSFamily("").IsValid())
}

// TestParseOSFamily verifies case-insensitive parsing and rejection of
// unsupported names.
func TestParseOSFamily(t *testing.T) {
	family, err := ParseOSFamily("Linux")
	require.NoError(t, err)
	assert.Equal(t, OSLinux, family)

	_, err = ParseOSFamily("plan9")
	assert.Error(t, err)

	_, err = ParseOSFamily("unknown")
	assert.Error(t, err, "OSUnknown is not parseable as a valid family")
}

// --- ComponentState tests ---

// TestComponentStateIsValid verifies the closed set of states.
func TestComponentStateIsValid(t *testing.T) {
	assert.True(t, StateReady.IsValid())
	assert.True(t, StateMissing.IsValid())
	assert.True(t, StateStale.IsValid())
	assert.False(t, ComponentState("unknown").IsValid())
	assert.False(t, ComponentState("").IsValid())
}

// TestParseComponentState verifies case-insensitive parsing of states.
func TestParseComponentState(t *testing.T) {
	state, err := ParseComponentState("Ready")
	require.NoError(t, err)
	assert.Equal(t, StateReady, state)

	_, err = ParseComponentState("broken")
	assert.Error(t, err)
}

// --- ValidateEnvDirName tests ---

// TestValidateEnvDirName verifies that environment directory names are
// constrained to a single, optionally dot-prefixed path element.
func TestValidateEnvDirName(t *testing.T) {
	tests := []struct {
		name    string
		dirName string
		wantErr bool
	}{
		{
			name:    "conventional dot-prefixed name",
			dirName: ".venv",
		},
		{
			name:    "plain name",
			dirName: "venv",
		},
		{
			name:    "name with version markers",
			dirName: "env-3.10_test",
		},
		{
			name:    "empty name rejected",
			dirName: "",
			wantErr: true,
		},
		{
			name:    "path separator rejected",
			dirName: "envs/main",
			wantErr: true,
		},
		{
			name:    "parent traversal rejected",
			dirName: "..",
			wantErr: true,
		},
		{
			name:    "absolute path rejected",
			dirName: "/opt/venv",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEnvDirName(tt.dirName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// --- CLIError tests ---

// TestCLIErrorError verifies the message rendering with and without an
// underlying error.
func TestCLIErrorError(t *testing.T) {
	plain := NewCLIError(ExitManifestNotFound, "requirements manifest not found")
	assert.Equal(t, "requirements manifest not found", plain.Error())
	assert.Equal(t, ExitManifestNotFound, plain.Code)
	assert.Nil(t, plain.Err)

	underlying := errors.New("permission denied")
	wrapped := WrapCLIError(ExitEnvCreateFailed, "failed to create virtual environment", underlying)
	assert.Equal(t, "failed to create virtual environment: permission denied", wrapped.Error())
	assert.Equal(t, ExitEnvCreateFailed, wrapped.Code)
}

// TestCLIErrorUnwrap verifies that errors.Is sees through the CLIError
// to the underlying cause.
func TestCLIErrorUnwrap(t *testing.T) {
	underlying := errors.New("disk full")
	wrapped := WrapCLIError(ExitGeneralError, "write failed", underlying)

	assert.True(t, errors.Is(wrapped, underlying))

	var cliErr *CLIError
	require.True(t, errors.As(error(wrapped), &cliErr))
	assert.Equal(t, ExitGeneralError, cliErr.Code)
}

// TestExitCodeValues pins the published exit code contract: scripts and CI
// systems branch on these numbers, so they must never drift.
func TestExitCodeValues(t *testing.T) {
	assert.Equal(t, ExitCode(0), ExitSuccess)
	assert.Equal(t, ExitCode(1), ExitGeneralError)
	assert.Equal(t, ExitCode(2), ExitInterpreterNotFound)
	assert.Equal(t, ExitCode(3), ExitEnvCreateFailed)
	assert.Equal(t, ExitCode(4), ExitManifestNotFound)
	assert.Equal(t, ExitCode(5), ExitDepsInstallFailed)
	assert.Equal(t, ExitCode(6), ExitEntryPointNotFound)
	assert.Equal(t, ExitCode(7), ExitAppFailed)
}
