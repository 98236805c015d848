// Package model defines the domain types for the pybootstrap CLI.
//
// All entities in this package are small value objects shared by the step
// packages (interp, venv, deps, launch) and the CLI layer. The bootstrap
// sequence keeps no in-memory state across runs: the only durable artifacts
// are filesystem ones (the environment directory, the requirements manifest,
// the receipt file), so everything here is reconstructed per invocation.
package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version identifies a Python release by its MAJOR.MINOR pair.
//
// Version comparison is always field-wise, never textual: a target of 3.10
// must not match a reported 3.100, which substring matching would allow.
// The patch level is deliberately ignored: interpreter candidates report
// "Python 3.10.12" and the like, and any patch of the right MAJOR.MINOR
// satisfies the bootstrap.
type Version struct {
	Major int
	Minor int
}

// versionRegex validates target version strings: exactly MAJOR.MINOR,
// both decimal, no prefix or suffix.
var versionRegex = regexp.MustCompile(`^(\d+)\.(\d+)$`)

// ParseVersion converts a MAJOR.MINOR string (e.g. "3.10") to a Version.
// Returns an error for anything else, including full triples ("3.10.2"),
// bare majors ("3"), and non-numeric input.
func ParseVersion(s string) (Version, error) {
	m := versionRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, fmt.Errorf("invalid target version %q (expected MAJOR.MINOR, e.g. \"3.10\")", s)
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version in %q: %v", s, err)
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version in %q: %v", s, err)
	}
	return Version{Major: major, Minor: minor}, nil
}

// String returns the dotted form, e.g. "3.10".
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and logging.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compact returns the undotted form, e.g. "310", used by candidate
// interpreter names of the python310 style.
func (v Version) Compact() string {
	return fmt.Sprintf("%d%d", v.Major, v.Minor)
}

// OSFamily represents the operating system family the bootstrap runs on.
// It is a closed enum: each supported family maps to exactly one package
// manager invocation in the interpreter installer, and an unknown family
// maps to none.
type OSFamily string

const (
	// OSLinux covers Linux hosts; interpreter installs go through apt-get.
	OSLinux OSFamily = "linux"

	// OSDarwin covers macOS hosts; interpreter installs go through brew.
	OSDarwin OSFamily = "darwin"

	// OSWindows covers Windows hosts; interpreter installs go through winget.
	OSWindows OSFamily = "windows"

	// OSUnknown is the detection result for any other GOOS value.
	// No installer branch exists for it.
	OSUnknown OSFamily = "unknown"
)

// DetectOSFamily maps a GOOS value (runtime.GOOS) to an OSFamily.
// Unrecognized values map to OSUnknown rather than an error so the
// caller can fall through to the overall not-found outcome.
func DetectOSFamily(goos string) OSFamily {
	switch goos {
	case "linux":
		return OSLinux
	case "darwin":
		return OSDarwin
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// String returns the string representation of OSFamily.
func (f OSFamily) String() string {
	return string(f)
}

// IsValid checks whether the OSFamily value is one of the supported
// families. OSUnknown is not valid: it exists only as a detection result.
func (f OSFamily) IsValid() bool {
	switch f {
	case OSLinux, OSDarwin, OSWindows:
		return true
	default:
		return false
	}
}

// ParseOSFamily converts a string to an OSFamily.
// Returns an error if the string does not name a supported family.
func ParseOSFamily(s string) (OSFamily, error) {
	family := OSFamily(strings.ToLower(s))
	if !family.IsValid() {
		return "", fmt.Errorf("invalid OS family: %q (valid: linux, darwin, windows)", s)
	}
	return family, nil
}

// ComponentState represents the readiness of a single bootstrap component
// (interpreter, environment, manifest, entry point) as reported by the
// status command. States are observations, not transitions: the status
// command never mutates anything.
type ComponentState string

const (
	// StateReady indicates the component exists and matches the
	// configured expectations.
	StateReady ComponentState = "ready"

	// StateMissing indicates the component does not exist yet.
	// A subsequent `up` run would create or install it.
	StateMissing ComponentState = "missing"

	// StateStale indicates the component exists but disagrees with the
	// configuration, e.g. an environment provisioned for a different
	// target version than the one now configured.
	StateStale ComponentState = "stale"
)

// String returns the string representation of ComponentState.
func (s ComponentState) String() string {
	return string(s)
}

// IsValid checks whether the ComponentState value is one of the
// predefined states.
func (s ComponentState) IsValid() bool {
	switch s {
	case StateReady, StateMissing, StateStale:
		return true
	default:
		return false
	}
}

// ParseComponentState converts a string to a ComponentState.
// Returns an error if the string does not match any valid state.
func ParseComponentState(s string) (ComponentState, error) {
	state := ComponentState(strings.ToLower(s))
	if !state.IsValid() {
		return "", fmt.Errorf("invalid component state: %q (valid: ready, missing, stale)", s)
	}
	return state, nil
}

// ComponentReport describes one bootstrap component for the status command.
// Detail carries the interesting specifics: the resolved interpreter path,
// the manifest location that matched, the version a stale environment was
// provisioned for.
type ComponentReport struct {
	// Name identifies the component: "interpreter", "environment",
	// "manifest" or "entrypoint".
	Name string `json:"name"`

	// State is the observed readiness of the component.
	State ComponentState `json:"state"`

	// Detail is an optional human-readable elaboration.
	Detail string `json:"detail,omitempty"`
}

// envDirNameRegex validates environment directory names: a single path
// element, optionally dot-prefixed (".venv"), containing only alphanumerics,
// dots, underscores and hyphens.
var envDirNameRegex = regexp.MustCompile(`^\.?[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateEnvDirName checks if the given name is usable as the environment
// directory name. The name must be a bare directory name, not a path: the
// environment always lives directly under the project directory.
func ValidateEnvDirName(name string) error {
	if name == "" {
		return fmt.Errorf("environment directory name must not be empty")
	}
	if !envDirNameRegex.MatchString(name) {
		return fmt.Errorf("invalid environment directory name %q: must be a single path element of alphanumerics, dots, underscores or hyphens", name)
	}
	return nil
}

// ExitCode defines the CLI exit codes, one per fatal bootstrap condition.
// These codes allow scripts and CI systems to programmatically determine
// which step failed.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInterpreterNotFound indicates no interpreter matching the target
	// version could be located, even after the install attempt.
	ExitInterpreterNotFound ExitCode = 2

	// ExitEnvCreateFailed indicates the environment creation subprocess
	// exited non-zero or could not be spawned.
	ExitEnvCreateFailed ExitCode = 3

	// ExitManifestNotFound indicates neither the primary nor the fallback
	// requirements manifest exists.
	ExitManifestNotFound ExitCode = 4

	// ExitDepsInstallFailed indicates the packaging-tool upgrade or the
	// manifest install subprocess failed.
	ExitDepsInstallFailed ExitCode = 5

	// ExitEntryPointNotFound indicates the downstream entry point script
	// does not exist at its configured path.
	ExitEntryPointNotFound ExitCode = 6

	// ExitAppFailed indicates the launched application exited non-zero.
	// The application's own exit code is reported in the message.
	ExitAppFailed ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
