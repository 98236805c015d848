// Package interp implements interpreter location and installation for the
// pybootstrap CLI.
//
// Location probes an ordered candidate list (python3.10, python310,
// python3, python) against PATH and verifies each hit by parsing its
// --version output; candidates that fail to resolve, run, or match are
// skipped silently. Installation dispatches exactly one package manager
// invocation chosen from a closed per-OS descriptor table, as a
// best-effort attempt whose Result the caller inspects.
package interp
