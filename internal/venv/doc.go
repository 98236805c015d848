// Package venv manages the virtual environment directory: idempotent
// creation through `python -m venv`, resolution of the environment's own
// interpreter path per OS family, and the YAML receipt recording what the
// last successful bootstrap provisioned.
//
// The environment directory is the bootstrap's isolation primitive: a
// dedicated interpreter copy plus installed packages, separate from any
// system-wide installation. Its presence alone makes later runs skip
// creation; the receipt only refines reporting (staleness detection),
// it is never required for the bootstrap to proceed.
package venv
