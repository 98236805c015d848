// Package execx defines the external command execution layer for the
// pybootstrap CLI.
//
// It provides a CommandSpec/Result pair describing each invocation and its
// outcome, a Runner interface the step packages depend on, and the
// production SystemRunner backed by os/exec. Captured output is combined
// stdout+stderr, matching what a human would see in a terminal, which is
// what the diagnostics and the install log want to show.
//
// The Runner imposes no timeouts. The bootstrap is a sequential,
// synchronous program and a hung package manager or pip run hangs it by
// contract; contexts are passed through to os/exec unmodified.
package execx
