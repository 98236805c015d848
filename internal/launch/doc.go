// Package launch implements the final bootstrap step: verifying the
// downstream entry point exists and running it with the virtual
// environment's interpreter, stdio inherited from the parent process.
//
// The downstream application is an opaque collaborator: the launcher
// reports whether it could be started and how it exited, nothing more.
package launch
