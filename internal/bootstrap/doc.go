// Package bootstrap drives the end-to-end bootstrap sequence for a
// project directory.
//
// The Engine runs the steps in a fixed order: locate a Python interpreter
// matching the target version, dispatch the platform package manager when
// none is found, create the virtual environment, resolve and install the
// requirements manifest, and finally launch the application entry point.
// Each step either completes or aborts the run with a model.CLIError
// carrying the exit code for that failure class.
//
// Subprocess activity is recorded in the project's install log via logrus,
// so a failed pip run leaves its full output behind for inspection. The
// CLI configures the logrus formatter and level; the Engine only redirects
// output to the install log for the duration of a run.
package bootstrap
