// Package deps implements the dependency installation step: locating the
// requirements manifest (primary path with flat-file fallback copy) and
// installing it into the virtual environment with pip, after upgrading
// the packaging toolchain.
//
// The manifest search never guesses beyond its two configured paths, and
// when both are absent the step fails before any subprocess is spawned.
// pip failures are fatal and point the user at the install log, which
// holds the full captured output.
package deps
