// Package interp locates and installs Python interpreters.
//
// The locator probes a fixed ordered list of candidate command names and
// verifies each hit by running its version query and parsing the output
// strictly: a target of 3.10 is matched field-wise against the reported
// MAJOR.MINOR, never by substring, so 3.100 can not slip through.
//
// The installer side maps each supported OS family to exactly one
// declarative package manager invocation. Install attempts are
// best-effort: the caller inspects the returned Result and re-runs the
// locator; a failed install is not itself fatal.
package interp

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/shinji-kodama/pybootstrap/internal/execx"
	"github.com/shinji-kodama/pybootstrap/internal/model"
)

// CandidateNames returns the ordered command names probed for the target
// version, most specific first:
//
//	python3.10 → python310 → python3 → python
//
// The version-qualified forms exist because distributions install
// side-by-side interpreters under suffixed names; the generic fallbacks
// cover hosts where the default interpreter already matches.
func CandidateNames(target model.Version) []string {
	return []string{
		"python" + target.String(),
		"python" + target.Compact(),
		"python3",
		"python",
	}
}

// versionOutputRegex extracts the MAJOR.MINOR pair from an interpreter's
// version banner ("Python 3.10.12"). The \b prevents a match inside
// longer words, and the capture groups are greedy, so "Python 3.100.1"
// parses as minor 100, which then fails the field-wise comparison
// instead of falsely satisfying a 3.10 target.
var versionOutputRegex = regexp.MustCompile(`\bPython (\d+)\.(\d+)`)

// ParseVersionOutput parses a version-query output into a Version.
// Returns an error when no version banner is present, which the locator
// treats as a non-matching candidate.
func ParseVersionOutput(output string) (model.Version, error) {
	m := versionOutputRegex.FindStringSubmatch(output)
	if m == nil {
		return model.Version{}, fmt.Errorf("no Python version banner in output %q", output)
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return model.Version{}, fmt.Errorf("invalid major version in output %q: %w", output, err)
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return model.Version{}, fmt.Errorf("invalid minor version in output %q: %w", output, err)
	}
	return model.Version{Major: major, Minor: minor}, nil
}

// Locator finds an installed interpreter matching a target version by
// probing candidate command names against PATH and verifying what each
// one reports.
type Locator struct {
	runner execx.Runner
}

// NewLocator creates a Locator using the given runner for PATH lookups
// and version-query subprocesses.
func NewLocator(runner execx.Runner) *Locator {
	return &Locator{runner: runner}
}

// Locate returns the path of the first candidate whose reported version
// matches the target, or ("", false) when none does.
//
// Every per-candidate failure is skipped silently: not on PATH, version
// query refused to run or exited non-zero, output unparseable, version
// mismatch, all just advance the loop. Locating is idempotent and has
// no side effects beyond the short-lived version queries.
func (l *Locator) Locate(ctx context.Context, target model.Version) (string, bool) {
	for _, name := range CandidateNames(target) {
		path, err := l.runner.LookPath(name)
		if err != nil {
			// Not on PATH, try the next candidate.
			continue
		}

		res := l.runner.Run(ctx, execx.CommandSpec{
			Command: path,
			Args:    []string{"--version"},
		})
		if !res.Ok() {
			continue
		}

		reported, err := ParseVersionOutput(res.Output)
		if err != nil {
			continue
		}

		if reported == target {
			return path, true
		}
	}

	return "", false
}
