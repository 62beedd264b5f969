package checklist

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/stencilkit/stencil/internal/manifest"
)

// Kind identifies what a check probes.
type Kind string

const (
	// KindFileExists passes iff a regular file exists at projectRoot/target.
	KindFileExists Kind = "file_exists"
	// KindDirExists passes iff a directory exists at projectRoot/target.
	KindDirExists Kind = "dir_exists"
	// KindCommandAvailable passes iff target resolves on PATH.
	KindCommandAvailable Kind = "command_available"
	// KindPackageDeclared passes iff the manifest declares target as a package.
	KindPackageDeclared Kind = "package_declared"
	// KindScriptDeclared passes iff the manifest declares target as a script.
	KindScriptDeclared Kind = "script_declared"
)

// Valid reports whether k is a known check kind.
func (k Kind) Valid() bool {
	switch k {
	case KindFileExists, KindDirExists, KindCommandAvailable,
		KindPackageDeclared, KindScriptDeclared:
		return true
	}
	return false
}

// Check is one named, independent pass/fail test against the project's
// filesystem state or manifest text. Immutable once declared; the full
// ordered sequence of checks is configuration, not runtime data.
type Check struct {
	Section     string `yaml:"section"`
	Description string `yaml:"description"`
	Kind        Kind   `yaml:"kind"`
	Target      string `yaml:"target"`
}

// Result pairs a check with its outcome. Produced once per run, never mutated.
type Result struct {
	Check  Check
	Passed bool
}

// Summary is the aggregate pass/fail tally over one complete run.
type Summary struct {
	Passed int
	Failed int
}

// Ok reports whether every check passed.
func (s Summary) Ok() bool {
	return s.Failed == 0
}

// Summarize folds an ordered result slice into a Summary.
// Passed + Failed always equals len(results).
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// Runner evaluates checks against a project directory. It only reads: no
// check mutates the target project.
type Runner struct {
	strict bool

	// For testing: override command resolution.
	lookPath func(file string) (string, error)
}

// Option configures a Runner.
type Option func(*Runner)

// WithStrict switches the manifest probes from the legacy unscoped substring
// search to a structured lookup scoped to the dependencies/scripts sections.
func WithStrict(strict bool) Option {
	return func(r *Runner) {
		r.strict = strict
	}
}

// WithLookPath overrides PATH resolution for command_available checks.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(r *Runner) {
		r.lookPath = fn
	}
}

// New creates a Runner with the given options.
func New(opts ...Option) *Runner {
	r := &Runner{
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates every check in declaration order and returns the ordered
// results with their summary. A failed check never short-circuits later
// checks; the run collects all problems.
//
// The only fatal condition is a project root that cannot be read at all.
func (r *Runner) Run(projectRoot string, checks []Check) ([]Result, Summary, error) {
	info, err := os.Stat(projectRoot)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("read project directory %s: %w", projectRoot, err)
	}
	if !info.IsDir() {
		return nil, Summary{}, fmt.Errorf("project path %s is not a directory", projectRoot)
	}

	// The manifest is read once per run. Absence just fails the manifest
	// probes; it is not an error.
	mf, _ := manifest.Load(projectRoot)

	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		results = append(results, Result{Check: c, Passed: r.evaluate(projectRoot, mf, c)})
	}
	return results, Summarize(results), nil
}

// evaluate classifies a single check. Every probe is a synchronous local
// filesystem, PATH, or string test.
func (r *Runner) evaluate(projectRoot string, mf *manifest.Manifest, c Check) bool {
	switch c.Kind {
	case KindFileExists:
		return fileExists(projectRoot, c.Target)
	case KindDirExists:
		return dirExists(projectRoot, c.Target)
	case KindCommandAvailable:
		_, err := r.lookPath(c.Target)
		return err == nil
	case KindPackageDeclared:
		if mf == nil {
			return false
		}
		if r.strict {
			return mf.HasDependency(c.Target)
		}
		return mf.ContainsLiteral(c.Target)
	case KindScriptDeclared:
		if mf == nil {
			return false
		}
		if r.strict {
			return mf.HasScript(c.Target)
		}
		// Same unscoped substring search as package_declared; the original
		// checklist never scoped this to the scripts section.
		return mf.ContainsLiteral(c.Target)
	default:
		return false
	}
}

func fileExists(root, rel string) bool {
	info, err := os.Stat(filepath.Join(root, rel))
	return err == nil && info.Mode().IsRegular()
}

func dirExists(root, rel string) bool {
	info, err := os.Stat(filepath.Join(root, rel))
	return err == nil && info.IsDir()
}
