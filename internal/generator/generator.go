// Package generator invokes the external scaffolding CLIs (the app generator
// and the component-docs bootstrap). The tools are opaque collaborators: each
// is resolved on PATH, run once synchronously in the target directory, and
// judged only by its process exit status. Their output is never parsed; it is
// streamed to the configured writer (normally the log file).
package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes external generator commands.
type Runner struct {
	out io.Writer

	// For testing: override command execution and PATH resolution.
	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
	lookPath    func(file string) (string, error)
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput directs generator stdout/stderr to w.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithExec overrides command construction (tests).
func WithExec(fn func(ctx context.Context, name string, args ...string) *exec.Cmd) Option {
	return func(r *Runner) {
		r.execCommand = fn
	}
}

// WithLookPath overrides PATH resolution (tests).
func WithLookPath(fn func(string) (string, error)) Option {
	return func(r *Runner) {
		r.lookPath = fn
	}
}

// New creates a Runner with the given options.
func New(opts ...Option) *Runner {
	r := &Runner{
		out:         io.Discard,
		execCommand: exec.CommandContext,
		lookPath:    exec.LookPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available reports whether the command naming argv[0] resolves on PATH.
func (r *Runner) Available(argv []string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("empty generator command")
	}
	path, err := r.lookPath(argv[0])
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", argv[0], err)
	}
	return path, nil
}

// Run executes argv in dir and waits for it to finish. Success is judged
// only by the exit status.
func (r *Runner) Run(ctx context.Context, dir string, argv []string) error {
	path, err := r.Available(argv)
	if err != nil {
		return err
	}

	slog.Debug("running generator",
		slog.String("command", strings.Join(argv, " ")),
		slog.String("dir", dir))

	cmd := r.execCommand(ctx, path, argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = r.out
	cmd.Stderr = r.out

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", argv[0], err)
	}
	return nil
}
