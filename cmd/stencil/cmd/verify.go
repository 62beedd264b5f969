package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stencilkit/stencil/internal/checklist"
	"github.com/stencilkit/stencil/internal/config"
	"github.com/stencilkit/stencil/internal/output"
	"github.com/stencilkit/stencil/internal/watch"
)

type verifyOptions struct {
	strict        bool
	jsonOutput    bool
	watchMode     bool
	checklistPath string
}

func newVerifyCmd() *cobra.Command {
	var opts verifyOptions

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run the setup checklist against the current project",
		Long: `Run the ordered setup checklist against the current project.

Each check prints one line (PASS <description> or FAIL <description>
(missing: <target>)); a failed check never stops later checks. The run
ends with pass/fail counts and a closing message.

Exit codes: 0 when every check passed, 1 when any check failed, 2 when
the project directory cannot be read at all.

By default manifest checks use the legacy substring probe: a package or
script name appearing anywhere in package.json counts as declared. Use
--strict to scope each lookup to its proper manifest section.`,
		Example: `  # Validate the current project
  stencil verify

  # Scope manifest lookups to their declared sections
  stencil verify --strict

  # Re-validate on every file change
  stencil verify --watch

  # Use a custom checklist
  stencil verify --checklist ./checklist.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Scope manifest checks to their declared sections")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&opts.watchMode, "watch", false, "Re-run the checklist on file changes")
	cmd.Flags().StringVar(&opts.checklistPath, "checklist", "", "Path to a custom checklist YAML file")

	return cmd
}

func runVerify(cmd *cobra.Command, opts verifyOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	root, err := config.FindProjectRoot(cwd)
	if err != nil {
		root = cwd
	}

	cfg, err := config.Load(root)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	checks := cfg.Checks()
	if opts.checklistPath != "" {
		checks, err = checklist.LoadFile(opts.checklistPath)
		if err != nil {
			return &ExitError{Code: 2, Err: err}
		}
	}

	runner := checklist.New(checklist.WithStrict(opts.strict))

	runOnce := func() (checklist.Summary, error) {
		results, summary, err := runner.Run(root, checks)
		if err != nil {
			return summary, &ExitError{Code: 2, Err: err}
		}
		if opts.jsonOutput {
			return summary, printJSON(cmd, results, summary)
		}
		checklist.Print(output.New(cmd.OutOrStdout()), results, summary)
		return summary, nil
	}

	if !opts.watchMode {
		summary, err := runOnce()
		if err != nil {
			return err
		}
		if !summary.Ok() {
			return &ExitError{Code: 1}
		}
		return nil
	}

	return runVerifyWatch(cmd, root, runOnce)
}

// runVerifyWatch re-runs the checklist on every debounced change until
// interrupted.
func runVerifyWatch(cmd *cobra.Command, root string, runOnce func() (checklist.Summary, error)) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchAndRerun(ctx, output.New(cmd.OutOrStdout()), root, runOnce)
}

// watchAndRerun blocks until ctx is cancelled, re-running the checklist on
// every debounced change. The exit code on interrupt reflects the last run:
// 0 when it passed, 1 when it had failures, 2 when it errored outright (an
// errored re-run is reported immediately, not silently dropped).
func watchAndRerun(ctx context.Context, out *output.Writer, root string, runOnce func() (checklist.Summary, error)) error {
	var lastCode atomic.Int32

	summary, err := runOnce()
	if err != nil {
		return err
	}
	if !summary.Ok() {
		lastCode.Store(1)
	}

	out.Newline()
	out.Status("Watching for changes. Press Ctrl-C to stop.")

	watchErr := watch.Watch(ctx, root, watch.Options{}, func() {
		out.Newline()
		summary, err := runOnce()
		switch {
		case err != nil:
			out.Errorf("verify: %v", err)
			lastCode.Store(2)
		case summary.Ok():
			lastCode.Store(0)
		default:
			lastCode.Store(1)
		}
	})

	if watchErr != nil && !errors.Is(watchErr, context.Canceled) {
		return &ExitError{Code: 2, Err: watchErr}
	}
	if code := lastCode.Load(); code != 0 {
		// The report or error message is already on screen.
		return &ExitError{Code: int(code)}
	}
	return nil
}

// jsonReport is the machine-readable report shape.
type jsonReport struct {
	Checks  []jsonCheck `json:"checks"`
	Passed  int         `json:"passed"`
	Failed  int         `json:"failed"`
	Success bool        `json:"success"`
}

type jsonCheck struct {
	Section     string `json:"section,omitempty"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Target      string `json:"target"`
	Passed      bool   `json:"passed"`
}

func printJSON(cmd *cobra.Command, results []checklist.Result, summary checklist.Summary) error {
	report := jsonReport{
		Checks:  make([]jsonCheck, len(results)),
		Passed:  summary.Passed,
		Failed:  summary.Failed,
		Success: summary.Ok(),
	}
	for i, r := range results {
		report.Checks[i] = jsonCheck{
			Section:     r.Check.Section,
			Description: r.Check.Description,
			Kind:        string(r.Check.Kind),
			Target:      r.Check.Target,
			Passed:      r.Passed,
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
