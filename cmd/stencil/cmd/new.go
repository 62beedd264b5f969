package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stencilkit/stencil/internal/checklist"
	"github.com/stencilkit/stencil/internal/config"
	"github.com/stencilkit/stencil/internal/generator"
	"github.com/stencilkit/stencil/internal/logging"
	"github.com/stencilkit/stencil/internal/output"
	"github.com/stencilkit/stencil/internal/scaffold"
	"github.com/stencilkit/stencil/internal/ui"
)

func newNewCmd() *cobra.Command {
	var (
		force          bool
		skipGenerators bool
	)

	cmd := &cobra.Command{
		Use:   "new [dir]",
		Short: "Scaffold a web app project and validate the result",
		Long: `Scaffold a web application project in the given directory
(default: current directory).

This command:
1. Generates the framework starter app via the configured generator
2. Bootstraps the component-documentation tool
3. Writes boilerplate files (Button component, test, stories,
   test-runner configs) from embedded templates
4. Runs the setup checklist against the result

The generators are external tools judged only by their exit status;
their output goes to the stencil log file. Existing files are
preserved unless --force is given.`,
		Example: `  # Scaffold into ./my-app
  stencil new my-app

  # Write boilerplate only, skip the external generators
  stencil new my-app --skip-generators

  # Overwrite existing boilerplate files
  stencil new my-app --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runNew(ctx, cmd, dir, force, skipGenerators)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing boilerplate files")
	cmd.Flags().BoolVar(&skipGenerators, "skip-generators", false, "Write boilerplate without invoking external generators")

	return cmd
}

func runNew(ctx context.Context, cmd *cobra.Command, dir string, force, skipGenerators bool) error {
	out := output.New(cmd.OutOrStdout())

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}

	out.Statusf("Scaffolding %s", absDir)
	out.Newline()

	// One scaffold at a time per directory.
	lock := scaffold.NewDirLock(absDir)
	acquired, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("another stencil run holds the lock on %s", absDir)
	}
	defer func() { _ = lock.Unlock() }()

	cfg, err := config.Load(absDir)
	if err != nil {
		return err
	}

	if !skipGenerators {
		if err := runGenerators(ctx, out, cmd.OutOrStdout(), absDir, cfg); err != nil {
			return err
		}
	}

	results, err := scaffold.Write(absDir, force)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Created {
			out.Statusf("Created %s", r.Path)
		} else {
			out.Statusf("Preserved existing %s", r.Path)
		}
	}

	// Validate what we just built.
	out.Newline()
	runner := checklist.New()
	checkResults, summary, err := runner.Run(absDir, cfg.Checks())
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}
	checklist.Print(out, checkResults, summary)

	if !summary.Ok() {
		return &ExitError{Code: 1}
	}
	return nil
}

// runGenerators invokes the app generator and the component-docs bootstrap,
// in that order. Generator output is captured to the log file; on a TTY a
// spinner provides the liveness signal.
func runGenerators(ctx context.Context, out *output.Writer, fallback io.Writer, dir string, cfg *config.Config) error {
	genOut, closeLog := generatorLog(out, fallback)
	defer closeLog()

	runner := generator.New(generator.WithOutput(genOut))

	steps := []struct {
		label string
		argv  []string
	}{
		{"Generating starter app", cfg.Generators.App},
		{"Bootstrapping component docs", cfg.Generators.Docs},
	}

	for _, step := range steps {
		if _, err := runner.Available(step.argv); err != nil {
			return err
		}

		task := func() error { return runner.Run(ctx, dir, step.argv) }

		var err error
		if ui.IsTTY() {
			err = ui.RunWithSpinner(step.label+"...", task)
		} else {
			out.Statusf("%s...", step.label)
			err = task()
		}
		if err != nil {
			return err
		}
		out.Success(step.label + " done")
	}

	return nil
}

// generatorLog returns the writer that receives generator output: the
// stencil log file when it can be opened, the command's own output otherwise.
func generatorLog(out *output.Writer, fallback io.Writer) (io.Writer, func()) {
	path := logging.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fallback, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fallback, func() {}
	}
	out.Statusf("Generator output: %s", path)
	return f, func() { _ = f.Close() }
}
