// Package cmd provides the CLI commands for stencil.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stencilkit/stencil/internal/logging"
	"github.com/stencilkit/stencil/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// ExitError carries a process exit code out of a command. Err is nil when
// the command already reported the problem (a failed checklist run prints
// its own report); main only writes Err to stderr when it is set.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewRootCmd creates the root command for the stencil CLI.
func NewRootCmd() *cobra.Command {
	var opts verifyOptions

	cmd := &cobra.Command{
		Use:   "stencil",
		Short: "Scaffold a web app project and validate its setup",
		Long: `stencil scaffolds a web application project and validates the
resulting setup against an ordered checklist.

Running bare 'stencil' inside a project directory runs the setup
checklist: one PASS/FAIL line per check, a pass/fail tally, and exit
code 0 only when every check passed.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Zero-argument default: validate the current project.
			return runVerify(cmd, opts)
		},
	}

	cmd.SetVersionTemplate("stencil version {{.Version}}\n")

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Scope manifest checks to their declared sections")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.stencil/")
	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newNewCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging sets up debug file logging when --debug is given.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}

	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Debug("debug logging enabled", slog.String("log_file", logging.DefaultLogPath()))
	return nil
}

// stopLogging closes the debug log file.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
