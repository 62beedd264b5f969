// Package main provides the entry point for the stencil CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/stencilkit/stencil/cmd/stencil/cmd"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) {
		// Failed checks already produced a full report on stdout; only
		// startup errors carry a message for stderr.
		if exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, "stencil:", exitErr.Err)
		}
		os.Exit(exitErr.Code)
	}

	fmt.Fprintln(os.Stderr, "stencil:", err)
	os.Exit(1)
}
