package checklist

import (
	"github.com/stencilkit/stencil/internal/output"
)

// Print renders the ordered results and summary to w. Printing is a separate
// pass over the same ordered results the fold consumed; it never reorders or
// deduplicates. Sections are separated by blank lines, matching the
// declaration order of the checks.
func Print(w *output.Writer, results []Result, summary Summary) {
	section := ""
	for i, r := range results {
		if r.Check.Section != section {
			if i > 0 {
				w.Newline()
			}
			section = r.Check.Section
			if section != "" {
				w.Header(section)
			}
		}
		if r.Passed {
			w.Pass(r.Check.Description)
		} else {
			w.Fail(r.Check.Description, r.Check.Target)
		}
	}

	w.Newline()
	w.Statusf("Passed: %d", summary.Passed)
	w.Statusf("Failed: %d", summary.Failed)
	w.Newline()

	if summary.Ok() {
		w.Success("Setup complete. All checks passed.")
	} else {
		w.Warning("Some checks failed. Review the failures above.")
	}
}
