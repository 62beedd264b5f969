// Package checklist implements the setup checklist validator: an ordered
// sequence of named pass/fail checks (file exists, directory exists, command
// available, package declared, script declared) evaluated against a project
// directory.
//
// The run is sequential and read-only. A failed check is recorded and the run
// continues; the tool collects every problem instead of failing fast. Results
// are folded into an immutable Summary, and printing is a separate pass over
// the same ordered results.
package checklist
