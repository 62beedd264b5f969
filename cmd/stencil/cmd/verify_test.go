package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencilkit/stencil/internal/checklist"
	"github.com/stencilkit/stencil/internal/output"
)

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldDir) })
}

// writeFile creates path under dir with parent directories.
func writeFile(t *testing.T, dir, path, content string) {
	t.Helper()
	full := filepath.Join(dir, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

// writeChecklist writes a custom checklist YAML and returns its path.
// Tests use custom checklists so results do not depend on which tools
// happen to be installed on the test machine.
func writeChecklist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checklist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVerifyCmd_AllChecksPass(t *testing.T) {
	// Given: a project containing everything the checklist asks for
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name": "demo"}`)
	writeFile(t, dir, filepath.Join("src", "index.ts"), "export {}\n")
	chdir(t, dir)

	checklistPath := writeChecklist(t, `
checks:
  - section: Project structure
    description: package.json exists
    kind: file_exists
    target: package.json
  - section: Project structure
    description: source directory exists
    kind: dir_exists
    target: src
`)

	// When: running verify
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"verify", "--checklist", checklistPath})

	err := cmd.Execute()

	// Then: every check passes and the exit is clean
	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "PASS package.json exists")
	assert.Contains(t, output, "PASS source directory exists")
	assert.Contains(t, output, "Passed: 2")
	assert.Contains(t, output, "Failed: 0")
	assert.Contains(t, output, "Setup complete. All checks passed.")
}

func TestVerifyCmd_FailuresDoNotShortCircuit(t *testing.T) {
	// Given: a project missing the first target but not the second
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name": "demo"}`)
	chdir(t, dir)

	checklistPath := writeChecklist(t, `
checks:
  - description: vite config exists
    kind: file_exists
    target: vite.config.ts
  - description: package.json exists
    kind: file_exists
    target: package.json
`)

	// When: running verify
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"verify", "--checklist", checklistPath})

	err := cmd.Execute()

	// Then: the failure is reported, later checks still run, exit code is 1
	output := buf.String()
	assert.Contains(t, output, "FAIL vite config exists (missing: vite.config.ts)")
	assert.Contains(t, output, "PASS package.json exists")
	assert.Contains(t, output, "Passed: 1")
	assert.Contains(t, output, "Failed: 1")
	assert.Contains(t, output, "Some checks failed. Review the failures above.")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Nil(t, exitErr.Err, "the report already explains the failure")
}

func TestVerifyCmd_JSONOutput(t *testing.T) {
	// Given: a project and a two-check checklist with one failure
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name": "demo"}`)
	chdir(t, dir)

	checklistPath := writeChecklist(t, `
checks:
  - description: package.json exists
    kind: file_exists
    target: package.json
  - description: source directory exists
    kind: dir_exists
    target: src
`)

	// When: running verify --json
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"verify", "--json", "--checklist", checklistPath})

	err := cmd.Execute()

	// Then: the report is valid JSON with ordered per-check results
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)

	var report struct {
		Checks []struct {
			Description string `json:"description"`
			Kind        string `json:"kind"`
			Target      string `json:"target"`
			Passed      bool   `json:"passed"`
		} `json:"checks"`
		Passed  int  `json:"passed"`
		Failed  int  `json:"failed"`
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	require.Len(t, report.Checks, 2)
	assert.Equal(t, "package.json exists", report.Checks[0].Description)
	assert.True(t, report.Checks[0].Passed)
	assert.Equal(t, "source directory exists", report.Checks[1].Description)
	assert.False(t, report.Checks[1].Passed)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.False(t, report.Success)
}

func TestVerifyCmd_BadChecklistIsStartupError(t *testing.T) {
	// Given: a checklist path that does not exist
	chdir(t, t.TempDir())

	// When: running verify with that path
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"verify", "--checklist", filepath.Join(t.TempDir(), "nope.yaml")})

	err := cmd.Execute()

	// Then: startup failures use a distinct exit code and carry a message
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	require.Error(t, exitErr.Err)
	assert.Contains(t, exitErr.Err.Error(), "read checklist")
}

func TestVerifyCmd_MalformedConfigIsStartupError(t *testing.T) {
	// Given: a project whose .stencil.yaml is not valid YAML
	dir := t.TempDir()
	writeFile(t, dir, ".stencil.yaml", "checklist: [unclosed")
	chdir(t, dir)

	// When: running verify
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"verify"})

	err := cmd.Execute()

	// Then: the run aborts before any checks with exit code 2
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.NotContains(t, buf.String(), "PASS")
}

func TestVerifyCmd_StrictScopesManifestLookups(t *testing.T) {
	// Given: a manifest that mentions vitest outside dependency sections
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
  "name": "demo",
  "keywords": ["vitest"]
}`)
	chdir(t, dir)

	checklistPath := writeChecklist(t, `
checks:
  - description: vitest package installed
    kind: package_declared
    target: vitest
`)

	// When: running verify with the legacy substring probe (default)
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"verify", "--checklist", checklistPath})

	err := cmd.Execute()

	// Then: the substring anywhere in the manifest counts as declared
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "PASS vitest package installed")

	// When: running the same check with --strict
	cmd = NewRootCmd()
	buf.Reset()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"verify", "--strict", "--checklist", checklistPath})

	err = cmd.Execute()

	// Then: the scoped lookup rejects the mention
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, buf.String(), "FAIL vitest package installed (missing: vitest)")
}

func TestWatchAndRerun_ErroredRerunIsReported(t *testing.T) {
	// Given: a run that passes once and then errors (project root vanished)
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var calls atomic.Int32
	runOnce := func() (checklist.Summary, error) {
		if calls.Add(1) == 1 {
			return checklist.Summary{Passed: 1}, nil
		}
		defer cancel() // end the watch once the errored re-run is in
		return checklist.Summary{}, &ExitError{Code: 2, Err: fmt.Errorf("read project directory %s: permission denied", dir)}
	}

	buf := &bytes.Buffer{}
	done := make(chan error, 1)
	go func() {
		done <- watchAndRerun(ctx, output.NewPlain(buf), dir, runOnce)
	}()

	// When: a change triggers a re-run after the watcher is registered
	time.Sleep(300 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0o644))

	err := <-done

	// Then: the error is printed and the interrupt exit reflects it
	require.GreaterOrEqual(t, calls.Load(), int32(2), "the change must trigger a re-run")
	assert.Contains(t, buf.String(), "permission denied")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestWatchAndRerun_ExitReflectsLastRun(t *testing.T) {
	// Given: an initial run with failures and a re-run that passes
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var calls atomic.Int32
	runOnce := func() (checklist.Summary, error) {
		if calls.Add(1) == 1 {
			return checklist.Summary{Passed: 1, Failed: 1}, nil
		}
		defer cancel()
		return checklist.Summary{Passed: 2}, nil
	}

	buf := &bytes.Buffer{}
	done := make(chan error, 1)
	go func() {
		done <- watchAndRerun(ctx, output.NewPlain(buf), dir, runOnce)
	}()

	// When: a change triggers a passing re-run, then the watch is interrupted
	time.Sleep(300 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vitest.config.ts"), []byte("{}"), 0o644))

	err := <-done

	// Then: the exit state is the last run's, not the first failing one
	require.GreaterOrEqual(t, calls.Load(), int32(2))
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Watching for changes. Press Ctrl-C to stop.")
}

func TestRootCmd_ZeroArgDefaultRunsChecklist(t *testing.T) {
	// Given: a bare project directory
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name": "demo"}`)
	chdir(t, dir)

	// When: running stencil with no arguments
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	_ = cmd.Execute() // most default checks fail in an empty project, that's OK

	// Then: the built-in checklist report is produced
	output := buf.String()
	assert.Contains(t, output, "Passed:")
	assert.Contains(t, output, "Failed:")
}
