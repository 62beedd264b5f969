// Package scaffold writes the boilerplate files for a scaffolded web app:
// the Button component with its test and stories, and the test-runner
// configurations. Content comes from embedded templates (see configs).
package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stencilkit/stencil/configs"
)

// File is one boilerplate file to be written into the target project.
type File struct {
	// Path is relative to the project root.
	Path    string
	Content string
}

// Files returns the boilerplate set in write order.
func Files() []File {
	return []File{
		{Path: filepath.Join("src", "components", "Button.tsx"), Content: configs.ButtonComponent},
		{Path: filepath.Join("src", "components", "Button.test.tsx"), Content: configs.ButtonTest},
		{Path: filepath.Join("src", "components", "Button.stories.tsx"), Content: configs.ButtonStories},
		{Path: "vitest.config.ts", Content: configs.VitestConfig},
		{Path: filepath.Join(".storybook", "test-runner.ts"), Content: configs.TestRunnerConfig},
		{Path: ".stencil.yaml", Content: configs.ProjectConfigTemplate},
	}
}

// Result reports what happened to one boilerplate file.
type Result struct {
	Path    string
	Created bool // false means an existing file was preserved
}

// Write places the boilerplate files under projectRoot, creating parent
// directories as needed. Existing files are preserved unless force is set;
// user customizations are never silently overwritten.
func Write(projectRoot string, force bool) ([]Result, error) {
	results := make([]Result, 0, len(Files()))

	for _, f := range Files() {
		dest := filepath.Join(projectRoot, f.Path)

		if !force {
			if _, err := os.Stat(dest); err == nil {
				results = append(results, Result{Path: f.Path, Created: false})
				continue
			} else if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("stat %s: %w", f.Path, err)
			}
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, fmt.Errorf("create directory for %s: %w", f.Path, err)
		}
		if err := os.WriteFile(dest, []byte(f.Content), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Path, err)
		}
		results = append(results, Result{Path: f.Path, Created: true})
	}

	return results, nil
}
