// Package configs provides embedded boilerplate templates for stencil.
//
// Templates are embedded at build time using Go's //go:embed directive so
// they are available in all distributions (source builds and binary
// releases). They are written into the target project by `stencil new`; see
// internal/scaffold.
//
// To modify a template, edit the file under templates/ and rebuild.
package configs

import _ "embed"

// ButtonComponent is the boilerplate Button component.
// Written to: src/components/Button.tsx
//
//go:embed templates/Button.tsx
var ButtonComponent string

// ButtonTest is the unit test for the boilerplate Button component.
// Written to: src/components/Button.test.tsx
//
//go:embed templates/Button.test.tsx
var ButtonTest string

// ButtonStories is the stories file for the boilerplate Button component.
// Written to: src/components/Button.stories.tsx
//
//go:embed templates/Button.stories.tsx
var ButtonStories string

// VitestConfig is the unit-test runner configuration.
// Written to: vitest.config.ts
//
//go:embed templates/vitest.config.ts
var VitestConfig string

// TestRunnerConfig is the storybook test-runner configuration.
// Written to: .storybook/test-runner.ts
//
//go:embed templates/test-runner.ts
var TestRunnerConfig string

// ProjectConfigTemplate is the template for the optional .stencil.yaml
// project configuration, created by `stencil new`. It documents the
// checklist override and generator pinning with commented examples.
//
//go:embed stencil.example.yaml
var ProjectConfigTemplate string
