package checklist

// Default returns the built-in checklist for a scaffolded web application:
// the source tree and component boilerplate, the component-docs setup, the
// test-runner configs, the required tools, and the manifest declarations.
// Order is significant and matches the printed report.
func Default() []Check {
	return []Check{
		// Project structure
		{Section: "Project structure", Description: "package manifest exists", Kind: KindFileExists, Target: "package.json"},
		{Section: "Project structure", Description: "source directory exists", Kind: KindDirExists, Target: "src"},
		{Section: "Project structure", Description: "components directory exists", Kind: KindDirExists, Target: "src/components"},

		// Component boilerplate
		{Section: "Component boilerplate", Description: "Button component exists", Kind: KindFileExists, Target: "src/components/Button.tsx"},
		{Section: "Component boilerplate", Description: "Button test exists", Kind: KindFileExists, Target: "src/components/Button.test.tsx"},
		{Section: "Component boilerplate", Description: "Button stories exist", Kind: KindFileExists, Target: "src/components/Button.stories.tsx"},

		// Component docs
		{Section: "Component docs", Description: "storybook config directory exists", Kind: KindDirExists, Target: ".storybook"},
		{Section: "Component docs", Description: "storybook main config exists", Kind: KindFileExists, Target: ".storybook/main.ts"},

		// Test runners
		{Section: "Test runners", Description: "vitest config exists", Kind: KindFileExists, Target: "vitest.config.ts"},
		{Section: "Test runners", Description: "storybook test-runner config exists", Kind: KindFileExists, Target: ".storybook/test-runner.ts"},

		// Tools
		{Section: "Tools", Description: "node is available", Kind: KindCommandAvailable, Target: "node"},
		{Section: "Tools", Description: "npm is available", Kind: KindCommandAvailable, Target: "npm"},

		// Manifest declarations
		{Section: "Manifest", Description: "vitest package declared", Kind: KindPackageDeclared, Target: "vitest"},
		{Section: "Manifest", Description: "storybook package declared", Kind: KindPackageDeclared, Target: "storybook"},
		{Section: "Manifest", Description: "test script declared", Kind: KindScriptDeclared, Target: "test"},
		{Section: "Manifest", Description: "storybook script declared", Kind: KindScriptDeclared, Target: "storybook"},
	}
}
