// Package config loads the optional .stencil.yaml project configuration.
//
// Configuration hierarchy:
//  1. Hardcoded defaults (the built-in checklist and generator commands)
//  2. Project config (.stencil.yaml at the project root)
//
// The file is optional; stencil works with sensible defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/stencilkit/stencil/internal/checklist"
)

// ProjectFileName is the project configuration file name.
const ProjectFileName = ".stencil.yaml"

// Config represents the complete stencil configuration.
type Config struct {
	// Checklist overrides the built-in checklist when non-empty.
	// Declaration order is preserved.
	Checklist []checklist.Check `yaml:"checklist"`

	// Generators configures the external scaffolding commands.
	Generators GeneratorsConfig `yaml:"generators"`
}

// GeneratorsConfig pins the external generator invocations. Each entry is a
// command name followed by its arguments; the commands are opaque
// collaborators judged only by exit status.
type GeneratorsConfig struct {
	// App generates the framework starter application.
	App []string `yaml:"app"`
	// Docs bootstraps the component-documentation tool.
	Docs []string `yaml:"docs"`
}

// NewConfig returns the hardcoded default configuration.
func NewConfig() *Config {
	return &Config{
		Generators: GeneratorsConfig{
			App:  []string{"npm", "create", "vite@latest", ".", "--", "--template", "react-ts"},
			Docs: []string{"npx", "storybook@latest", "init", "--yes"},
		},
	}
}

// Load reads configuration for the given project root. A missing project
// file yields the defaults; a malformed file is an error.
func Load(projectRoot string) (*Config, error) {
	cfg := NewConfig()

	path := filepath.Join(projectRoot, ProjectFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ProjectFileName, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ProjectFileName, err)
	}

	for i, c := range cfg.Checklist {
		if !c.Kind.Valid() {
			return nil, fmt.Errorf("%s: checklist entry %d: unknown kind %q", ProjectFileName, i, c.Kind)
		}
	}
	return cfg, nil
}

// Checks returns the effective checklist: the project override when present,
// the built-in default otherwise.
func (c *Config) Checks() []checklist.Check {
	if len(c.Checklist) > 0 {
		return c.Checklist
	}
	return checklist.Default()
}

// FindProjectRoot finds the project root directory by walking up from
// startDir looking for package.json, .stencil.yaml, or a .git directory.
// If none is found the starting directory itself is returned.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	currentDir := absDir
	for {
		if fileExists(filepath.Join(currentDir, "package.json")) ||
			fileExists(filepath.Join(currentDir, ProjectFileName)) ||
			dirExists(filepath.Join(currentDir, ".git")) {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return absDir, nil
		}
		currentDir = parentDir
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
