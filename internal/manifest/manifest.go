// Package manifest reads the project manifest (package.json) for checklist
// probes.
//
// Two lookup modes exist. The legacy mode treats the manifest as unstructured
// text and probes for a substring anywhere in the document; this is
// deliberately imprecise (a package name inside a description passes) and is
// kept as the default for compatibility with the original checklist behavior.
// Strict mode parses the JSON and scopes lookups to the correct section.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the manifest file name at the project root.
const FileName = "package.json"

// Manifest holds the manifest text and, when parseable, its structured form.
type Manifest struct {
	raw    string
	parsed *document
}

// document is the subset of package.json the strict probes care about.
type document struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

// Load reads the manifest from projectRoot. A missing or unreadable manifest
// is reported as an error; callers treat that as a failed probe, not a fatal
// condition.
func Load(projectRoot string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(projectRoot, FileName))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	m := &Manifest{raw: string(data)}

	// Structured form is best-effort: legacy probes work on any text, and
	// strict probes on an unparseable manifest simply fail.
	var doc document
	if err := json.Unmarshal(data, &doc); err == nil {
		m.parsed = &doc
	}

	return m, nil
}

// ContainsLiteral reports whether the manifest text contains name anywhere.
// This is the legacy unscoped substring probe: a mention inside prose or an
// unrelated value counts, and a name that is a substring of another token
// (test inside vitest) counts too.
func (m *Manifest) ContainsLiteral(name string) bool {
	return strings.Contains(m.raw, name)
}

// HasDependency reports whether name appears in dependencies or
// devDependencies. Requires a parseable manifest.
func (m *Manifest) HasDependency(name string) bool {
	if m.parsed == nil {
		return false
	}
	if _, ok := m.parsed.Dependencies[name]; ok {
		return true
	}
	_, ok := m.parsed.DevDependencies[name]
	return ok
}

// HasScript reports whether name is declared in the scripts section.
// Requires a parseable manifest.
func (m *Manifest) HasScript(name string) bool {
	if m.parsed == nil {
		return false
	}
	_, ok := m.parsed.Scripts[name]
	return ok
}
