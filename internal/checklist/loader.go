package checklist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the YAML document shape for a custom checklist.
type file struct {
	Checks []Check `yaml:"checks"`
}

// LoadFile reads an ordered checklist from a YAML file:
//
//	checks:
//	  - section: Project structure
//	    description: source directory exists
//	    kind: dir_exists
//	    target: src
//
// Declaration order is preserved. Unknown kinds are rejected.
func LoadFile(path string) ([]Check, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checklist: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML checklist document.
func Parse(data []byte) ([]Check, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse checklist: %w", err)
	}
	if len(f.Checks) == 0 {
		return nil, fmt.Errorf("checklist declares no checks")
	}

	for i, c := range f.Checks {
		if !c.Kind.Valid() {
			return nil, fmt.Errorf("check %d (%q): unknown kind %q", i, c.Description, c.Kind)
		}
		if c.Target == "" {
			return nil, fmt.Errorf("check %d (%q): missing target", i, c.Description)
		}
	}
	return f.Checks, nil
}
