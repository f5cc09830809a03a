// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patterns

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Load reads a YAML override file and applies it on top of Default. Lists
// present in the file replace the built-in list; map entries replace the
// matching key and leave the others intact.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pattern file %s: %w", path, err)
	}

	lib := Default()
	if err := yaml.Unmarshal(data, lib); err != nil {
		return nil, fmt.Errorf("parsing pattern file %s: %w", path, err)
	}
	return lib, nil
}

// Section returns the heading variants for a canonical section name.
func (l *Library) Section(name string) []string {
	if l == nil {
		return nil
	}
	return l.SectionHeaders[name]
}
