package catalog

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a catalog file.
//
// Example file:
//
//	projects:
//	  - name: duckling
//	    groups:
//	      - name: "1.2"
//	        version: "1.2"
//	        versions:
//	          - name: "1.2.4"
//	          - name: "1.2.5"
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	if err := cat.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return &cat, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]struct{}, len(c.Projects))
	for _, project := range c.Projects {
		if project.Name == "" {
			return fmt.Errorf("project with empty name")
		}
		lower := strings.ToLower(project.Name)
		if _, dup := seen[lower]; dup {
			return fmt.Errorf("duplicate project %q", lower)
		}
		seen[lower] = struct{}{}

		for _, group := range project.Groups {
			if group.Version == "" {
				return fmt.Errorf("project %q: group %q has no version", project.Name, group.Name)
			}
			for _, version := range group.Versions {
				if version.Name == "" {
					return fmt.Errorf("project %q: group %q contains a version with no name", project.Name, group.Name)
				}
			}
		}
	}
	return nil
}

// Store publishes the current catalog to request handlers. Handlers
// read a consistent snapshot via Current; reloads swap the whole
// catalog atomically so no lock is needed on the request path.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store publishing cat as the initial catalog.
func NewStore(cat *Catalog) *Store {
	s := &Store{}
	s.current.Store(cat)
	return s
}

// Current returns the currently published catalog.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Replace publishes cat, replacing the previous catalog for all
// subsequent requests. In-flight requests keep the snapshot they
// already hold.
func (s *Store) Replace(cat *Catalog) {
	s.current.Store(cat)
}
