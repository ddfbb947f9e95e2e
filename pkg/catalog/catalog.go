package catalog

import (
	"strings"

	"github.com/platinummonkey/mallard/pkg/semver"
)

// Version is one published documentation archive of a project.
type Version struct {
	Name string `yaml:"name" json:"name"`
}

// VersionGroup is a bucket of published versions sharing a minor
// release line. Version is the representative group version string
// (e.g. "1.2") that requested versions are matched against.
type VersionGroup struct {
	Name     string    `yaml:"name" json:"name"`
	Version  string    `yaml:"version" json:"version"`
	Versions []Version `yaml:"versions" json:"versions"`
}

// Project is a documented artifact with its own namespace of versions.
// Groups preserve their configured order; lookups depend on it.
type Project struct {
	Name   string         `yaml:"name" json:"name"`
	Groups []VersionGroup `yaml:"groups" json:"groups"`
}

// Catalog is the full set of configured projects. It is loaded once
// and treated as immutable; reloads publish a fresh Catalog through a
// Store rather than mutating an existing one.
type Catalog struct {
	Projects []Project `yaml:"projects" json:"projects"`
}

// FindProject resolves a project by name, case-insensitively.
func (c *Catalog) FindProject(name string) (*Project, bool) {
	for i := range c.Projects {
		if strings.EqualFold(c.Projects[i].Name, name) {
			return &c.Projects[i], true
		}
	}
	return nil, false
}

// FindVersionGroup returns the first configured group whose group
// version shares the requested version's minor line. First match wins;
// no match is a normal outcome, not an error.
func (p *Project) FindVersionGroup(requested string) (*VersionGroup, bool) {
	want := semver.Parse(requested)
	for i := range p.Groups {
		if semver.SameMinorLine(semver.Parse(p.Groups[i].Version), want) {
			return &p.Groups[i], true
		}
	}
	return nil, false
}
