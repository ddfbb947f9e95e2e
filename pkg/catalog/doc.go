// Package catalog holds the configured set of documented projects,
// their version groups, and the published versions inside each group.
//
// The catalog is process-wide configuration: loaded once at startup
// from a YAML file, published through a Store, and never mutated. A
// Watcher can republish a freshly parsed catalog when the file changes;
// request handlers always observe a consistent snapshot.
//
// Lookup semantics:
//
//   - FindProject matches project names case-insensitively.
//   - FindVersionGroup walks a project's groups in configured order and
//     returns the first whose group version shares the requested
//     version's minor line (loose semver). No match is a normal
//     "nothing to resolve" outcome.
package catalog
