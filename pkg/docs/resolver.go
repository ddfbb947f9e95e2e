package docs

import (
	"github.com/platinummonkey/mallard/pkg/catalog"
	"github.com/platinummonkey/mallard/pkg/semver"
)

// LatestOf returns the version clients of a group's minor line should
// be redirected to, or false for an empty group.
//
// A candidate replaces the running latest when it outranks it under
// standard ordering, or when its patch number alone is greater. The
// patch comparison applies independently: it can promote a candidate
// that standard ordering would rank lower when pre-release tags are
// involved (pinned by TestLatestOfPatchOverride).
func LatestOf(group *catalog.VersionGroup) (catalog.Version, bool) {
	var latest catalog.Version
	var latestSem semver.Version
	found := false

	for _, candidate := range group.Versions {
		sem := semver.Parse(candidate.Name)
		if !found || sem.GreaterThan(latestSem) || sem.Patch > latestSem.Patch {
			latest = candidate
			latestSem = sem
			found = true
		}
	}
	return latest, found
}
