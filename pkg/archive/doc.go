// Package archive mounts packaged, read-only documentation trees and
// owns their lifecycle.
//
// A documentation tree is one zip per exact (project, version),
// located by a Source: either a local directory
// (<root>/<project>/<version>.zip) or an S3 bucket with the same key
// layout, downloaded into a local cache before mounting.
//
// The Provider opens each archive at most once and keeps the handle
// for the process lifetime. Concurrent first requests for the same key
// collapse into a single open (singleflight), and keys confirmed
// absent are remembered in a short-TTL LRU so missing versions don't
// cause repeated source hits. Archives for SNAPSHOT versions can be
// refreshed on a cron schedule, since snapshots are republished
// upstream in place.
package archive
