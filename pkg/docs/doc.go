// Package docs implements the documentation request pipeline: version
// alias resolution and archive-backed file serving.
//
// A request for /{project}/{version}/... moves through a fixed
// sequence:
//
//  1. A bare /{project}/{version} request 302s to the trailing-slash
//     form before anything else, so relative links inside served pages
//     resolve correctly.
//  2. If the project is configured, the requested version is matched
//     against the project's version groups and the group's latest
//     member is computed (LatestOf). When the latest differs from the
//     requested string, the response is a 302 with the version
//     substring replaced in the request path.
//  3. Otherwise the exact (project, version) archive is looked up and
//     the remaining path (empty means index.html) is streamed from it
//     with caching and content-type metadata, or a no-cache 404.
//
// Unresolvable aliases, malformed versions, missing archives, and
// missing files are all normal outcomes: the handler only ever answers
// 302, 200, or 404.
package docs
