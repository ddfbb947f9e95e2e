// Package api implements the v1 JSON API for browsing the documentation
// catalog.
//
// # Endpoints
//
//	GET /api/v1/projects            - list all catalog projects
//	GET /api/v1/projects/{project}  - one project with its version groups
//
// # Response Envelope
//
// Every response carries an "ok" boolean. Successful responses include the
// payload field; failures include an "error" message instead:
//
//	{"ok": true, "projects": [{"name": "duckling"}]}
//	{"ok": false, "error": "project not found"}
//
// The single-project view resolves the latest version of each group with the
// same algorithm the documentation redirects use, so clients can construct
// stable links without replicating the version ordering.
package api
