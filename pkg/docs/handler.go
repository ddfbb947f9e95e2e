package docs

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/mallard/pkg/archive"
	"github.com/platinummonkey/mallard/pkg/catalog"
	"github.com/platinummonkey/mallard/pkg/observability"
)

// versionPattern matches published documentation version strings:
// digits and dots, optionally followed by a pre/SNAPSHOT tag and
// trailing digits (e.g. "1.2", "1.2.5", "1.19-SNAPSHOT", "1.20.2-pre2").
const versionPattern = `[0-9.]+-?(?:pre|SNAPSHOT)?(?:[0-9.]+)?`

const (
	markerHeader = "X-Mallard"
	markerValue  = "Quack"

	defaultCacheControl = "max-age=600"    // 10 minutes
	staticCacheControl  = "max-age=604800" // 7 days
	noCacheControl      = "no-cache"

	fallbackMediaType = "application/octet-stream"
)

// mediaTypes maps known entry suffixes to content types; the longest
// matching suffix wins, everything else falls back to binary.
var mediaTypes = map[string]string{
	".css": "text/css",
	".js":  "application/javascript",
	".zip": "application/zip",
}

// staticSuffixes name the long-cacheable asset types. Entries whose
// path contains "search-index" are excluded: those are regenerated
// with every publish despite their suffix.
var staticSuffixes = []string{".js", ".png", ".css", ".html"}

// ArchiveProvider returns the mounted tree for an exact
// (project, version) key, or false when none is published.
type ArchiveProvider interface {
	ContentsFor(ctx context.Context, project, version string) (archive.Archive, bool)
}

// Handler serves versioned documentation trees, resolving minor-line
// version aliases to the newest published patch via redirect before
// streaming files out of the matching archive.
type Handler struct {
	catalogs *catalog.Store
	archives ArchiveProvider
	logger   *observability.Logger
	metrics  *observability.Metrics
}

// NewHandler creates a documentation handler
func NewHandler(catalogs *catalog.Store, archives ArchiveProvider, logger *observability.Logger, metrics *observability.Metrics) *Handler {
	return &Handler{
		catalogs: catalogs,
		archives: archives,
		logger:   logger,
		metrics:  metrics,
	}
}

// RegisterRoutes configures the documentation routes. These match
// bare project/version paths, so register them after any API routes.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/{project:[a-z]+}/{version:"+versionPattern+"}", h.redirectTrailingSlash).Methods(http.MethodGet)
	router.HandleFunc("/{project:[a-z]+}/{version:"+versionPattern+"}/{path:.*}", h.serve).Methods(http.MethodGet)
	router.NotFoundHandler = http.HandlerFunc(h.notFoundHandler)
}

// redirectTrailingSlash handles GET /{project}/{version}. The redirect
// is unconditional and happens before any version resolution so that
// relative links inside a served tree resolve against the version
// directory.
func (h *Handler) redirectTrailingSlash(w http.ResponseWriter, r *http.Request) {
	if h.metrics != nil {
		h.metrics.RedirectsTotal.WithLabelValues("trailing_slash").Inc()
	}
	http.Redirect(w, r, r.URL.Path+"/", http.StatusFound)
}

// serve handles GET /{project}/{version}/**.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	project := vars["project"]
	version := vars["version"]

	// Version alias resolution: an unknown project means there is no
	// alias to resolve, not an error; the request falls through to the
	// archive lookup with the literal version.
	cat := h.catalogs.Current()
	if p, ok := cat.FindProject(project); ok {
		if group, ok := p.FindVersionGroup(version); ok {
			if latest, ok := LatestOf(group); ok && latest.Name != version {
				target := strings.Replace(r.URL.Path, version, latest.Name, 1)
				if h.metrics != nil {
					h.metrics.RedirectsTotal.WithLabelValues("version_alias").Inc()
				}
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
		}
	}

	contents, ok := h.archives.ContentsFor(r.Context(), project, version)
	if !ok {
		h.notFound(w)
		return
	}

	entry := vars["path"]
	if entry == "" {
		entry = "index.html"
	}
	if !contents.Exists(entry) {
		h.notFound(w)
		return
	}

	file, err := contents.Open(entry)
	if err != nil {
		h.notFound(w)
		return
	}
	defer file.Close()

	header := w.Header()
	header.Set("Cache-Control", cacheControlFor(entry))
	header.Set("Content-Disposition", "inline")
	header.Set("Content-Type", mediaTypeFor(entry))
	header.Set(markerHeader, markerValue)

	written, err := io.Copy(w, file)
	if err != nil {
		h.logger.WithField("request_id", observability.GetRequestID(r.Context())).WithError(err).WithFields(map[string]interface{}{
			"project": project,
			"version": version,
			"path":    entry,
		}).Warn("Documentation stream aborted")
	}
	if h.metrics != nil {
		h.metrics.DocServedBytes.Add(float64(written))
	}
}

func (h *Handler) notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	h.notFound(w)
}

func (h *Handler) notFound(w http.ResponseWriter) {
	if h.metrics != nil {
		h.metrics.DocNotFoundTotal.Inc()
	}
	w.Header().Set("Cache-Control", noCacheControl)
	w.WriteHeader(http.StatusNotFound)
}

func cacheControlFor(entry string) string {
	if strings.Contains(entry, "search-index") {
		return defaultCacheControl
	}
	for _, suffix := range staticSuffixes {
		if strings.HasSuffix(entry, suffix) {
			return staticCacheControl
		}
	}
	return defaultCacheControl
}

func mediaTypeFor(entry string) string {
	mediaType := fallbackMediaType
	longest := 0
	for suffix, mt := range mediaTypes {
		if strings.HasSuffix(entry, suffix) && len(suffix) > longest {
			mediaType = mt
			longest = len(suffix)
		}
	}
	return mediaType
}
