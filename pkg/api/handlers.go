package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/mallard/pkg/catalog"
	"github.com/platinummonkey/mallard/pkg/docs"
	"github.com/platinummonkey/mallard/pkg/httputil"
)

// Handler serves the v1 JSON API over the catalog.
type Handler struct {
	catalogs *catalog.Store
}

// NewHandler creates a new API handler backed by the given catalog store.
func NewHandler(catalogs *catalog.Store) *Handler {
	return &Handler{catalogs: catalogs}
}

// RegisterRoutes registers the v1 API routes. These must be registered
// before the documentation routes so that /api is not captured as a project
// name.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/projects", h.listProjects).Methods("GET")
	router.HandleFunc("/api/v1/projects/{project}", h.getProject).Methods("GET")
}

func (h *Handler) listProjects(w http.ResponseWriter, _ *http.Request) {
	cat := h.catalogs.Current()

	summaries := make([]ProjectSummary, 0, len(cat.Projects))
	for _, p := range cat.Projects {
		summaries = append(summaries, ProjectSummary{Name: p.Name})
	}
	httputil.WriteSuccess(w, projectsSuccess(summaries))
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["project"]

	cat := h.catalogs.Current()
	project, ok := cat.FindProject(name)
	if !ok {
		httputil.WriteJSON(w, http.StatusNotFound, projectError("project not found"))
		return
	}

	detail := &ProjectDetail{
		Name:   project.Name,
		Groups: make([]GroupDetail, 0, len(project.Groups)),
	}
	for i := range project.Groups {
		group := &project.Groups[i]
		gd := GroupDetail{
			Name:     group.Name,
			Version:  group.Version,
			Versions: make([]string, 0, len(group.Versions)),
		}
		for _, v := range group.Versions {
			gd.Versions = append(gd.Versions, v.Name)
		}
		if latest, ok := docs.LatestOf(group); ok {
			gd.Latest = latest.Name
		}
		detail.Groups = append(detail.Groups, gd)
	}
	httputil.WriteSuccess(w, projectSuccess(detail))
}
