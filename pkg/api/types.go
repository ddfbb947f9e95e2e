package api

// ProjectSummary is a single entry in the project listing.
type ProjectSummary struct {
	Name string `json:"name"`
}

// GroupDetail describes one version group of a project, including the
// resolved latest version for that group.
type GroupDetail struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Latest   string   `json:"latest,omitempty"`
	Versions []string `json:"versions"`
}

// ProjectDetail is the full view of a single project.
type ProjectDetail struct {
	Name   string        `json:"name"`
	Groups []GroupDetail `json:"groups"`
}

// ProjectsResponse is the envelope for the project listing endpoint. Error
// is populated only when OK is false.
type ProjectsResponse struct {
	OK       bool             `json:"ok"`
	Projects []ProjectSummary `json:"projects,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// ProjectResponse is the envelope for the single-project endpoint.
type ProjectResponse struct {
	OK      bool           `json:"ok"`
	Project *ProjectDetail `json:"project,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func projectsSuccess(projects []ProjectSummary) ProjectsResponse {
	return ProjectsResponse{OK: true, Projects: projects}
}

func projectSuccess(project *ProjectDetail) ProjectResponse {
	return ProjectResponse{OK: true, Project: project}
}

func projectError(message string) ProjectResponse {
	return ProjectResponse{OK: false, Error: message}
}
