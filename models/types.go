package models

import "time"

// Request types

type CreateSurveyRequest struct {
	Title       string      `json:"title" validate:"required,max=200"`
	Description string      `json:"description" validate:"max=2000"`
	CreatorName string      `json:"creator_name" validate:"required,max=100"`
	Questions   []Question  `json:"questions" validate:"dive"`
	Nodes       []GraphNode `json:"nodes" validate:"dive"`
	Edges       []GraphEdge `json:"edges" validate:"dive"`
}

type UpdateDefinitionRequest struct {
	Questions []Question  `json:"questions" validate:"dive"`
	Nodes     []GraphNode `json:"nodes" validate:"dive"`
	Edges     []GraphEdge `json:"edges" validate:"dive"`
}

type SubmitResponseRequest struct {
	Answers    []Answer    `json:"answers" validate:"required,min=1,dive"`
	Respondent *Respondent `json:"respondent"`
}

// PathSelection names the paths an analysis request works on.
// Names refer to the output of GET /surveys/{id}/paths.
type PathSelection struct {
	PathNames     []string   `json:"path_names"`
	SelectedPaths [][]string `json:"selected_paths"`
}

type LayoutRequest struct {
	PathSelection
	Reorganize bool `json:"reorganize"`
}

type CreateAnalysisGroupRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	PathSelection
}

// Response types

type CreateSurveyResponse struct {
	SurveyID string `json:"survey_id"`
	AdminKey string `json:"admin_key"`
}

type PublishSurveyResponse struct {
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type CloseSurveyResponse struct {
	ClosedAt      time.Time `json:"closed_at"`
	ResponseCount int       `json:"response_count"`
}

type SubmitResponseResponse struct {
	ResponseID string `json:"response_id"`
	Message    string `json:"message"`
}

type SurveyAdminResponse struct {
	Survey        Survey     `json:"survey"`
	ResponseCount int        `json:"response_count"`
	LastResponse  string     `json:"last_response,omitempty"`
	LastSubmitted *time.Time `json:"last_submitted_at,omitempty"`
}

type ResponseListResponse struct {
	Responses []Response `json:"responses"`
	Total     int        `json:"total"`
}

type PathGroup struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Paths []int  `json:"paths"`
}

type PathsResponse struct {
	Paths         []NamedPath          `json:"paths"`
	Groups        map[string]PathGroup `json:"groups"`
	GroupOrder    []string             `json:"group_order"`
	ResponseCount int                  `json:"response_count"`
	// Colors maps path names to the colour they were compared in
	Colors map[string]string `json:"colors"`
}

type PathIntersection struct {
	A     int `json:"a"`
	B     int `json:"b"`
	Count int `json:"count"`
}

type FilterResponse struct {
	Matched       []Response         `json:"matched"`
	PerPathCounts []int              `json:"per_path_counts"`
	Intersections []PathIntersection `json:"intersections"`
	Total         int                `json:"total"`
}

type PathSubtree struct {
	Name   string `json:"name,omitempty"`
	Color  string `json:"color"`
	Layout Layout `json:"layout"`
}

type PathSubtreesResponse struct {
	Subtrees []PathSubtree `json:"subtrees"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
