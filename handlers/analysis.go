// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/pathtree"
)

type AnalysisHandler struct {
	db   *db.Conn
	cfg  cliparse.Config
	keys auth.Keyring
	opts pathtree.Options

	mu         sync.Mutex
	registries map[string]*pathtree.Registry
}

func NewAnalysisHandler(conn *db.Conn, cfg cliparse.Config) *AnalysisHandler {
	return &AnalysisHandler{
		db:         conn,
		cfg:        cfg,
		keys:       auth.NewKeyring(cfg.AdminKeySalt, cfg.SurveySlugSalt),
		opts:       pathtree.DefaultOptions(),
		registries: make(map[string]*pathtree.Registry),
	}
}

// registry returns the name and colour memo of a survey
func (h *AnalysisHandler) registry(surveyID string) *pathtree.Registry {
	h.mu.Lock()
	defer h.mu.Unlock()
	reg, ok := h.registries[surveyID]
	if !ok {
		reg = pathtree.NewRegistry()
		h.registries[surveyID] = reg
	}
	return reg
}

// load checks the admin key and fetches the survey with its responses.
// On failure the error response is already written.
func (h *AnalysisHandler) load(w http.ResponseWriter, r *http.Request) (models.Survey, []models.Response, bool) {
	surveyID := r.PathValue("id")
	if err := h.keys.Authorize(r, surveyID); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return models.Survey{}, nil, false
	}

	survey, err := loadSurvey(h.db, surveyID)
	if err != nil {
		surveyError(w, err)
		return models.Survey{}, nil, false
	}

	responses, err := loadResponses(h.db, surveyID)
	if err != nil {
		slog.Error("failed to load responses", "survey_id", surveyID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Survey{}, nil, false
	}
	return survey, responses, true
}

// extract runs path extraction and teaches the survey registry the names.
func (h *AnalysisHandler) extract(survey models.Survey, responses []models.Response) []models.NamedPath {
	defer middleware.ObserveAnalysis("extract", time.Now())
	named := pathtree.Extract(survey, responses)
	h.registry(survey.ID).Learn(named)
	return named
}

// resolveSelection turns path names and question-id lists into paths.
// Names come first, then id lists; a path selected twice is kept once.
// An id list matching an extracted path takes that path's name and answers.
func resolveSelection(survey models.Survey, named []models.NamedPath, sel models.PathSelection) ([]models.NamedPath, error) {
	byName := make(map[string]models.NamedPath, len(named))
	byKey := make(map[models.PathKey]models.NamedPath, len(named))
	for _, np := range named {
		byName[np.Name] = np
		byKey[np.Path.Key()] = np
	}

	seen := make(map[models.PathKey]bool)
	out := []models.NamedPath{}
	add := func(np models.NamedPath) {
		key := np.Path.Key()
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, np)
	}

	for _, name := range sel.PathNames {
		np, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown path: %s", name)
		}
		add(np)
	}
	for _, ids := range sel.SelectedPaths {
		if len(ids) == 0 {
			return nil, errors.New("selected path is empty")
		}
		if np, ok := byKey[models.KeyOf(ids)]; ok {
			add(np)
			continue
		}
		add(models.NamedPath{Path: pathtree.Describe(survey, ids)})
	}
	return out, nil
}

func pathsOf(named []models.NamedPath) []models.Path {
	paths := make([]models.Path, len(named))
	for i, np := range named {
		paths[i] = np.Path
	}
	return paths
}

// selection parses a path selection body and resolves it against the
// extracted paths. On failure the error response is already written.
func (h *AnalysisHandler) selection(w http.ResponseWriter, survey models.Survey, named []models.NamedPath, sel models.PathSelection) ([]models.NamedPath, bool) {
	resolved, err := resolveSelection(survey, named, sel)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return resolved, true
}

// ListResponses handles GET /surveys/:id/responses
func (h *AnalysisHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	_, responses, ok := h.load(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResponseListResponse{
		Responses: responses,
		Total:     len(responses),
	})
}

// GetPaths handles GET /surveys/:id/paths
// Paths already drawn by GetPathSubtrees report their colour.
func (h *AnalysisHandler) GetPaths(w http.ResponseWriter, r *http.Request) {
	survey, responses, ok := h.load(w, r)
	if !ok {
		return
	}

	grouping := pathtree.Group(h.extract(survey, responses))

	reg := h.registry(survey.ID)
	colors := make(map[string]string)
	for _, np := range grouping.Paths {
		if a, ok := reg.Lookup(np.Path); ok {
			colors[np.Name] = a.Color
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.PathsResponse{
		Paths:         grouping.Paths,
		Groups:        grouping.Groups,
		GroupOrder:    grouping.Order,
		ResponseCount: len(responses),
		Colors:        colors,
	})
}

// GetLayout handles POST /surveys/:id/layout
// Counts come from the responses matching the selection, or from all
// responses when nothing is selected. An empty body selects nothing.
func (h *AnalysisHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	var req models.LayoutRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	survey, responses, ok := h.load(w, r)
	if !ok {
		return
	}

	resolved, ok := h.selection(w, survey, h.extract(survey, responses), req.PathSelection)
	if !ok {
		return
	}
	paths := pathsOf(resolved)

	defer middleware.ObserveAnalysis("layout", time.Now())
	counts := pathtree.CountAnswers(pathtree.FilterByPaths(responses, paths).Matched)

	var layout models.Layout
	if req.Reorganize {
		layout = pathtree.LayoutSelection(survey, counts, paths, h.opts)
	} else {
		layout = pathtree.Layout(survey, counts, paths, h.opts)
	}

	slog.Debug("layout computed", "survey_id", survey.ID, "nodes", len(layout.Nodes),
		"selected", len(paths), "reorganize", req.Reorganize)

	middleware.JSONResponse(w, http.StatusOK, layout)
}

// FilterResponses handles POST /surveys/:id/filter
func (h *AnalysisHandler) FilterResponses(w http.ResponseWriter, r *http.Request) {
	var req models.PathSelection
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	survey, responses, ok := h.load(w, r)
	if !ok {
		return
	}

	resolved, ok := h.selection(w, survey, h.extract(survey, responses), req)
	if !ok {
		return
	}

	defer middleware.ObserveAnalysis("filter", time.Now())
	result := pathtree.FilterByPaths(responses, pathsOf(resolved))

	middleware.JSONResponse(w, http.StatusOK, models.FilterResponse{
		Matched:       result.Matched,
		PerPathCounts: result.PerPath,
		Intersections: result.Intersections,
		Total:         len(responses),
	})
}

// GetPathSubtrees handles POST /surveys/:id/path-subtrees
// Each selected path is drawn on its own in the colour the survey
// registry holds for it.
func (h *AnalysisHandler) GetPathSubtrees(w http.ResponseWriter, r *http.Request) {
	var req models.PathSelection
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	survey, responses, ok := h.load(w, r)
	if !ok {
		return
	}

	resolved, ok := h.selection(w, survey, h.extract(survey, responses), req)
	if !ok {
		return
	}
	if len(resolved) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Select at least one path")
		return
	}

	defer middleware.ObserveAnalysis("subtrees", time.Now())
	reg := h.registry(survey.ID)
	subtrees := make([]models.PathSubtree, 0, len(resolved))
	for i, np := range resolved {
		a := reg.Assign(np.Path)
		name := np.Name
		if name == "" {
			name = a.Name
		}
		subtrees = append(subtrees, models.PathSubtree{
			Name:   name,
			Color:  a.Color,
			Layout: pathtree.BuildColoredSubtree(np.Path, i, a.Color, responses, h.opts),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.PathSubtreesResponse{Subtrees: subtrees})
}

// loadGroups returns the saved groups of a survey, oldest first
func loadGroups(conn *db.Conn, surveyID string) ([]models.AnalysisGroup, error) {
	rows, err := conn.Query(`
		SELECT id, survey_id, name, paths, created_at
		FROM analysis_group
		WHERE survey_id = ?
		ORDER BY created_at, id
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("query analysis groups: %w", err)
	}
	defer rows.Close()

	groups := []models.AnalysisGroup{}
	for rows.Next() {
		var g models.AnalysisGroup
		var paths string
		if err := rows.Scan(&g.ID, &g.SurveyID, &g.Name, &paths, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis group: %w", err)
		}
		if err := json.Unmarshal([]byte(paths), &g.Paths); err != nil {
			return nil, fmt.Errorf("decode paths of group %s: %w", g.ID, err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analysis groups: %w", err)
	}
	return groups, nil
}

// ListGroups handles GET /surveys/:id/analysis-groups
// Respondent counts are recomputed against the current responses.
func (h *AnalysisHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	survey, responses, ok := h.load(w, r)
	if !ok {
		return
	}

	groups, err := loadGroups(h.db, survey.ID)
	if err != nil {
		slog.Error("failed to load analysis groups", "survey_id", survey.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range groups {
		groups[i].RespondentCount = pathtree.CountMatching(responses, groups[i].Paths)
	}

	middleware.JSONResponse(w, http.StatusOK, groups)
}

// CreateGroup handles POST /surveys/:id/analysis-groups
func (h *AnalysisHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAnalysisGroupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	survey, responses, ok := h.load(w, r)
	if !ok {
		return
	}

	resolved, ok := h.selection(w, survey, h.extract(survey, responses), req.PathSelection)
	if !ok {
		return
	}
	if len(resolved) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Select at least one path")
		return
	}

	group := models.AnalysisGroup{
		ID:        uuid.NewString(),
		SurveyID:  survey.ID,
		Name:      req.Name,
		Paths:     pathsOf(resolved),
		CreatedAt: time.Now().UTC(),
	}
	group.RespondentCount = pathtree.CountMatching(responses, group.Paths)

	raw, err := json.Marshal(group.Paths)
	if err != nil {
		slog.Error("failed to encode paths", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save group")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO analysis_group (id, survey_id, name, paths, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, group.ID, group.SurveyID, group.Name, string(raw), group.CreatedAt)
	if err != nil {
		slog.Error("failed to insert analysis group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save group")
		return
	}

	slog.Info("analysis group created", "survey_id", survey.ID, "group_id", group.ID, "paths", len(group.Paths))

	middleware.JSONResponse(w, http.StatusCreated, group)
}

// DeleteGroup handles DELETE /surveys/:id/analysis-groups/:groupID
func (h *AnalysisHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	if err := h.keys.Authorize(r, surveyID); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	groupID := r.PathValue("groupID")
	res, err := h.db.Exec(`
		DELETE FROM analysis_group WHERE id = ? AND survey_id = ?
	`, groupID, surveyID)
	if err != nil {
		slog.Error("failed to delete analysis group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	n, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Analysis group not found")
		return
	}

	slog.Info("analysis group deleted", "survey_id", surveyID, "group_id", groupID)

	w.WriteHeader(http.StatusNoContent)
}
