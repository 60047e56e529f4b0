// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
)

type SurveyHandler struct {
	db   *db.Conn
	cfg  cliparse.Config
	keys auth.Keyring
}

func NewSurveyHandler(conn *db.Conn, cfg cliparse.Config) *SurveyHandler {
	return &SurveyHandler{db: conn, cfg: cfg, keys: auth.NewKeyring(cfg.AdminKeySalt, cfg.SurveySlugSalt)}
}

// checkDefinition rejects definitions mixing both shapes and graph edges
// pointing at unknown nodes.
func checkDefinition(def models.Definition) error {
	if len(def.Questions) > 0 && len(def.Nodes) > 0 {
		return errors.New("definition must use either questions or nodes, not both")
	}
	seen := make(map[string]bool, len(def.Questions)+len(def.Nodes))
	for _, q := range def.Questions {
		if seen[q.ID] {
			return errors.New("duplicate question id: " + q.ID)
		}
		seen[q.ID] = true
	}
	for _, n := range def.Nodes {
		if seen[n.ID] {
			return errors.New("duplicate node id: " + n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range def.Edges {
		if !seen[e.Source] || !seen[e.Target] {
			return errors.New("edge references unknown node: " + e.Source + " -> " + e.Target)
		}
	}
	return nil
}

// CreateSurvey handles POST /surveys
func (h *SurveyHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	def := models.Definition{Questions: req.Questions, Nodes: req.Nodes, Edges: req.Edges}
	if err := checkDefinition(def); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Generate survey ID
	surveyID, err := auth.NewSurveyID()
	if err != nil {
		slog.Error("failed to generate survey ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create survey")
		return
	}

	// Generate admin key
	adminKey := h.keys.AdminKey(surveyID)

	raw, err := json.Marshal(def)
	if err != nil {
		slog.Error("failed to encode definition", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create survey")
		return
	}

	// Insert survey into database
	_, err = h.db.Exec(`
		INSERT INTO survey (id, title, description, creator_name, kind, status, definition, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, surveyID, req.Title, req.Description, req.CreatorName, kindOf(def), models.StatusDraft, string(raw), time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create survey")
		return
	}

	slog.Info("survey created", "survey_id", surveyID, "creator", req.CreatorName, "kind", kindOf(def))

	// Return response
	middleware.JSONResponse(w, http.StatusCreated, models.CreateSurveyResponse{
		SurveyID: surveyID,
		AdminKey: adminKey,
	})
}

// GetSurveyAdmin handles GET /surveys/:id/admin
// Returns the full survey and a response summary for the owner
func (h *SurveyHandler) GetSurveyAdmin(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	if err := h.keys.Authorize(r, surveyID); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	survey, err := loadSurvey(h.db, surveyID)
	if err != nil {
		surveyError(w, err)
		return
	}

	count, err := countResponses(h.db, surveyID)
	if err != nil {
		slog.Error("failed to count responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.SurveyAdminResponse{Survey: survey, ResponseCount: count}

	var last time.Time
	err = h.db.QueryRow(`
		SELECT submitted_at FROM response
		WHERE survey_id = ?
		ORDER BY submitted_at DESC
		LIMIT 1
	`, surveyID).Scan(&last)
	switch {
	case err == nil:
		resp.LastSubmitted = &last
		resp.LastResponse = humanize.Time(last)
	case errors.Is(err, sql.ErrNoRows):
	default:
		slog.Error("failed to query last response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// UpdateDefinition handles PUT /surveys/:id/definition
// Only drafts can change shape; published surveys keep the definition
// their responses were collected against.
func (h *SurveyHandler) UpdateDefinition(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	if err := h.keys.Authorize(r, surveyID); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.UpdateDefinitionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	def := models.Definition{Questions: req.Questions, Nodes: req.Nodes, Edges: req.Edges}
	if err := checkDefinition(def); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var status string
	err := h.db.QueryRow("SELECT status FROM survey WHERE id = ?", surveyID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot change the definition of a published survey")
		return
	}

	raw, err := json.Marshal(def)
	if err != nil {
		slog.Error("failed to encode definition", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update survey")
		return
	}

	_, err = h.db.Exec(`
		UPDATE survey SET definition = ?, kind = ? WHERE id = ?
	`, string(raw), kindOf(def), surveyID)
	if err != nil {
		slog.Error("failed to update definition", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update survey")
		return
	}

	slog.Info("survey definition updated", "survey_id", surveyID,
		"questions", len(def.Questions), "nodes", len(def.Nodes), "edges", len(def.Edges))

	w.WriteHeader(http.StatusNoContent)
}

// PublishSurvey handles POST /surveys/:id/publish
func (h *SurveyHandler) PublishSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	if err := h.keys.Authorize(r, surveyID); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	survey, err := loadSurvey(h.db, surveyID)
	if err != nil {
		surveyError(w, err)
		return
	}

	if survey.Status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey is not in draft status")
		return
	}

	if len(survey.Questions) == 0 && len(survey.Nodes) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Survey must have at least one question")
		return
	}

	// Generate share slug
	shareSlug := h.keys.ShareSlug(surveyID)

	// Update survey to open status
	_, err = h.db.Exec(`
		UPDATE survey
		SET status = ?, share_slug = ?
		WHERE id = ?
	`, models.StatusOpen, shareSlug, surveyID)

	if err != nil {
		slog.Error("failed to publish survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish survey")
		return
	}

	slog.Info("survey published", "survey_id", surveyID, "share_slug", shareSlug)

	shareURL := strings.TrimRight(h.cfg.BaseURL, "/") + "/surveys/" + shareSlug

	middleware.JSONResponse(w, http.StatusOK, models.PublishSurveyResponse{
		ShareSlug: shareSlug,
		ShareURL:  shareURL,
	})
}

// CloseSurvey handles POST /surveys/:id/close
func (h *SurveyHandler) CloseSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	if err := h.keys.Authorize(r, surveyID); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	closedAt := time.Now().UTC()

	// Begin transaction
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Check survey exists and is open
	var status string
	err = tx.QueryRow("SELECT status FROM survey WHERE id = ?", surveyID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey is not open")
		return
	}

	_, err = tx.Exec(`
		UPDATE survey
		SET status = ?, closed_at = ?
		WHERE id = ?
	`, models.StatusClosed, closedAt, surveyID)

	if err != nil {
		slog.Error("failed to close survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close survey")
		return
	}

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM response WHERE survey_id = ?`, surveyID).Scan(&count); err != nil {
		slog.Error("failed to count responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close survey")
		return
	}

	slog.Info("survey closed", "survey_id", surveyID, "responses", humanize.Comma(int64(count)))

	middleware.JSONResponse(w, http.StatusOK, models.CloseSurveyResponse{
		ClosedAt:      closedAt,
		ResponseCount: count,
	})
}
