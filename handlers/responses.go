// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
)

type ResponseHandler struct {
	db   *db.Conn
	cfg  cliparse.Config
	keys auth.Keyring
}

func NewResponseHandler(conn *db.Conn, cfg cliparse.Config) *ResponseHandler {
	return &ResponseHandler{db: conn, cfg: cfg, keys: auth.NewKeyring(cfg.AdminKeySalt, cfg.SurveySlugSalt)}
}

// GetSurvey handles GET /surveys/:slug
// Returns the public definition of a published survey
func (h *ResponseHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	survey, err := loadSurveyBySlug(h.db, shareSlug)
	if err != nil {
		surveyError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, survey)
}

// SubmitResponse handles POST /surveys/:slug/responses
// Answers are stored in the order given; that order is the respondent's
// route through the survey.
func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	survey, err := loadSurveyBySlug(h.db, shareSlug)
	if err != nil {
		surveyError(w, err)
		return
	}

	// Can only respond to open surveys
	if survey.Status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey is not accepting responses")
		return
	}

	// Verify all answers are for known questions
	def := definitionOf(survey)
	for _, a := range req.Answers {
		if !def.HasQuestion(a.QuestionID) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid question_id: "+a.QuestionID)
			return
		}
	}

	answers, err := json.Marshal(req.Answers)
	if err != nil {
		slog.Error("failed to encode answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
		return
	}
	var respondent sql.NullString
	if req.Respondent != nil {
		raw, err := json.Marshal(req.Respondent)
		if err != nil {
			slog.Error("failed to encode respondent", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
			return
		}
		respondent = sql.NullString{String: string(raw), Valid: true}
	}

	ipHash := h.keys.RespondentHash(middleware.GetClientIP(r))

	responseID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO response (id, survey_id, answers, respondent, ip_hash, user_agent, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, responseID, survey.ID, string(answers), respondent, ipHash, r.UserAgent(), time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
		return
	}

	middleware.ResponseSubmitted()
	slog.Info("response submitted", "survey_id", survey.ID, "response_id", responseID, "answers", len(req.Answers))

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponseResponse{
		ResponseID: responseID,
		Message:    "Response recorded",
	})
}

// GetResponseCount handles GET /surveys/:slug/response-count
func (h *ResponseHandler) GetResponseCount(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var surveyID string
	err := h.db.QueryRow(`SELECT id FROM survey WHERE share_slug = ?`, shareSlug).Scan(&surveyID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	count, err := countResponses(h.db, surveyID)
	if err != nil {
		slog.Error("failed to count responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]int{
		"response_count": count,
	})
}
