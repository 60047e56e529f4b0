// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
)

const surveyColumns = `
	SELECT id, title, description, creator_name, kind, status,
	       share_slug, definition, created_at, closed_at
	FROM survey`

// loadSurvey fetches a survey by id
func loadSurvey(conn *db.Conn, surveyID string) (models.Survey, error) {
	return scanSurvey(conn.QueryRow(surveyColumns+` WHERE id = ?`, surveyID))
}

// loadSurveyBySlug fetches a published survey by its share slug
func loadSurveyBySlug(conn *db.Conn, slug string) (models.Survey, error) {
	return scanSurvey(conn.QueryRow(surveyColumns+` WHERE share_slug = ?`, slug))
}

func scanSurvey(row *sql.Row) (models.Survey, error) {
	var s models.Survey
	var definition string
	err := row.Scan(
		&s.ID, &s.Title, &s.Description, &s.CreatorName, &s.Kind, &s.Status,
		&s.ShareSlug, &definition, &s.CreatedAt, &s.ClosedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Survey{}, db.ErrNotFound
	}
	if err != nil {
		return models.Survey{}, fmt.Errorf("scan survey: %w", err)
	}

	var def models.Definition
	if err := json.Unmarshal([]byte(definition), &def); err != nil {
		return models.Survey{}, fmt.Errorf("decode definition of %s: %w", s.ID, err)
	}
	s.Questions = def.Questions
	s.Nodes = def.Nodes
	s.Edges = def.Edges
	return s, nil
}

// definitionOf returns the stored shape of a survey's questions
func definitionOf(s models.Survey) models.Definition {
	return models.Definition{Questions: s.Questions, Nodes: s.Nodes, Edges: s.Edges}
}

// kindOf derives the survey kind from its definition
func kindOf(def models.Definition) string {
	if len(def.Nodes) > 0 {
		return models.KindDynamic
	}
	return models.KindStatic
}

// loadResponses returns the survey's responses in submission order
func loadResponses(conn *db.Conn, surveyID string) ([]models.Response, error) {
	rows, err := conn.Query(`
		SELECT id, survey_id, answers, respondent, ip_hash, submitted_at
		FROM response
		WHERE survey_id = ?
		ORDER BY submitted_at, id
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	responses := []models.Response{}
	for rows.Next() {
		var resp models.Response
		var answers string
		var respondent sql.NullString
		if err := rows.Scan(&resp.ID, &resp.SurveyID, &answers, &respondent, &resp.IPHash, &resp.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		if err := json.Unmarshal([]byte(answers), &resp.Answers); err != nil {
			return nil, fmt.Errorf("decode answers of %s: %w", resp.ID, err)
		}
		if respondent.Valid && respondent.String != "" {
			resp.Respondent = &models.Respondent{}
			if err := json.Unmarshal([]byte(respondent.String), resp.Respondent); err != nil {
				return nil, fmt.Errorf("decode respondent of %s: %w", resp.ID, err)
			}
		}
		responses = append(responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return responses, nil
}

// countResponses returns how many responses the survey has
func countResponses(conn *db.Conn, surveyID string) (int, error) {
	var n int
	err := conn.QueryRow(`SELECT COUNT(*) FROM response WHERE survey_id = ?`, surveyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count responses: %w", err)
	}
	return n, nil
}

// surveyError writes the response for a failed survey lookup
func surveyError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	slog.Error("failed to load survey", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}
