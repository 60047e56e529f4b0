// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
)

// TestDBURL is the connection string for the test database
const TestDBURL = ":memory:"

// submitted orders test responses; each insert gets the next second
var (
	submitted atomic.Int64
	epoch     = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
)

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *db.Conn {
	t.Helper()

	conn, err := db.Open(db.DialectSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    TestDBURL,
		DatabaseType:   cliparse.DatabaseSQLite,
		AdminKeySalt:   "test-admin-salt",
		SurveySlugSalt: "test-slug-salt",
		BaseURL:        "https://quickly-survey.test",
		LogLevel:       "error",
	}
}

// BranchingDefinition is start -> q1 -> {q2_sport, q2_lecture}.
func BranchingDefinition() models.Definition {
	node := func(id, text, typ string) models.GraphNode {
		return models.GraphNode{ID: id, Data: models.NodeData{Text: text, QuestionType: typ}}
	}
	return models.Definition{
		Nodes: []models.GraphNode{
			{ID: "start"},
			node("q1", "What did you attend?", "multiple-choice"),
			node("q2_sport", "Which sport?", "text"),
			node("q2_lecture", "Which lecture?", "text"),
		},
		Edges: []models.GraphEdge{
			{Source: "start", Target: "q1"},
			{Source: "q1", Target: "q2_sport", Label: "Sport"},
			{Source: "q1", Target: "q2_lecture", Label: "Lecture"},
		},
	}
}

// CreateTestSurvey creates a survey in the database and returns its ID and admin key
// status should be "draft", "open", or "closed"
func CreateTestSurvey(t *testing.T, conn *db.Conn, cfg cliparse.Config, status string, def models.Definition) (surveyID, adminKey, shareSlug string) {
	t.Helper()

	keys := auth.NewKeyring(cfg.AdminKeySalt, cfg.SurveySlugSalt)
	surveyID, _ = auth.NewSurveyID()
	adminKey = keys.AdminKey(surveyID)

	var slug *string
	if status == models.StatusOpen || status == models.StatusClosed {
		s := keys.ShareSlug(surveyID)
		slug = &s
		shareSlug = s
	}

	var closedAt *time.Time
	if status == models.StatusClosed {
		now := time.Now().UTC()
		closedAt = &now
	}

	kind := models.KindStatic
	if len(def.Nodes) > 0 {
		kind = models.KindDynamic
	}

	raw, err := json.Marshal(def)
	if err != nil {
		t.Fatalf("Failed to encode definition: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO survey (id, title, description, creator_name, kind, status, share_slug, definition, closed_at, created_at)
		VALUES (?, 'Test Survey', 'A test survey', 'TestUser', ?, ?, ?, ?, ?, ?)
	`, surveyID, kind, status, slug, string(raw), closedAt, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}

	return surveyID, adminKey, shareSlug
}

// Answers builds an answer list from question id / answer pairs.
func Answers(pairs ...string) []models.Answer {
	answers := make([]models.Answer, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		answers = append(answers, models.Answer{QuestionID: pairs[i], Answer: pairs[i+1]})
	}
	return answers
}

// SubmitTestResponse stores a response directly and returns its ID.
// Responses are stamped one second apart, in call order.
func SubmitTestResponse(t *testing.T, conn *db.Conn, surveyID string, answers []models.Answer) string {
	t.Helper()

	responseID := uuid.NewString()
	raw, err := json.Marshal(answers)
	if err != nil {
		t.Fatalf("Failed to encode answers: %v", err)
	}

	submittedAt := epoch.Add(time.Duration(submitted.Add(1)) * time.Second)
	_, err = conn.Exec(`
		INSERT INTO response (id, survey_id, answers, submitted_at)
		VALUES (?, ?, ?, ?)
	`, responseID, surveyID, string(raw), submittedAt)
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	return responseID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AdminHeaders returns the header map carrying adminKey.
func AdminHeaders(adminKey string) map[string]string {
	return map[string]string{auth.AdminKeyHeader: adminKey}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
