// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/testutil"
)

func TestGetSurvey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResponseHandler(db, cfg)

	surveyID, _, slug := testutil.CreateTestSurvey(t, db, cfg, models.StatusOpen, testutil.BranchingDefinition())

	t.Run("published survey", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/surveys/"+slug, nil, nil)
		req.SetPathValue("slug", slug)
		w := httptest.NewRecorder()
		handler.GetSurvey(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var survey models.Survey
		testutil.AssertJSON(t, w, &survey)
		assert.Equal(t, surveyID, survey.ID)
		assert.Len(t, survey.Nodes, 4)
	})

	t.Run("unknown slug", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/surveys/missing", nil, nil)
		req.SetPathValue("slug", "missing")
		w := httptest.NewRecorder()
		handler.GetSurvey(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestSubmitResponse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResponseHandler(db, cfg)

	surveyID, _, slug := testutil.CreateTestSurvey(t, db, cfg, models.StatusOpen, testutil.BranchingDefinition())

	submit := func(slug string, body interface{}) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/surveys/"+slug+"/responses", body, map[string]string{
			"X-Forwarded-For": "203.0.113.7",
		})
		req.SetPathValue("slug", slug)
		w := httptest.NewRecorder()
		handler.SubmitResponse(w, req)
		return w
	}

	t.Run("answers keep their order", func(t *testing.T) {
		body := models.SubmitResponseRequest{
			Answers:    testutil.Answers("q1", "Sport", "q2_sport", "Football"),
			Respondent: &models.Respondent{Demographic: map[string]string{"age": "18-24"}},
		}
		w := submit(slug, body)

		testutil.AssertStatus(t, w, http.StatusCreated)
		var resp models.SubmitResponseResponse
		testutil.AssertJSON(t, w, &resp)
		require.NotEmpty(t, resp.ResponseID)

		responses, err := loadResponses(db, surveyID)
		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.Equal(t, resp.ResponseID, responses[0].ID)
		assert.Equal(t, body.Answers, responses[0].Answers)
		require.NotNil(t, responses[0].Respondent)
		assert.Equal(t, "18-24", responses[0].Respondent.Demographic["age"])
		require.NotNil(t, responses[0].IPHash)
		assert.Len(t, *responses[0].IPHash, 16)
	})

	t.Run("unknown question", func(t *testing.T) {
		w := submit(slug, models.SubmitResponseRequest{Answers: testutil.Answers("q9", "x")})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("no answers", func(t *testing.T) {
		w := submit(slug, models.SubmitResponseRequest{Answers: []models.Answer{}})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("closed survey", func(t *testing.T) {
		_, _, closedSlug := testutil.CreateTestSurvey(t, db, cfg, models.StatusClosed, testutil.BranchingDefinition())
		w := submit(closedSlug, models.SubmitResponseRequest{Answers: testutil.Answers("q1", "Sport")})
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("unknown slug", func(t *testing.T) {
		w := submit("missing", models.SubmitResponseRequest{Answers: testutil.Answers("q1", "Sport")})
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestGetResponseCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResponseHandler(db, cfg)

	surveyID, _, slug := testutil.CreateTestSurvey(t, db, cfg, models.StatusOpen, testutil.BranchingDefinition())
	testutil.SubmitTestResponse(t, db, surveyID, testutil.Answers("q1", "Sport"))
	testutil.SubmitTestResponse(t, db, surveyID, testutil.Answers("q1", "Lecture"))
	testutil.SubmitTestResponse(t, db, surveyID, testutil.Answers("q1", "Sport"))

	req := testutil.MakeRequest("GET", "/surveys/"+slug+"/response-count", nil, nil)
	req.SetPathValue("slug", slug)
	w := httptest.NewRecorder()
	handler.GetResponseCount(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp map[string]int
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, 3, resp["response_count"])
}
