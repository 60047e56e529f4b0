// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/pathtree"
	"github.com/danielhkuo/quickly-survey/testutil"
)

// TestConcurrentResponseSubmissions verifies that simultaneous submissions
// are all stored exactly once
func TestConcurrentResponseSubmissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	responseHandler := NewResponseHandler(db, cfg)

	surveyID, _, shareSlug := testutil.CreateTestSurvey(t, db, cfg, models.StatusOpen, testutil.BranchingDefinition())

	numRespondents := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRespondents; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			answers := testutil.Answers("q1", "Sport", "q2_sport", fmt.Sprintf("Sport %d", idx))
			if idx%2 == 1 {
				answers = testutil.Answers("q1", "Lecture", "q2_lecture", fmt.Sprintf("Lecture %d", idx))
			}
			req := testutil.MakeRequest("POST", "/surveys/"+shareSlug+"/responses",
				models.SubmitResponseRequest{Answers: answers}, nil)
			req.SetPathValue("slug", shareSlug)
			w := httptest.NewRecorder()

			responseHandler.SubmitResponse(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numRespondents {
		t.Errorf("Expected %d successful submissions, got %d", numRespondents, successCount.Load())
	}

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM response WHERE survey_id = ?", surveyID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count responses: %v", err)
	}
	if count != numRespondents {
		t.Errorf("Expected %d responses in database, got %d", numRespondents, count)
	}
}

// TestConcurrentSurveyClose verifies that exactly one of several concurrent
// close requests wins
func TestConcurrentSurveyClose(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	surveyHandler := NewSurveyHandler(db, cfg)

	surveyID, adminKey, _ := testutil.CreateTestSurvey(t, db, cfg, models.StatusOpen, testutil.BranchingDefinition())

	numAttempts := 3
	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/surveys/"+surveyID+"/close", nil, testutil.AdminHeaders(adminKey))
			req.SetPathValue("id", surveyID)
			w := httptest.NewRecorder()

			surveyHandler.CloseSurvey(w, req)

			switch w.Code {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful close, got %d", successCount.Load())
	}
	if conflictCount.Load() != int32(numAttempts-1) {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflictCount.Load())
	}

	var status string
	if err := db.QueryRow("SELECT status FROM survey WHERE id = ?", surveyID).Scan(&status); err != nil {
		t.Fatalf("Failed to query survey: %v", err)
	}
	if status != models.StatusClosed {
		t.Errorf("Expected survey to be closed, got %s", status)
	}
}

// TestConcurrentPathSubtrees verifies that path colours stay consistent
// when many comparisons run at once against one survey
func TestConcurrentPathSubtrees(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	analysisHandler := NewAnalysisHandler(db, cfg)

	surveyID, adminKey, _ := testutil.CreateTestSurvey(t, db, cfg, models.StatusOpen, testutil.BranchingDefinition())
	testutil.SubmitTestResponse(t, db, surveyID, testutil.Answers("q1", "Sport", "q2_sport", "Football"))
	testutil.SubmitTestResponse(t, db, surveyID, testutil.Answers("q1", "Lecture", "q2_lecture", "Physics"))

	numRequests := 8
	colors := make([][]string, numRequests)
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/surveys/"+surveyID+"/path-subtrees",
				models.PathSelection{PathNames: []string{"A", "B"}}, testutil.AdminHeaders(adminKey))
			req.SetPathValue("id", surveyID)
			w := httptest.NewRecorder()

			analysisHandler.GetPathSubtrees(w, req)
			if w.Code != http.StatusOK {
				t.Errorf("Request %d failed: %d - %s", idx, w.Code, w.Body.String())
				return
			}

			var resp models.PathSubtreesResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Errorf("Request %d returned bad JSON: %v", idx, err)
				return
			}
			for _, s := range resp.Subtrees {
				colors[idx] = append(colors[idx], s.Color)
			}
		}(i)
	}

	wg.Wait()

	for i, c := range colors {
		if len(c) != 2 || c[0] != pathtree.Palette[0] || c[1] != pathtree.Palette[1] {
			t.Errorf("Request %d got colours %v", i, c)
		}
	}
}
