// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/handlers"
	"github.com/danielhkuo/quickly-survey/middleware"
)

func NewRouter(conn *db.Conn, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(conn, cfg)
	responseHandler := handlers.NewResponseHandler(conn, cfg)
	analysisHandler := handlers.NewAnalysisHandler(conn, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Survey management (admin operations)
	mux.HandleFunc("POST /surveys", middleware.WithLogging(surveyHandler.CreateSurvey))
	mux.HandleFunc("GET /surveys/{id}/admin", middleware.WithLogging(surveyHandler.GetSurveyAdmin))
	mux.HandleFunc("PUT /surveys/{id}/definition", middleware.WithLogging(surveyHandler.UpdateDefinition))
	mux.HandleFunc("POST /surveys/{id}/publish", middleware.WithLogging(surveyHandler.PublishSurvey))
	mux.HandleFunc("POST /surveys/{id}/close", middleware.WithLogging(surveyHandler.CloseSurvey))

	// Responding (public)
	mux.HandleFunc("GET /surveys/{slug}", middleware.WithLogging(responseHandler.GetSurvey))
	mux.HandleFunc("POST /surveys/{slug}/responses", middleware.WithLogging(responseHandler.SubmitResponse))
	mux.HandleFunc("GET /surveys/{slug}/response-count", middleware.WithLogging(responseHandler.GetResponseCount))

	// Path analysis (admin operations)
	mux.HandleFunc("GET /surveys/{id}/responses", middleware.WithLogging(analysisHandler.ListResponses))
	mux.HandleFunc("GET /surveys/{id}/paths", middleware.WithLogging(analysisHandler.GetPaths))
	mux.HandleFunc("POST /surveys/{id}/layout", middleware.WithLogging(analysisHandler.GetLayout))
	mux.HandleFunc("POST /surveys/{id}/filter", middleware.WithLogging(analysisHandler.FilterResponses))
	mux.HandleFunc("POST /surveys/{id}/path-subtrees", middleware.WithLogging(analysisHandler.GetPathSubtrees))

	// Saved analysis groups
	mux.HandleFunc("GET /surveys/{id}/analysis-groups", middleware.WithLogging(analysisHandler.ListGroups))
	mux.HandleFunc("POST /surveys/{id}/analysis-groups", middleware.WithLogging(analysisHandler.CreateGroup))
	mux.HandleFunc("DELETE /surveys/{id}/analysis-groups/{groupID}", middleware.WithLogging(analysisHandler.DeleteGroup))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-survey API v1"))
	})

	return middleware.CORS(cfg.CORSOrigins)(mux)
}
