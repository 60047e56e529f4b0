// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request completion (method, path, status, duration_ms) and records
the quickly_survey_http_requests_total and
quickly_survey_http_request_duration_seconds metrics, labelled by the
matched route pattern.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigins)(mux),
	}

Built on go-chi/cors. Allows methods GET, POST, PUT, DELETE, OPTIONS with
headers Content-Type, Authorization, X-Admin-Key. No origins means any origin.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse and validate JSON request bodies:

	var req models.CreateSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

Validation errors name fields by their JSON names, e.g.
"answers[0].question_id is required".

# Analysis Metrics

	defer middleware.ObserveAnalysis("layout", time.Now())

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for IP hashing on response submission.
*/
package middleware
