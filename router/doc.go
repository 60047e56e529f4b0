// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Survey API.

# Route Registration

NewRouter creates a configured handler with all endpoints, wrapped in the
CORS middleware:

	handler := router.NewRouter(conn, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Survey management (admin, requires X-Admin-Key):

	POST /surveys                 - Create survey
	GET  /surveys/{id}/admin      - Get survey details
	PUT  /surveys/{id}/definition - Replace questions or graph (draft only)
	POST /surveys/{id}/publish    - Open for responses
	POST /surveys/{id}/close      - Stop accepting responses

Responding (public, uses share slug):

	GET  /surveys/{slug}                - Survey definition
	POST /surveys/{slug}/responses      - Submit answers in order
	GET  /surveys/{slug}/response-count - Response count

Path analysis (admin):

	GET  /surveys/{id}/responses     - Raw responses
	GET  /surveys/{id}/paths         - Unique paths and groups
	POST /surveys/{id}/layout        - Tree layout
	POST /surveys/{id}/filter        - Responses matching selected paths
	POST /surveys/{id}/path-subtrees - Coloured subtree per selected path

Analysis groups (admin):

	GET    /surveys/{id}/analysis-groups
	POST   /surveys/{id}/analysis-groups
	DELETE /surveys/{id}/analysis-groups/{groupID}

# Handler Initialization

The router creates handler instances with dependency injection:

	surveyHandler := handlers.NewSurveyHandler(conn, cfg)
	responseHandler := handlers.NewResponseHandler(conn, cfg)
	analysisHandler := handlers.NewAnalysisHandler(conn, cfg)

All handlers receive the database connection and configuration.
*/
package router
