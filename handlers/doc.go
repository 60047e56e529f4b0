// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Survey API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SurveyHandler: Survey lifecycle (create, edit, publish, close)
  - ResponseHandler: Public survey access and response submission
  - AnalysisHandler: Path extraction, filtering, layout and saved groups

Handlers are created via constructor functions that accept *db.Conn and Config:

	surveyHandler := handlers.NewSurveyHandler(conn, cfg)

# Survey Lifecycle

Surveys progress through three states: draft → open → closed

	POST /surveys                  → CreateSurvey (returns admin_key)
	PUT  /surveys/{id}/definition  → UpdateDefinition (draft only)
	POST /surveys/{id}/publish     → PublishSurvey (generates share_slug)
	POST /surveys/{id}/close       → CloseSurvey

A definition is either a flat list of questions or a graph of nodes and
edges. Admin operations require the X-Admin-Key header.

# Responding

Respondents use the share slug:

	GET  /surveys/{slug}            → GetSurvey
	POST /surveys/{slug}/responses  → SubmitResponse
	GET  /surveys/{slug}/response-count

Answers are stored in the order they were given. That order is the route
the respondent took, and every analysis below depends on it.

# Path Analysis

All analysis endpoints are admin only and run the pathtree package over
the stored responses:

	GET  /surveys/{id}/paths          → Extract + Group
	POST /surveys/{id}/filter         → FilterByPaths
	POST /surveys/{id}/layout         → Layout / LayoutSelection
	POST /surveys/{id}/path-subtrees  → one coloured subtree per path

Paths are selected by name (path_names) or by question ids
(selected_paths). AnalysisHandler keeps one pathtree.Registry per survey,
so a path keeps its colour across requests.

# Analysis Groups

Named selections can be saved and listed with live respondent counts:

	GET    /surveys/{id}/analysis-groups
	POST   /surveys/{id}/analysis-groups
	DELETE /surveys/{id}/analysis-groups/{groupID}
*/
package handlers
