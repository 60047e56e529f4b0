// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateSurveyRequest: title, description, creator_name, questions or nodes/edges
  - UpdateDefinitionRequest: questions or nodes/edges
  - SubmitResponseRequest: ordered answers, optional respondent
  - PathSelection: path_names and/or selected_paths
  - LayoutRequest: PathSelection plus reorganize
  - CreateAnalysisGroupRequest: name, selected paths

# Response Types

Types for JSON responses:

  - CreateSurveyResponse: survey_id, admin_key
  - PublishSurveyResponse: share_slug, share_url
  - CloseSurveyResponse: closed_at, response_count
  - SubmitResponseResponse: response_id, message
  - SurveyAdminResponse: survey with response statistics
  - PathsResponse: named paths, groups, response count
  - FilterResponse: matched responses and path intersections
  - PathSubtreesResponse: one coloured subtree per path
  - ErrorResponse: error, message

# Domain Types

  - Survey: survey metadata, lifecycle state and definition
  - Question, GraphNode, GraphEdge: the two definition shapes
  - Response, Answer: a respondent's answers in the order given
  - Path, PathSegment, PathKey: the route a respondent took
  - NamedPath: a unique path with its display name and count
  - AnalysisGroup: a saved, named path selection
  - Layout, TreeNode, TreeEdge: positioned tree ready for rendering

# Constants

Status values:

	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"

Survey kinds:

	KindStatic  = "static"
	KindDynamic = "dynamic"
*/
package models
