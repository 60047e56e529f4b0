// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pathtree reconstructs and lays out the paths respondents took
through a survey.

A dynamic survey is a graph of questions; each response records the
questions it answered in order. Folding all responses into a prefix tree
and reading off its leaves gives the distinct question sequences that were
actually traversed.

# Extraction and Grouping

	named := pathtree.Extract(survey, responses)
	grouping := pathtree.Group(named)

Paths are identified by their question ids only, so two traces through
the same questions with different free-text answers collapse into one
path. Names run A..Z, AA, AB, ... in order of discovery. Groups bucket
paths by their first question and answer.

# Filtering

	res := pathtree.FilterByPaths(responses, []models.Path{named[0].Path})

A response matches a path when it answered every question of the path,
nothing else, and in the path's order. res.Matched is the union over all
selected paths, in input order.

# Layout

	layout := pathtree.Layout(survey, pathtree.CountAnswers(responses), nil, pathtree.DefaultOptions())

Flat surveys stack vertically. In graph surveys, critical questions
(yes-no, dropdown, or more than one outgoing edge) spread their children
across slots sized by branch width. LayoutSelection restricts the layout
to selected paths and resolves overlaps in at most Options.MaxIterations
passes. BuildPathSubtree renders a single path as a coloured chain.

Every function here is pure and safe to re-run on each change of survey,
responses or selection. Missing data degrades the output; nothing errors.
*/
package pathtree
