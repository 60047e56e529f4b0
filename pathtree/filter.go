// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pathtree

import "github.com/danielhkuo/quickly-survey/models"

// FilterResult is the outcome of FilterByPaths.
//
// Intersections is diagnostic output: a response that matches two paths
// must answer exactly the questions of each, so paths with different
// question sets never share a response.
type FilterResult struct {
	Matched       []models.Response
	PerPath       []int
	Intersections []models.PathIntersection
}

// Matches reports whether r followed exactly the question sequence of p:
//
//   - every question of p was answered (completeness)
//   - no question outside p was answered (exclusivity)
//   - the answers to p's questions appear in p's order, with nothing
//     off-path between two consecutive steps
//
// An empty path matches nothing.
func Matches(r models.Response, p models.Path) bool {
	ids := p.QuestionIDs()
	if len(ids) == 0 {
		return false
	}
	return complete(r, ids) && exclusive(r, ids) && ordered(r, ids)
}

func memberSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func complete(r models.Response, ids []string) bool {
	answered := make(map[string]bool, len(r.Answers))
	for _, a := range r.Answers {
		answered[a.QuestionID] = true
	}
	for _, id := range ids {
		if !answered[id] {
			return false
		}
	}
	return true
}

func exclusive(r models.Response, ids []string) bool {
	members := memberSet(ids)
	for _, a := range r.Answers {
		if !members[a.QuestionID] {
			return false
		}
	}
	return true
}

// ordered scans the answers once. Member answers must walk ids step by
// step; a non-member answer after the first step and before the last one
// is an interloper.
func ordered(r models.Response, ids []string) bool {
	members := memberSet(ids)
	next := 0
	for _, a := range r.Answers {
		if !members[a.QuestionID] {
			if next > 0 && next < len(ids) {
				return false
			}
			continue
		}
		if next >= len(ids) || a.QuestionID != ids[next] {
			return false
		}
		next++
	}
	return next == len(ids)
}

// FilterByPaths returns the responses matching at least one selected path,
// in input order, with per-path counts and pairwise overlaps. Each path is
// evaluated against the full response set. With no selected paths every
// response is returned.
func FilterByPaths(responses []models.Response, selected []models.Path) FilterResult {
	if len(selected) == 0 {
		return FilterResult{
			Matched:       append([]models.Response{}, responses...),
			PerPath:       []int{},
			Intersections: []models.PathIntersection{},
		}
	}

	res := FilterResult{
		Matched:       []models.Response{},
		PerPath:       make([]int, len(selected)),
		Intersections: []models.PathIntersection{},
	}

	pairs := make([][]int, len(selected))
	for i := range pairs {
		pairs[i] = make([]int, len(selected))
	}

	hits := make([]bool, len(selected))
	for _, r := range responses {
		matched := false
		for i, p := range selected {
			hits[i] = Matches(r, p)
			if hits[i] {
				res.PerPath[i]++
				matched = true
			}
		}
		if !matched {
			continue
		}
		res.Matched = append(res.Matched, r)
		for i := range selected {
			for j := i + 1; j < len(selected); j++ {
				if hits[i] && hits[j] {
					pairs[i][j]++
				}
			}
		}
	}

	for i := range selected {
		for j := i + 1; j < len(selected); j++ {
			res.Intersections = append(res.Intersections, models.PathIntersection{
				A: i, B: j, Count: pairs[i][j],
			})
		}
	}
	return res
}

// CountMatching returns how many responses match at least one of paths.
func CountMatching(responses []models.Response, paths []models.Path) int {
	if len(paths) == 0 {
		return 0
	}
	return len(FilterByPaths(responses, paths).Matched)
}
