// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pathtree

import (
	"fmt"

	"github.com/danielhkuo/quickly-survey/models"
)

// Palette is the fixed set of highlight colours for compared paths.
var Palette = []string{
	"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6",
	"#ec4899", "#14b8a6", "#f97316", "#6366f1", "#84cc16",
}

// PathColor returns the palette colour for the i-th path, cycling.
func PathColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// CountAnswers returns, per question id, how many responses answered it.
// A question answered twice in one response counts once.
func CountAnswers(responses []models.Response) map[string]int {
	counts := make(map[string]int)
	for _, r := range responses {
		seen := make(map[string]bool, len(r.Answers))
		for _, a := range r.Answers {
			if seen[a.QuestionID] {
				continue
			}
			seen[a.QuestionID] = true
			counts[a.QuestionID]++
		}
	}
	return counts
}

// stepCount counts responses that gave answer to questionID anywhere in
// their trace. Deliberately looser than Matches.
func stepCount(responses []models.Response, seg models.PathSegment) int {
	n := 0
	for _, r := range responses {
		for _, a := range r.Answers {
			if a.QuestionID == seg.QuestionID && a.Answer == seg.Answer {
				n++
				break
			}
		}
	}
	return n
}

// BuildPathSubtree lays out one path on its own as a vertical chain, for
// side-by-side comparison. index picks the column and the colour.
func BuildPathSubtree(path models.Path, index int, responses []models.Response, opts Options) models.Layout {
	return BuildColoredSubtree(path, index, PathColor(index), responses, opts)
}

// BuildColoredSubtree is BuildPathSubtree with an explicit colour, for
// callers that keep colours in a Registry.
func BuildColoredSubtree(path models.Path, index int, color string, responses []models.Response, opts Options) models.Layout {
	out := models.Layout{Nodes: []models.TreeNode{}, Edges: []models.TreeEdge{}}
	x := opts.BaseX + float64(index)*opts.SubtreeSpacing

	for step, seg := range path {
		id := fmt.Sprintf("path-%d-%d", index, step)
		out.Nodes = append(out.Nodes, models.TreeNode{
			ID:       id,
			Position: models.Position{X: x, Y: opts.BaseY + float64(step)*opts.YGap},
			Data: models.TreeNodeData{
				QuestionID:  seg.QuestionID,
				Text:        seg.QuestionText,
				Answer:      seg.Answer,
				Count:       stepCount(responses, seg),
				Highlighted: true,
				Color:       color,
			},
		})
		if step > 0 {
			prev := fmt.Sprintf("path-%d-%d", index, step-1)
			out.Edges = append(out.Edges, models.TreeEdge{
				ID:     fmt.Sprintf("path-%d-edge-%d", index, step),
				Source: prev,
				Target: id,
				Label:  path[step-1].Answer,
				Color:  color,
			})
		}
	}
	return out
}
