// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pathtree

import (
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-survey/models"
)

func node(id, text, qType string) models.GraphNode {
	return models.GraphNode{ID: id, Data: models.NodeData{Text: text, QuestionType: qType}}
}

func edge(source, target string) models.GraphEdge {
	return models.GraphEdge{ID: source + "->" + target, Source: source, Target: target}
}

// branchingSurvey is start -> q1 -> {q2_sport, q2_lecture}. The start node
// is a welcome screen without question text.
func branchingSurvey() models.Survey {
	return models.Survey{
		ID:   "s1",
		Kind: models.KindDynamic,
		Nodes: []models.GraphNode{
			{ID: "start"},
			node("q1", "What did you attend?", "multiple-choice"),
			node("q2_sport", "Which sport?", "text"),
			node("q2_lecture", "Which lecture?", "text"),
		},
		Edges: []models.GraphEdge{
			edge("start", "q1"),
			edge("q1", "q2_sport"),
			edge("q1", "q2_lecture"),
		},
	}
}

func flatSurvey(ids ...string) models.Survey {
	s := models.Survey{ID: "flat", Kind: models.KindStatic}
	for _, id := range ids {
		s.Questions = append(s.Questions, models.Question{ID: id, Text: "Question " + id, Type: "text"})
	}
	return s
}

var responseSeq int

// resp builds a response from alternating question id / answer pairs.
func resp(pairs ...string) models.Response {
	responseSeq++
	r := models.Response{
		ID:          fmt.Sprintf("r%d", responseSeq),
		SurveyID:    "s1",
		SubmittedAt: time.Date(2025, 3, 1, 12, 0, responseSeq, 0, time.UTC),
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Answers = append(r.Answers, models.Answer{QuestionID: pairs[i], Answer: pairs[i+1]})
	}
	return r
}

func branchingResponses() []models.Response {
	return []models.Response{
		resp("q1", "Sport", "q2_sport", "Football"),
		resp("q1", "Lecture", "q2_lecture", "Physics"),
		resp("q1", "Sport", "q2_sport", "Football"),
	}
}

func ids(rs []models.Response) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func nodeByID(l models.Layout, id string) (models.TreeNode, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return models.TreeNode{}, false
}
