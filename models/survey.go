// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"strings"
	"time"
)

// Survey status constants
const (
	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Survey kinds
const (
	KindStatic  = "static"
	KindDynamic = "dynamic"
)

// Question types that always fan out in the layout
const (
	TypeYesNo    = "yes-no"
	TypeDropdown = "dropdown"
)

// Question is one entry of a flat (static) survey.
type Question struct {
	ID      string   `json:"id" validate:"required"`
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData carries the question payload of a graph node. Older editors
// wrote "label"/"type", newer ones "text"/"questionType"; both are accepted.
type NodeData struct {
	Text         string   `json:"text,omitempty"`
	Label        string   `json:"label,omitempty"`
	QuestionType string   `json:"question_type,omitempty"`
	Type         string   `json:"type,omitempty"`
	Options      []string `json:"options,omitempty"`
}

// DisplayText returns the question text, falling back to the label.
func (d NodeData) DisplayText() string {
	if d.Text != "" {
		return d.Text
	}
	return d.Label
}

// KindOf returns the question type, falling back to the generic type field.
func (d NodeData) KindOf() string {
	if d.QuestionType != "" {
		return d.QuestionType
	}
	return d.Type
}

type GraphNode struct {
	ID       string    `json:"id" validate:"required"`
	Data     NodeData  `json:"data"`
	Position *Position `json:"position,omitempty"`
}

type GraphEdge struct {
	ID     string `json:"id"`
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
	Label  string `json:"label,omitempty"`
}

// Survey is either flat (Questions) or a graph (Nodes + Edges).
type Survey struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CreatorName string      `json:"creator_name"`
	Kind        string      `json:"kind"`
	Status      string      `json:"status"`
	ShareSlug   *string     `json:"share_slug,omitempty"`
	Questions   []Question  `json:"questions,omitempty"`
	Nodes       []GraphNode `json:"nodes,omitempty"`
	Edges       []GraphEdge `json:"edges,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	ClosedAt    *time.Time  `json:"closed_at,omitempty"`
}

// IsGraph reports whether the survey is defined as a node/edge graph.
func (s Survey) IsGraph() bool {
	return len(s.Nodes) > 0
}

// Definition is the stored shape of a survey's questions.
type Definition struct {
	Questions []Question  `json:"questions,omitempty"`
	Nodes     []GraphNode `json:"nodes,omitempty"`
	Edges     []GraphEdge `json:"edges,omitempty"`
}

// HasQuestion reports whether id names a question or node of the definition.
func (d Definition) HasQuestion(id string) bool {
	for _, q := range d.Questions {
		if q.ID == id {
			return true
		}
	}
	for _, n := range d.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

type Answer struct {
	QuestionID string `json:"question_id" validate:"required"`
	Answer     string `json:"answer"`
}

type Respondent struct {
	Demographic map[string]string `json:"demographic,omitempty"`
}

// Response is one respondent's submission. Answers are kept in the order
// they were given; that order is the traversal trace.
type Response struct {
	ID          string      `json:"id"`
	SurveyID    string      `json:"survey_id"`
	Answers     []Answer    `json:"answers"`
	SubmittedAt time.Time   `json:"submitted_at"`
	Respondent  *Respondent `json:"respondent,omitempty"`
	IPHash      *string     `json:"-"` // Never expose in JSON
}

type PathSegment struct {
	QuestionID   string `json:"question_id"`
	QuestionText string `json:"question_text"`
	Answer       string `json:"answer"`
}

// Path is an ordered traversal of a survey.
type Path []PathSegment

// PathKey identifies a path by its question sequence only.
type PathKey string

const keySep = "\x1f"

// Key returns the identity of the path: its question ids in order.
// Answers are not part of the key.
func (p Path) Key() PathKey {
	return KeyOf(p.QuestionIDs())
}

// QuestionIDs returns the question ids of the path in order.
func (p Path) QuestionIDs() []string {
	ids := make([]string, len(p))
	for i, seg := range p {
		ids[i] = seg.QuestionID
	}
	return ids
}

// KeyOf builds a PathKey from a question-id sequence.
func KeyOf(ids []string) PathKey {
	return PathKey(strings.Join(ids, keySep))
}

// PathFromIDs builds a path with only question ids set.
func PathFromIDs(ids []string) Path {
	p := make(Path, len(ids))
	for i, id := range ids {
		p[i] = PathSegment{QuestionID: id}
	}
	return p
}

// NamedPath is an extracted path. Count is the number of responses whose
// trace ends on this question sequence.
type NamedPath struct {
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`
	Path  Path   `json:"path"`
	Count int    `json:"count"`
}

// AnalysisGroup is a saved, named bundle of paths.
type AnalysisGroup struct {
	ID              string    `json:"id"`
	SurveyID        string    `json:"survey_id"`
	Name            string    `json:"name"`
	Paths           []Path    `json:"paths"`
	RespondentCount int       `json:"respondent_count"`
	CreatedAt       time.Time `json:"created_at"`
}
