// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

type TreeNodeData struct {
	QuestionID  string `json:"question_id"`
	Text        string `json:"text"`
	Answer      string `json:"answer,omitempty"`
	Type        string `json:"type,omitempty"`
	Count       int    `json:"count"`
	IsCritical  bool   `json:"is_critical,omitempty"`
	Highlighted bool   `json:"highlighted,omitempty"`
	Color       string `json:"color,omitempty"`
}

type TreeNode struct {
	ID       string       `json:"id"`
	Position Position     `json:"position"`
	Data     TreeNodeData `json:"data"`
}

type TreeEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Layout is a renderable node/edge tree. It is derived data and never stored.
type Layout struct {
	Nodes []TreeNode `json:"nodes"`
	Edges []TreeEdge `json:"edges"`
}
