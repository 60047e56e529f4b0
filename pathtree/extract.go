// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pathtree

import (
	"github.com/danielhkuo/quickly-survey/models"
)

type questionInfo struct {
	Text string
	Type string
}

// traceKey addresses a child of a trace node
type traceKey struct {
	questionID string
	answer     string
}

// traceNode is one node of the response trace trie
type traceNode struct {
	parent   *traceNode
	segment  models.PathSegment
	count    int
	children map[traceKey]*traceNode
	order    []*traceNode // insertion order, keeps traversal deterministic
}

type traceTrie struct {
	root *traceNode
}

func newTraceTrie() *traceTrie {
	return &traceTrie{root: &traceNode{children: map[traceKey]*traceNode{}}}
}

func (t *traceTrie) child(parent *traceNode, seg models.PathSegment) *traceNode {
	key := traceKey{questionID: seg.QuestionID, answer: seg.Answer}
	if n, ok := parent.children[key]; ok {
		return n
	}
	n := &traceNode{
		parent:   parent,
		segment:  seg,
		children: map[traceKey]*traceNode{},
	}
	parent.children[key] = n
	parent.order = append(parent.order, n)
	return n
}

// questionLookup indexes question text and type by id. Graph nodes without
// any text or label are left out.
func questionLookup(survey models.Survey) map[string]questionInfo {
	lookup := make(map[string]questionInfo, len(survey.Questions)+len(survey.Nodes))
	for _, q := range survey.Questions {
		lookup[q.ID] = questionInfo{Text: q.Text, Type: q.Type}
	}
	for _, n := range survey.Nodes {
		text := n.Data.DisplayText()
		if text == "" {
			continue
		}
		lookup[n.ID] = questionInfo{Text: text, Type: n.Data.KindOf()}
	}
	return lookup
}

// buildTrie folds every response trace into a shared prefix tree.
// Answers to questions missing from the lookup are dropped and the trace
// continues from the same parent.
func buildTrie(lookup map[string]questionInfo, responses []models.Response) *traceTrie {
	t := newTraceTrie()
	for _, r := range responses {
		node := t.root
		for _, a := range r.Answers {
			info, ok := lookup[a.QuestionID]
			if !ok {
				continue
			}
			node = t.child(node, models.PathSegment{
				QuestionID:   a.QuestionID,
				QuestionText: info.Text,
				Answer:       a.Answer,
			})
			node.count++
		}
	}
	return t
}

// leaves returns the trie leaves in depth-first order.
func (t *traceTrie) leaves() []*traceNode {
	var out []*traceNode
	var walk func(n *traceNode)
	walk = func(n *traceNode) {
		if len(n.order) == 0 {
			if n != t.root {
				out = append(out, n)
			}
			return
		}
		for _, c := range n.order {
			walk(c)
		}
	}
	walk(t.root)
	return out
}

// path rebuilds the segments from the root down to n.
func (n *traceNode) path() models.Path {
	depth := 0
	for c := n; c.parent != nil; c = c.parent {
		depth++
	}
	p := make(models.Path, depth)
	for c := n; c.parent != nil; c = c.parent {
		depth--
		p[depth] = c.segment
	}
	return p
}

// Extract reconstructs the distinct question sequences traversed by the
// responses. Paths are deduplicated by question ids only; the first trace
// seen for a sequence supplies the answers. Names are assigned in order of
// discovery: A, B, ..., Z, AA, AB, ...
func Extract(survey models.Survey, responses []models.Response) []models.NamedPath {
	if len(responses) == 0 {
		return []models.NamedPath{}
	}

	trie := buildTrie(questionLookup(survey), responses)

	index := make(map[models.PathKey]int)
	named := []models.NamedPath{}
	for _, leaf := range trie.leaves() {
		p := leaf.path()
		key := p.Key()
		if i, ok := index[key]; ok {
			named[i].Count += leaf.count
			continue
		}
		index[key] = len(named)
		named = append(named, models.NamedPath{
			Name:  PathName(len(named)),
			Path:  p,
			Count: leaf.count,
		})
	}
	return named
}

// PathName returns the alphabetic name for the i-th path (0-based).
func PathName(i int) string {
	if i < 0 {
		return ""
	}
	var buf []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		buf = append(buf, byte('A'+(n-1)%26))
	}
	for l, r := 0, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	return string(buf)
}

// Describe builds a path for a bare question-id sequence, filling in the
// question text. Answers are left empty. Unknown ids keep an empty text.
func Describe(survey models.Survey, ids []string) models.Path {
	lookup := questionLookup(survey)
	p := models.PathFromIDs(ids)
	for i := range p {
		p[i].QuestionText = lookup[p[i].QuestionID].Text
	}
	return p
}
