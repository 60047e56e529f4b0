// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pathtree

import (
	"github.com/danielhkuo/quickly-survey/models"
)

// Options holds layout geometry. All distances are in canvas pixels.
type Options struct {
	BaseX      float64
	BaseY      float64
	XGap       float64
	YGap       float64
	NodeWidth  float64
	NodeHeight float64
	// Padding is the extra clearance added when pushing overlapping nodes apart
	Padding        float64
	MaxIterations  int
	SubtreeSpacing float64
}

func DefaultOptions() Options {
	return Options{
		BaseX:          250,
		BaseY:          50,
		XGap:           250,
		YGap:           150,
		NodeWidth:      200,
		NodeHeight:     80,
		Padding:        20,
		MaxIterations:  10,
		SubtreeSpacing: 300,
	}
}

// questionGraph is the adjacency view of a graph survey.
type questionGraph struct {
	order    []string
	nodes    map[string]models.GraphNode
	children map[string][]string
	incoming map[string]int
	edges    []models.TreeEdge
}

// buildGraph indexes nodes and edges. Edges pointing at unknown nodes are
// dropped and parallel edges collapse, so every kept edge has both ends
// in the layout.
func buildGraph(survey models.Survey) *questionGraph {
	g := &questionGraph{
		nodes:    make(map[string]models.GraphNode, len(survey.Nodes)),
		children: make(map[string][]string),
		incoming: make(map[string]int),
	}
	for _, n := range survey.Nodes {
		if _, dup := g.nodes[n.ID]; dup {
			continue
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}

	seen := make(map[[2]string]bool)
	for _, e := range survey.Edges {
		if _, ok := g.nodes[e.Source]; !ok {
			continue
		}
		if _, ok := g.nodes[e.Target]; !ok {
			continue
		}
		pair := [2]string{e.Source, e.Target}
		if seen[pair] {
			continue
		}
		seen[pair] = true

		g.children[e.Source] = append(g.children[e.Source], e.Target)
		g.incoming[e.Target]++

		id := e.ID
		if id == "" {
			id = edgeID(e.Source, e.Target)
		}
		g.edges = append(g.edges, models.TreeEdge{
			ID:     id,
			Source: e.Source,
			Target: e.Target,
			Label:  e.Label,
		})
	}
	return g
}

func edgeID(source, target string) string {
	return "e-" + source + "-" + target
}

// critical reports whether a node fans its children out horizontally.
func (g *questionGraph) critical(id string) bool {
	switch g.nodes[id].Data.KindOf() {
	case models.TypeYesNo, models.TypeDropdown:
		return true
	}
	return len(g.children[id]) > 1
}

func (g *questionGraph) roots() []string {
	var roots []string
	for _, id := range g.order {
		if g.incoming[id] == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// forest is a depth-first walk over the graph from its entry nodes. Each
// node hangs under the parent that first reached it; edges back onto the
// walk are cycle edges and take no part in levels or placement.
type forest struct {
	entries []string
	tree    map[[2]string]bool
	back    map[[2]string]bool
	order   []string // reverse postorder
}

// walkForest visits the roots first, then enters every component still
// unvisited (a cycle with no root) at its first node in definition order.
func (g *questionGraph) walkForest() *forest {
	f := &forest{
		tree: make(map[[2]string]bool),
		back: make(map[[2]string]bool),
	}
	seen := make(map[string]bool)
	onWalk := make(map[string]bool)
	var post []string

	var visit func(id string)
	visit = func(id string) {
		seen[id] = true
		onWalk[id] = true
		for _, c := range g.children[id] {
			switch {
			case onWalk[c]:
				f.back[[2]string{id, c}] = true
			case !seen[c]:
				f.tree[[2]string{id, c}] = true
				visit(c)
			}
		}
		delete(onWalk, id)
		post = append(post, id)
	}

	for _, id := range g.roots() {
		f.entries = append(f.entries, id)
		visit(id)
	}
	for _, id := range g.order {
		if !seen[id] {
			f.entries = append(f.entries, id)
			visit(id)
		}
	}

	for i := len(post) - 1; i >= 0; i-- {
		f.order = append(f.order, post[i])
	}
	return f
}

// levels gives every node its longest distance from an entry, ignoring
// cycle edges. Reverse postorder is a topological order of what remains.
func (g *questionGraph) levels(f *forest) map[string]int {
	levels := make(map[string]int, len(g.order))
	for _, id := range f.order {
		for _, c := range g.children[id] {
			if f.back[[2]string{id, c}] {
				continue
			}
			levels[c] = max(levels[c], levels[id]+1)
		}
	}
	return levels
}

type placer struct {
	g      *questionGraph
	f      *forest
	opts   Options
	levels map[string]int
	widths map[string]int
	pos    map[string]models.Position
}

// slots is the number of horizontal slots the child edge id→c reserves.
// A child placed elsewhere keeps a single empty slot.
func (p *placer) slots(id, c string) int {
	if p.f.tree[[2]string{id, c}] {
		return p.width(c)
	}
	return 1
}

// width is the number of horizontal slots the subtree under id needs.
func (p *placer) width(id string) int {
	if w, ok := p.widths[id]; ok {
		return w
	}
	kids := p.g.children[id]
	w := 0
	switch {
	case len(kids) == 0:
		w = 1
	case len(kids) == 1 && !p.g.critical(id):
		w = p.slots(id, kids[0])
	default:
		for _, c := range kids {
			w += p.slots(id, c)
		}
	}
	w = max(w, 1)
	p.widths[id] = w
	return w
}

// place positions id at x and lays out its tree children below it.
func (p *placer) place(id string, x float64) {
	p.pos[id] = models.Position{
		X: x,
		Y: p.opts.BaseY + float64(p.levels[id])*p.opts.YGap,
	}

	kids := p.g.children[id]
	if len(kids) == 0 {
		return
	}
	if !p.g.critical(id) {
		if p.f.tree[[2]string{id, kids[0]}] {
			p.place(kids[0], x)
		}
		return
	}

	left := x - float64(p.width(id))*p.opts.XGap/2
	for _, c := range kids {
		slot := float64(p.slots(id, c)) * p.opts.XGap
		if p.f.tree[[2]string{id, c}] {
			p.place(c, left+slot/2)
		}
		left += slot
	}
}

// Layout positions every question of the survey. Flat surveys stack
// vertically; graph surveys fan out below critical questions. Counts
// annotate nodes by question id and selected paths only set Highlighted.
func Layout(survey models.Survey, counts map[string]int, selected []models.Path, opts Options) models.Layout {
	highlight := make(map[string]bool)
	for _, p := range selected {
		for _, seg := range p {
			highlight[seg.QuestionID] = true
		}
	}

	if !survey.IsGraph() {
		return flatLayout(survey.Questions, counts, highlight, opts)
	}
	return graphLayout(survey, counts, highlight, opts)
}

func flatLayout(questions []models.Question, counts map[string]int, highlight map[string]bool, opts Options) models.Layout {
	out := models.Layout{Nodes: []models.TreeNode{}, Edges: []models.TreeEdge{}}
	for i, q := range questions {
		out.Nodes = append(out.Nodes, models.TreeNode{
			ID:       q.ID,
			Position: models.Position{X: opts.BaseX, Y: opts.BaseY + float64(i)*opts.YGap},
			Data: models.TreeNodeData{
				QuestionID:  q.ID,
				Text:        q.Text,
				Type:        q.Type,
				Count:       counts[q.ID],
				Highlighted: highlight[q.ID],
			},
		})
		if i > 0 {
			prev := questions[i-1].ID
			out.Edges = append(out.Edges, models.TreeEdge{
				ID:     edgeID(prev, q.ID),
				Source: prev,
				Target: q.ID,
			})
		}
	}
	return out
}

func graphLayout(survey models.Survey, counts map[string]int, highlight map[string]bool, opts Options) models.Layout {
	g := buildGraph(survey)
	f := g.walkForest()
	p := &placer{
		g:      g,
		f:      f,
		opts:   opts,
		levels: g.levels(f),
		widths: make(map[string]int),
		pos:    make(map[string]models.Position),
	}

	x := opts.BaseX
	prevWidth := 0
	for _, id := range f.entries {
		w := p.width(id)
		if prevWidth > 0 {
			x += max(2*opts.XGap, float64(prevWidth+w)/2*opts.XGap)
		}
		p.place(id, x)
		prevWidth = w
	}

	out := models.Layout{Nodes: []models.TreeNode{}, Edges: []models.TreeEdge{}}
	for _, id := range g.order {
		n := g.nodes[id]
		out.Nodes = append(out.Nodes, models.TreeNode{
			ID:       id,
			Position: p.pos[id],
			Data: models.TreeNodeData{
				QuestionID:  id,
				Text:        n.Data.DisplayText(),
				Type:        n.Data.KindOf(),
				Count:       counts[id],
				IsCritical:  g.critical(id),
				Highlighted: highlight[id],
			},
		})
	}
	out.Edges = append(out.Edges, g.edges...)

	// Slots only keep boxes apart when XGap is at least NodeWidth.
	if Overlaps(out.Nodes, opts) {
		out.Nodes = ResolveCollisions(out.Nodes, opts)
	}
	return out
}

// LayoutSelection lays out only the questions on the selected paths and
// then pushes overlapping nodes apart. Without a selection the whole survey
// is laid out.
func LayoutSelection(survey models.Survey, counts map[string]int, selected []models.Path, opts Options) models.Layout {
	sub := survey
	if len(selected) > 0 {
		sub = restrict(survey, selected)
	}
	out := Layout(sub, counts, selected, opts)
	out.Nodes = ResolveCollisions(out.Nodes, opts)
	return out
}

// restrict returns a copy of survey holding only questions on the paths.
func restrict(survey models.Survey, selected []models.Path) models.Survey {
	keep := make(map[string]bool)
	for _, p := range selected {
		for _, seg := range p {
			keep[seg.QuestionID] = true
		}
	}

	sub := survey
	sub.Questions = nil
	sub.Nodes = nil
	sub.Edges = nil
	for _, q := range survey.Questions {
		if keep[q.ID] {
			sub.Questions = append(sub.Questions, q)
		}
	}
	for _, n := range survey.Nodes {
		if keep[n.ID] {
			sub.Nodes = append(sub.Nodes, n)
		}
	}
	for _, e := range survey.Edges {
		if keep[e.Source] && keep[e.Target] {
			sub.Edges = append(sub.Edges, e)
		}
	}
	return sub
}
