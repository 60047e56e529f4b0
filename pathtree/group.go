// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pathtree

import (
	"strconv"

	"github.com/danielhkuo/quickly-survey/models"
)

// Grouping is the output of Group. Order lists group ids by first appearance.
type Grouping struct {
	Paths  []models.NamedPath
	Groups map[string]models.PathGroup
	Order  []string
}

// firstStep is the (question, answer) pair a path starts with. Empty paths
// share the zero step.
type firstStep struct {
	questionID string
	answer     string
}

func stepOf(p models.Path) firstStep {
	if len(p) == 0 {
		return firstStep{}
	}
	return firstStep{questionID: p[0].QuestionID, answer: p[0].Answer}
}

// displayID is "questionId-answer", suffixed with a counter when another
// step already renders to the same string.
func displayID(step firstStep, taken map[string]bool) string {
	if step == (firstStep{}) {
		return ""
	}
	base := step.questionID + "-" + step.answer
	id := base
	for n := 2; taken[id]; n++ {
		id = base + "~" + strconv.Itoa(n)
	}
	return id
}

// Group partitions named paths by their first (question, answer) pair.
// Groups are named "Group A", "Group B", ... in order of first appearance.
// The input slice is not modified.
func Group(named []models.NamedPath) Grouping {
	g := Grouping{
		Paths:  make([]models.NamedPath, len(named)),
		Groups: make(map[string]models.PathGroup),
		Order:  []string{},
	}

	ids := make(map[firstStep]string)
	taken := make(map[string]bool)
	for i, np := range named {
		step := stepOf(np.Path)
		id, ok := ids[step]
		if !ok {
			id = displayID(step, taken)
			ids[step] = id
			taken[id] = true
			g.Groups[id] = models.PathGroup{
				ID:   id,
				Name: "Group " + PathName(len(g.Order)),
			}
			g.Order = append(g.Order, id)
		}
		grp := g.Groups[id]
		grp.Paths = append(grp.Paths, i)
		g.Groups[id] = grp

		np.Group = id
		g.Paths[i] = np
	}

	return g
}
