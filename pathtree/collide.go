// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pathtree

import (
	"math"

	"github.com/danielhkuo/quickly-survey/models"
)

// overlap returns how far the boxes of a and b intrude on each other along
// each axis. Both values are positive only when the boxes intersect.
func overlap(a, b models.Position, opts Options) (float64, float64) {
	ox := opts.NodeWidth - math.Abs(a.X-b.X)
	oy := opts.NodeHeight - math.Abs(a.Y-b.Y)
	return ox, oy
}

// Overlaps reports whether any two nodes' bounding boxes intersect.
func Overlaps(nodes []models.TreeNode, opts Options) bool {
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			ox, oy := overlap(nodes[i].Position, nodes[j].Position, opts)
			if ox > 0 && oy > 0 {
				return true
			}
		}
	}
	return false
}

// ResolveCollisions pushes intersecting nodes apart along the axis of
// smaller overlap. It stops when nothing overlaps or after
// opts.MaxIterations passes; the result may still overlap in the latter
// case. The input slice is not modified.
func ResolveCollisions(nodes []models.TreeNode, opts Options) []models.TreeNode {
	out := append([]models.TreeNode{}, nodes...)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		moved := false
		for i := range out {
			for j := i + 1; j < len(out); j++ {
				a, b := &out[i].Position, &out[j].Position
				ox, oy := overlap(*a, *b, opts)
				if ox <= 0 || oy <= 0 {
					continue
				}
				moved = true
				if ox < oy {
					push := (ox + opts.Padding) / 2
					if a.X <= b.X {
						a.X -= push
						b.X += push
					} else {
						a.X += push
						b.X -= push
					}
				} else {
					push := (oy + opts.Padding) / 2
					if a.Y <= b.Y {
						a.Y -= push
						b.Y += push
					} else {
						a.Y += push
						b.Y -= push
					}
				}
			}
		}
		if !moved {
			break
		}
	}
	return out
}
