// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pathtree

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/quickly-survey/models"
)

func TestRegistry_AssignsLazilyAndStably(t *testing.T) {
	reg := NewRegistry()
	named := Extract(branchingSurvey(), branchingResponses())
	reg.Learn(named)

	_, ok := reg.Lookup(named[1].Path)
	assert.False(t, ok)

	second := reg.Assign(named[1].Path)
	first := reg.Assign(named[0].Path)

	assert.Equal(t, "B", second.Name)
	assert.Equal(t, Palette[0], second.Color, "colours follow assignment order")
	assert.Equal(t, "A", first.Name)
	assert.Equal(t, Palette[1], first.Color)

	again := reg.Assign(named[1].Path)
	assert.Equal(t, second, again)

	got, ok := reg.Lookup(named[0].Path)
	assert.True(t, ok)
	assert.Equal(t, first, got)
}

func TestRegistry_LearnKeepsExistingNames(t *testing.T) {
	reg := NewRegistry()
	p := models.PathFromIDs([]string{"q1", "q2"})

	reg.Learn([]models.NamedPath{{Name: "A", Path: p}})
	reg.Learn([]models.NamedPath{{Name: "C", Path: p}})

	assert.Equal(t, "A", reg.Assign(p).Name)
}

func TestRegistry_ConcurrentAssign(t *testing.T) {
	reg := NewRegistry()
	p := models.PathFromIDs([]string{"q1"})

	var wg sync.WaitGroup
	colors := make([]string, 20)
	for i := range colors {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			colors[i] = reg.Assign(p).Color
		}(i)
	}
	wg.Wait()

	for _, c := range colors {
		assert.Equal(t, Palette[0], c)
	}
}
