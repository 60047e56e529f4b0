// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pathtree

import (
	"sync"

	"github.com/danielhkuo/quickly-survey/models"
)

type Assignment struct {
	Name  string
	Color string
}

// Registry keeps a path's name and colour stable while the selection
// changes. Names come from the latest extraction; colours are handed out
// on first use and never reassigned.
type Registry struct {
	mu     sync.Mutex
	names  map[models.PathKey]string
	colors map[models.PathKey]string
}

func NewRegistry() *Registry {
	return &Registry{
		names:  make(map[models.PathKey]string),
		colors: make(map[models.PathKey]string),
	}
}

// Learn records the names of freshly extracted paths. Keys that already
// have a name keep it.
func (r *Registry) Learn(named []models.NamedPath) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, np := range named {
		key := np.Path.Key()
		if _, ok := r.names[key]; !ok {
			r.names[key] = np.Name
		}
	}
}

// Assign returns the name and colour for p, assigning a colour if p has
// none yet.
func (r *Registry) Assign(p models.Path) Assignment {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := p.Key()
	color, ok := r.colors[key]
	if !ok {
		color = PathColor(len(r.colors))
		r.colors[key] = color
	}
	return Assignment{Name: r.names[key], Color: color}
}

// Lookup returns the stored assignment without creating one.
func (r *Registry) Lookup(p models.Path) (Assignment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := p.Key()
	color, ok := r.colors[key]
	if !ok {
		return Assignment{Name: r.names[key]}, false
	}
	return Assignment{Name: r.names[key], Color: color}, true
}
