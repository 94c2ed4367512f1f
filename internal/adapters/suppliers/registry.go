// Package suppliers wires concrete source adapters behind the search fetch contract
// adapters are registered once at bootstrap and toggled individually
package suppliers

import (
	"partsearch/internal/services/search/domain"
)

// Registry holds adapters in registration order with a per source enabled flag
// registration order fixes the merge order of the search pipeline
type Registry struct {
	order   []string
	entries map[string]*entry
}

type entry struct {
	src     domain.SourcePort
	enabled bool
}

// NewRegistry constructs an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds a source, enabled by default
// re-registering an id replaces the adapter but keeps its position and flag
func (r *Registry) Register(src domain.SourcePort) {
	id := src.SourceID()
	if e, ok := r.entries[id]; ok {
		e.src = src
		return
	}
	r.order = append(r.order, id)
	r.entries[id] = &entry{src: src, enabled: true}
}

// SetEnabled toggles a source; returns false for an unknown id
func (r *Registry) SetEnabled(sourceID string, enabled bool) bool {
	e, ok := r.entries[sourceID]
	if !ok {
		return false
	}
	e.enabled = enabled
	return true
}

// Enabled returns the enabled sources in registration order
func (r *Registry) Enabled() []domain.SourcePort {
	out := make([]domain.SourcePort, 0, len(r.order))
	for _, id := range r.order {
		if e := r.entries[id]; e.enabled {
			out = append(out, e.src)
		}
	}
	return out
}

// IDs returns every registered source id in registration order
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}
