package surface

import (
	"sync"

	"github.com/matzehuels/lookbook/pkg/deck"
)

// Registry holds one surface per exportable slide, keyed by slide ID.
//
// Mount is called whenever the slide list changes; it rebuilds every surface
// from the current slide values so a lookup always reflects the latest
// descriptor. Resolve is a pure lookup and never lays anything out.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]*Surface
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]*Surface)}
}

// Mount replaces the registry content with surfaces for the exportable
// slides. Slides that are gone or no longer exportable lose their surface.
// It returns the number of mounted surfaces.
func (r *Registry) Mount(slides []deck.Slide) int {
	surfaces := make(map[string]*Surface, len(slides))
	order := make([]string, 0, len(slides))
	for _, s := range slides {
		if !s.Exportable() {
			continue
		}
		if _, dup := surfaces[s.ID]; dup {
			continue
		}
		surfaces[s.ID] = Layout(s)
		order = append(order, s.ID)
	}

	r.mu.Lock()
	r.surfaces = surfaces
	r.order = order
	r.mu.Unlock()
	return len(order)
}

// Resolve returns the surface for a slide ID.
func (r *Registry) Resolve(id string) (*Surface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.surfaces[id]
	return s, ok
}

// IDs returns the mounted slide IDs in slide order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
