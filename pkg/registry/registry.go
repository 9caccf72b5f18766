// Package registry implements the process-wide reference and navigator
// stores of the kernel. A Registry is an explicit, constructible object
// (created once at startup and passed into the kernel by reference), not
// ambient global state.
package registry

import (
	"sync"

	"github.com/aretw0/kestrel/pkg/domain"
)

// Registry holds arbitrary references (services, workflows, any object) by
// key, plus navigator roots mapped to registered workflows. Last write wins;
// there is no namespacing.
//
// Safe for concurrent use. Both stores are soft-delete: removal leaves the
// slot present with a nil value, so absence and removal are indistinguishable
// from a stored nil. Callers that need the distinction must not store nil.
type Registry struct {
	mu         sync.RWMutex
	refs       map[string]any
	navigators map[string]domain.Workflow
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		refs:       make(map[string]any),
		navigators: make(map[string]domain.Workflow),
	}
}

// Save stores value under key, overwriting unconditionally.
func (r *Registry) Save(key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs[key] = value
}

// Get returns the stored value, or nil when the key is absent or removed.
func (r *Registry) Get(key string) any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refs[key]
}

// Remove soft-deletes key: the slot stays present with a nil value.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.refs[key]; ok {
		r.refs[key] = nil
	}
}

// Keys lists every reference slot, including soft-deleted ones.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.refs))
	for k := range r.refs {
		keys = append(keys, k)
	}
	return keys
}

// Add registers a workflow under a navigator root, overwriting any previous
// registration. Registering the same pair twice is idempotent.
func (r *Registry) Add(root string, wf domain.Workflow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigators[root] = wf
}

// RemoveNavigator soft-deletes a root registration.
func (r *Registry) RemoveNavigator(root string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.navigators[root]; ok {
		r.navigators[root] = nil
	}
}

// Navigator looks up the workflow registered under root. The second return
// is false for unknown or removed roots.
func (r *Registry) Navigator(root string) (domain.Workflow, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wf, ok := r.navigators[root]
	if !ok || wf == nil {
		return nil, false
	}
	return wf, true
}

// Navigators lists the currently registered roots, skipping removed slots.
func (r *Registry) Navigators() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	roots := make([]string, 0, len(r.navigators))
	for root, wf := range r.navigators {
		if wf != nil {
			roots = append(roots, root)
		}
	}
	return roots
}
