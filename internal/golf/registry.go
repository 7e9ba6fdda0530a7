// internal/golf/registry.go
package golf

import "sync"

// Registry manages every active group session in memory, keyed by group
// name. Its lock guards only the map itself: group locks are never taken
// while the registry lock is held, and vice versa.
type Registry struct {
	mu     sync.RWMutex
	groups map[string]*Group
}

// NewRegistry initializes and returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		groups: make(map[string]*Group),
	}
}

// GetOrCreate returns the group session for name, creating it on first
// access. A read-only lookup is tried first; on a miss it escalates to an
// exclusive insert and re-checks, so concurrent first joins to the same
// name always converge on a single session.
func (r *Registry) GetOrCreate(name string) *Group {
	r.mu.RLock()
	g, ok := r.groups[name]
	r.mu.RUnlock()
	if ok {
		return g
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.groups[name]; ok {
		return g
	}
	g = NewGroup(name)
	r.groups[name] = g
	return g
}

// Lookup returns the group session for name, if one exists.
func (r *Registry) Lookup(name string) (*Group, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.groups[name]
	return g, ok
}

// FindByConnection scans every group for the one containing connectionID.
// Used on disconnect, which is rare relative to reads, so the linear scan
// over groups is acceptable. The registry lock is released before any group
// lock is taken.
func (r *Registry) FindByConnection(connectionID string) (*Group, User, bool) {
	r.mu.RLock()
	snapshot := make([]*Group, 0, len(r.groups))
	for _, g := range r.groups {
		snapshot = append(snapshot, g)
	}
	r.mu.RUnlock()

	for _, g := range snapshot {
		if u, ok := g.TryGetUser(connectionID); ok {
			return g, u, true
		}
	}
	return nil, User{}, false
}

// Snapshot returns a copy of the current name -> group mapping. Primarily
// for the group-list endpoint and debugging.
func (r *Registry) Snapshot() map[string]*Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*Group, len(r.groups))
	for name, g := range r.groups {
		out[name] = g
	}
	return out
}
