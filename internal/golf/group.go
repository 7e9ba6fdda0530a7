// internal/golf/group.go
package golf

import "sync"

// Group is the in-memory session for one named golf group. All entry state
// is guarded by a single RWMutex: reads (snapshots, lookups) may run
// concurrently, writes are exclusive. Two different groups never share a
// lock, so load on one group cannot block another.
type Group struct {
	// Name is unique and case-sensitive across the registry.
	Name string

	mu    sync.RWMutex
	users map[string]*User // connectionID -> entry
	order []string         // connection IDs in join order, for snapshots
	owner string           // connection ID of the owner, "" if none
}

// NewGroup creates an empty group session.
func NewGroup(name string) *Group {
	return &Group{
		Name:  name,
		users: make(map[string]*User),
	}
}

// GetOrCreateUser returns a copy of the entry for connectionID, creating it
// if absent. The first entry ever created while the group is ownerless
// becomes the owner. The whole operation is atomic: two racing first joins
// produce exactly one entry and one owner. Repeated calls with the same
// connectionID are idempotent and never re-run owner elevation.
//
// The boolean reports whether a new entry was created.
func (g *Group) GetOrCreateUser(connectionID, name string) (User, bool) {
	// Fast path: most joins after the first are rejoins or refreshes.
	g.mu.RLock()
	if u, ok := g.users[connectionID]; ok {
		snapshot := *u
		g.mu.RUnlock()
		return snapshot, false
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()

	// Re-check: another writer may have created the entry between locks.
	if u, ok := g.users[connectionID]; ok {
		return *u, false
	}

	u := &User{
		ConnectionID: connectionID,
		Name:         name,
		Rating:       Unrated,
	}
	if g.owner == "" {
		g.owner = connectionID
	}
	g.users[connectionID] = u
	g.order = append(g.order, connectionID)
	return *u, true
}

// TryGetUser returns a copy of the entry for connectionID, if present.
func (g *Group) TryGetUser(connectionID string) (User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	u, ok := g.users[connectionID]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// RemoveUser deletes the entry for connectionID and reports whether a
// removal occurred. If the removed user owned the group, ownership is
// cleared; re-electing a successor is the coordinator's job.
func (g *Group) RemoveUser(connectionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.users[connectionID]; !ok {
		return false
	}
	if g.owner == connectionID {
		g.owner = ""
	}
	delete(g.users, connectionID)
	for i, id := range g.order {
		if id == connectionID {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return true
}

// IsOwner reports whether connectionID currently owns the group.
func (g *Group) IsOwner(connectionID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.owner != "" && g.owner == connectionID
}

// TryElevateOwner promotes connectionID to owner. It fails if the group
// already has an owner or the connection is not a member, so a stale
// candidate from an old snapshot can never be elected.
func (g *Group) TryElevateOwner(connectionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.owner != "" {
		return false
	}
	if _, ok := g.users[connectionID]; !ok {
		return false
	}
	g.owner = connectionID
	return true
}

// RecordSubmission stores a scored submission on the entry and bumps its
// attempt count. Returns false if the connection is no longer a member.
func (g *Group) RecordSubmission(connectionID, code string, rating float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	u, ok := g.users[connectionID]
	if !ok {
		return false
	}
	u.Code = code
	u.Rating = rating
	u.Attempts++
	return true
}

// ClearAll resets every entry's code, rating, and attempts to their initial
// state. Membership and ownership are untouched.
func (g *Group) ClearAll() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, u := range g.users {
		u.Code = ""
		u.Rating = Unrated
		u.Attempts = 0
	}
}

// Users returns a point-in-time copy of every entry in join order. The
// order is stable for display; callers must not rely on it for correctness.
func (g *Group) Users() []User {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]User, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, *g.users[id])
	}
	return out
}

// Len returns the current member count.
func (g *Group) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.users)
}

// OwnerID returns the owner's connection ID, or "" if the group is
// ownerless.
func (g *Group) OwnerID() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.owner
}
