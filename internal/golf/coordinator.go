// internal/golf/coordinator.go
package golf

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/fairway/fairway/internal/analysis"
	"github.com/fairway/fairway/internal/rating"
)

// Coordinator translates inbound session events into registry operations
// and fans results out through the hub. No registry or group lock is ever
// held across scoring or a send: group state is snapshotted first, then the
// locks are released, then payloads go out.
type Coordinator struct {
	registry *Registry
	hub      *Hub
	scorer   *analysis.Scorer
	log      *logrus.Logger
}

// NewCoordinator wires a coordinator over the given registry and hub.
func NewCoordinator(reg *Registry, hub *Hub, scorer *analysis.Scorer, logger *logrus.Logger) *Coordinator {
	return &Coordinator{
		registry: reg,
		hub:      hub,
		scorer:   scorer,
		log:      logger,
	}
}

// Registry exposes the session registry, e.g. for the group-list endpoint.
func (c *Coordinator) Registry() *Registry {
	return c.registry
}

// Join places the connection into the named group, creating group and entry
// as needed. The first joiner becomes owner and is told so; everyone in the
// group then receives the refreshed participant list.
func (c *Coordinator) Join(connectionID, groupName, userName string) {
	g := c.registry.GetOrCreate(groupName)
	_, created := g.GetOrCreateUser(connectionID, userName)

	if g.IsOwner(connectionID) {
		c.hub.SendTo(connectionID, map[string]interface{}{"type": "is_owner"})
	}

	c.log.WithFields(logrus.Fields{
		"group":      groupName,
		"connection": connectionID,
		"user":       userName,
		"created":    created,
	}).Info("join")

	c.broadcastParticipants(g)
}

// Submit scores code for the given connection and records the result. The
// caller gets the full metric breakdown; every connection in the process
// gets the (connection, user, code, rating) tuple, so all groups watch each
// other's attempts. Lookup misses produce a caller-only notice.
func (c *Coordinator) Submit(connectionID, groupName, userName, code string) {
	g, ok := c.registry.Lookup(groupName)
	if !ok {
		c.hub.SendTo(connectionID, noticePayload("unable to find group (please reload)"))
		return
	}
	if _, ok := g.TryGetUser(connectionID); !ok {
		c.hub.SendTo(connectionID, noticePayload("unable to find user (please reload)"))
		return
	}

	// Scoring runs outside any lock. A failed complexity pass has already
	// been degraded to the sentinel inside the scorer, so the submission
	// still completes with a worst-case rating.
	m := c.scorer.Score(code, true)
	r := rating.Rate(m.Bytes, m.Lines, m.Complexity, m.Characters)

	if !g.RecordSubmission(connectionID, code, r) {
		// Disconnected between lookup and record; the result still goes
		// back to whoever is listening on the caller's channel.
		c.log.WithField("connection", connectionID).Debug("submission from departed user not recorded")
	}

	c.log.WithFields(logrus.Fields{
		"group":      groupName,
		"connection": connectionID,
		"bytes":      m.Bytes,
		"lines":      m.Lines,
		"complexity": m.Complexity,
		"rating":     r,
		"elapsed":    m.Duration,
	}).Info("submission scored")

	c.hub.SendTo(connectionID, map[string]interface{}{
		"type":       "my_result",
		"bytes":      m.Bytes,
		"lines":      m.Lines,
		"complexity": m.Complexity,
		"characters": m.Characters,
		"rating":     r,
	})
	c.hub.SendAll(codePayload(connectionID, userName, code, r))
}

// Refresh sends the target user's last code and rating to the caller only.
func (c *Coordinator) Refresh(connectionID, groupName, targetConnectionID string) {
	g, ok := c.registry.Lookup(groupName)
	if !ok {
		c.hub.SendTo(connectionID, noticePayload("unable to find group (please reload)"))
		return
	}
	u, ok := g.TryGetUser(targetConnectionID)
	if !ok {
		c.hub.SendTo(connectionID, noticePayload("unable to find user (please reload)"))
		return
	}
	c.hub.SendTo(connectionID, codePayload(u.ConnectionID, u.Name, u.Code, u.Rating))
}

// Clear resets every entry in the group. Only the owner may trigger it;
// anyone else is silently ignored. Members receive a bare clear signal.
func (c *Coordinator) Clear(connectionID, groupName string) {
	g, ok := c.registry.Lookup(groupName)
	if !ok {
		return
	}
	if !g.IsOwner(connectionID) {
		return
	}

	g.ClearAll()
	c.log.WithField("group", groupName).Info("scores cleared by owner")

	c.broadcastToGroup(g, map[string]interface{}{"type": "clear"})
}

// Disconnect removes the connection from whichever group holds it. If the
// departing user owned the group, the first member of a single post-removal
// snapshot is elevated and notified; the group then receives the updated
// participant list. Unknown connections are a no-op.
func (c *Coordinator) Disconnect(connectionID string) {
	g, _, ok := c.registry.FindByConnection(connectionID)
	if !ok {
		return
	}

	wasOwner := g.IsOwner(connectionID)
	g.RemoveUser(connectionID)

	c.log.WithFields(logrus.Fields{
		"group":      g.Name,
		"connection": connectionID,
		"was_owner":  wasOwner,
	}).Info("disconnect")

	if wasOwner {
		// One consistent snapshot picks the successor; TryElevateOwner
		// re-checks membership under the group lock, so a racing removal
		// just falls through to the next candidate.
		for _, u := range g.Users() {
			if g.TryElevateOwner(u.ConnectionID) {
				c.hub.SendTo(u.ConnectionID, map[string]interface{}{"type": "is_owner"})
				break
			}
		}
	}

	c.broadcastParticipants(g)
}

// broadcastParticipants sends the group's member list to the group. Empty
// groups broadcast nothing.
func (c *Coordinator) broadcastParticipants(g *Group) {
	users := g.Users()
	if len(users) == 0 {
		return
	}

	triples := make([]string, 0, len(users))
	ids := make([]string, 0, len(users))
	for _, u := range users {
		triples = append(triples, u.ConnectionID+","+u.Name+","+formatRating(u.Rating))
		ids = append(ids, u.ConnectionID)
	}

	c.hub.SendMany(ids, map[string]interface{}{
		"type":  "participants",
		"users": triples,
	})
}

// broadcastToGroup sends msg to every current member of g, from a snapshot
// taken outside the send loop.
func (c *Coordinator) broadcastToGroup(g *Group, msg map[string]interface{}) {
	users := g.Users()
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ConnectionID)
	}
	c.hub.SendMany(ids, msg)
}

func codePayload(connectionID, userName, code string, r float64) map[string]interface{} {
	return map[string]interface{}{
		"type":          "code",
		"connection_id": connectionID,
		"user":          userName,
		"code":          code,
		"rating":        r,
	}
}

func noticePayload(text string) map[string]interface{} {
	return map[string]interface{}{
		"type": "message",
		"msg":  text,
	}
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'g', -1, 64)
}
