// internal/golf/hub.go
package golf

import (
	"context"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Conn is a single participant's live connection as seen by the hub.
// Outbound payloads are queued on Out and drained by the transport's write
// pump; the hub never writes to the socket directly.
type Conn struct {
	// ID is the opaque per-connection identity used as the user key in
	// group sessions.
	ID string

	// GuestID is the stable ephemeral identity from the auth cookie. It
	// survives reconnects, unlike ID; the hub only logs it.
	GuestID uuid.UUID

	Cancel context.CancelFunc
	Out    chan map[string]interface{}
}

// Write queues msg without blocking. If the channel is full or closed the
// message is dropped and logged; a stuck client must not stall a broadcast.
func (c *Conn) Write(msg map[string]interface{}) {
	select {
	case c.Out <- msg:
	default:
		msgType, _ := msg["type"].(string)
		log.WithFields(log.Fields{
			"connection": c.ID,
			"msg_type":   msgType,
		}).Warn("outbound channel full or closed, dropping message")
	}
}

// WriteNotice sends a caller-only text notice, used for lookup failures.
func (c *Conn) WriteNotice(text string) {
	c.Write(map[string]interface{}{
		"type": "message",
		"msg":  text,
	})
}

// Hub tracks every live connection in the process and fans payloads out to
// a single caller, a member set, or everyone. Group membership itself lives
// in the Registry; the hub only resolves connection IDs to channels.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*Conn),
	}
}

// Add registers a connection. An existing connection under the same ID is
// replaced; its channel is the old transport's to close.
func (h *Hub) Add(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.ID] = c
}

// Remove drops a connection from the hub.
func (h *Hub) Remove(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, connectionID)
}

// Get returns the live connection for connectionID, if any.
func (h *Hub) Get(connectionID string) (*Conn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.conns[connectionID]
	return c, ok
}

// SendTo delivers msg to one connection. Unknown IDs are ignored; the
// target may have disconnected between snapshot and send.
func (h *Hub) SendTo(connectionID string, msg map[string]interface{}) {
	if c, ok := h.Get(connectionID); ok {
		c.Write(msg)
	}
}

// SendMany delivers msg to each listed connection.
func (h *Hub) SendMany(connectionIDs []string, msg map[string]interface{}) {
	for _, id := range connectionIDs {
		h.SendTo(id, msg)
	}
}

// SendAll delivers msg to every connection in the process. The connection
// list is snapshotted first so the lock is not held during the sends.
func (h *Hub) SendAll(msg map[string]interface{}) {
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.conns))
	for _, c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.Write(msg)
	}
}

// Len returns the number of live connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
