// internal/handlers/golf_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fairway/fairway/internal/golf"
	"github.com/fairway/fairway/internal/middleware"
)

// GolfWSHandler upgrades /golf/ws requests and runs the read/write pumps
// for one connection. Each connection gets a fresh opaque ID; the guest
// cookie only gives the player a stable identity across reconnects.
func GolfWSHandler(logger *logrus.Logger, srv *GolfServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteAddr := r.RemoteAddr

		// Cookie must be issued before the upgrade hijacks the response.
		guestID, err := EnsureGuest(w, r)
		if err != nil {
			logger.Warnf("guest identity failed: %v", err)
			http.Error(w, "identity error", http.StatusInternalServerError)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"golf"},
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "golf" {
			c.Close(BadSubprotocolError, "client must speak the golf subprotocol")
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		conn := &golf.Conn{
			ID:      uuid.NewString(),
			GuestID: guestID,
			Cancel:  cancel,
			Out:     make(chan map[string]interface{}, 16),
		}
		srv.Hub.Add(conn)
		middleware.LogWebSocketConnect(logger, remoteAddr, r.URL.Path)

		go writePump(ctx, c, conn, logger)
		readPump(ctx, c, srv, conn, logger)

		// ---- Cleanup after readPump exits ----
		srv.Coordinator.Disconnect(conn.ID)
		srv.Hub.Remove(conn.ID)
		cancel()
		middleware.LogWebSocketDisconnect(logger, remoteAddr, r.URL.Path, nil)
	}
}

// readPump consumes inbound events until the connection closes, handing
// each one to the coordinator. The coordinator owns all locking; the pump
// never holds any.
func readPump(ctx context.Context, c *websocket.Conn, srv *GolfServer, conn *golf.Conn, logger *logrus.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		typ, msg, err := c.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			if closeStatus == websocket.StatusNormalClosure || closeStatus == websocket.StatusGoingAway {
				logger.Infof("websocket closed normally for connection %s", conn.ID)
			} else if !strings.Contains(err.Error(), "context canceled") {
				logger.Warnf("read error for connection %s: %v", conn.ID, err)
			}
			return
		}

		if typ != websocket.MessageText {
			logger.Warnf("ignoring non-text message type %d from connection %s", typ, conn.ID)
			continue
		}

		var packet map[string]interface{}
		if err := json.Unmarshal(msg, &packet); err != nil {
			logger.Warnf("invalid json from connection %s: %v", conn.ID, err)
			conn.WriteNotice("invalid JSON format")
			continue
		}

		handleGolfMessage(packet, srv, conn, logger)
	}
}

// handleGolfMessage dispatches one inbound event by its "type" field.
func handleGolfMessage(packet map[string]interface{}, srv *GolfServer, conn *golf.Conn, logger *logrus.Logger) {
	action, _ := packet["type"].(string)
	group, _ := packet["group"].(string)

	switch action {
	case "join":
		user, _ := packet["user"].(string)
		if group == "" || user == "" {
			conn.WriteNotice("join requires group and user")
			return
		}
		srv.Coordinator.Join(conn.ID, group, user)
	case "code":
		user, _ := packet["user"].(string)
		code, _ := packet["code"].(string)
		srv.Coordinator.Submit(conn.ID, group, user, code)
	case "refresh":
		target, _ := packet["connection_id"].(string)
		srv.Coordinator.Refresh(conn.ID, group, target)
	case "clear":
		srv.Coordinator.Clear(conn.ID, group)
	default:
		logger.Warnf("unknown action %q from connection %s", action, conn.ID)
		conn.WriteNotice("unknown action type: " + action)
	}
}

// writePump drains the connection's outbound channel onto the socket and
// keeps the connection alive with periodic pings.
func writePump(ctx context.Context, c *websocket.Conn, conn *golf.Conn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	defer c.Close(websocket.StatusGoingAway, "write pump stopping")

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-conn.Out:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				logger.Warnf("failed to marshal outgoing msg for connection %s: %v", conn.ID, err)
				continue
			}

			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("failed to write to websocket for connection %s: %v", conn.ID, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("ping failed for connection %s: %v, assuming disconnect", conn.ID, err)
				return
			}
		}
	}
}
