package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"solar_planner/internal/service"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB

	// A connection's pending-change buffer; bursts beyond it coalesce into
	// one recompute, which is fine since every push recomputes from scratch.
	changeBuffer = 8
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// wsConnect streams the building report: one frame on connect, then one per
// inventory/settings change published on the bus. The socket authenticates
// via a token query parameter since the upgrade request carries no headers
// from browser clients.
func (h *Handler) wsConnect(c *gin.Context) {
	uid, err := h.services.ParseToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	// Register this connection for change notifications for its user.
	changes := make(chan struct{}, changeBuffer)
	if h.bus != nil {
		h.registerConn(changes, uid)
		defer h.unregisterConn(changes)
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	// Send initial report immediately.
	if err := h.sendReport(c.Request.Context(), conn, uid); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	// Writer/select loop.
	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-changes:
			if err := h.sendReport(c.Request.Context(), conn, uid); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// registerConn adds a connection's change channel to the fan-out registry.
// The handler-wide bus subscription is established on first use and lives for
// the handler's lifetime; per-connection teardown only touches the registry.
func (h *Handler) registerConn(ch chan struct{}, uid int) {
	h.wsOnce.Do(func() {
		if err := h.bus.SubscribeAsync(service.TopicInventoryChanged, h.onInventoryChanged, false); err != nil {
			if h.log != nil {
				h.log.Errorw("ws_subscribe_failed", "err", err)
			}
		}
	})
	h.wsMu.Lock()
	h.wsConns[ch] = uid
	h.wsMu.Unlock()
}

func (h *Handler) unregisterConn(ch chan struct{}) {
	h.wsMu.Lock()
	delete(h.wsConns, ch)
	h.wsMu.Unlock()
}

// onInventoryChanged fans a change event out to every connection of the
// affected user. Sends are non-blocking; a full buffer coalesces bursts into
// one recompute.
func (h *Handler) onInventoryChanged(changedUserID int) {
	h.wsMu.Lock()
	defer h.wsMu.Unlock()
	for ch, uid := range h.wsConns {
		if uid != changedUserID {
			continue
		}
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// Helper: sendReport recomputes and writes the current report with a write deadline.
func (h *Handler) sendReport(ctx context.Context, conn *websocket.Conn, uid int) error {
	report, err := h.services.Planner.Report(ctx, uid)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_report_failed", "err", err)
		}
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: "report", Data: report})
}
