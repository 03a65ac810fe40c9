package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"charide/internal/domain/user"
	"charide/internal/general/jwt"
	"charide/internal/general/logger"

	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout   = 5 * time.Second
	wsCloseAckWindow = 2 * time.Second
	ctrlTimeout      = 5 * time.Second
	readIdleTimeout  = 60 * time.Second
	pingInterval     = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WebSocket serves the ride status stream to connected clients with JWT auth.
type WebSocket struct {
	logger     *logger.Logger
	jwtMgr     *jwt.Manager
	hub        *Hub
	writeLocks sync.Map // key: *websocket.Conn -> *sync.Mutex
}

// NewWebSocket creates a WebSocket handler backed by the given hub.
func NewWebSocket(logger *logger.Logger, jwtMgr *jwt.Manager, hub *Hub) *WebSocket {
	return &WebSocket{
		logger: logger,
		jwtMgr: jwtMgr,
		hub:    hub,
	}
}

// ConnectPassenger handles WebSocket connections from passengers. The token
// comes from the Authorization header or the `token` query parameter, checked
// before the upgrade so failures stay plain HTTP errors.
func (ws *WebSocket) ConnectPassenger(w http.ResponseWriter, r *http.Request) {
	cl, err := ws.authenticate(w, r, user.RolePassenger)
	if err != nil {
		return
	}
	ws.serve(w, r, cl.Subject, ws.hub.SubscribePassenger(cl.Subject), "passenger_id")
}

// ConnectDriver handles WebSocket connections from drivers.
func (ws *WebSocket) ConnectDriver(w http.ResponseWriter, r *http.Request) {
	cl, err := ws.authenticate(w, r, user.RoleDriver)
	if err != nil {
		return
	}
	ws.serve(w, r, cl.Subject, ws.hub.SubscribeDriver(cl.Subject), "driver_id")
}

func (ws *WebSocket) authenticate(w http.ResponseWriter, r *http.Request, role user.Role) (*jwt.Claims, error) {
	token, err := jwt.FromAuthorization(r)
	if err != nil {
		ws.logger.Error(r.Context(), "ws_auth_failed", "Missing WebSocket credentials", err, nil)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, err
	}
	cl, err := ws.jwtMgr.ParseAndValidate(token)
	if err != nil {
		ws.logger.Error(r.Context(), "ws_auth_failed", "Invalid WebSocket token", err, nil)
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return nil, err
	}
	if err := jwt.RoleAllowed(cl, role); err != nil {
		ws.logger.Error(r.Context(), "ws_auth_failed", "Role not allowed on this endpoint", err, map[string]any{
			"role": cl.Role.String(),
		})
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil, err
	}
	return cl, nil
}

func (ws *WebSocket) serve(w http.ResponseWriter, r *http.Request, subjectID string, sub *Subscription, idField string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		sub.Cancel()
		ws.logger.Error(r.Context(), "websocket_upgrade_failed", "Failed to upgrade to WebSocket", err, nil)
		return
	}

	// Teardown order (LIFO on return):
	defer conn.Close()               // 3) close the socket last
	defer ws.writeLocks.Delete(conn) // 2) forget per-connection writer lock
	defer sub.Cancel()               // 1) unregister from the hub first

	conn.SetReadLimit(1 << 20) // 1 MiB

	if err := ws.sendConnected(conn, idField, subjectID); err != nil {
		ws.logger.Error(r.Context(), "ws_hello_failed", "Failed to send connected message", err, nil)
		return
	}

	ws.logger.Info(r.Context(), "ws_connected", "WebSocket client connected",
		map[string]any{idField: subjectID})

	_ = conn.SetReadDeadline(time.Now().Add(readIdleTimeout))
	conn.SetPongHandler(func(_ string) error {
		return conn.SetReadDeadline(time.Now().Add(readIdleTimeout))
	})

	done := make(chan struct{})

	// writer: forward hub updates and keep the connection alive with pings
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-sub.C:
				if !ok {
					return
				}
				if err := ws.writeJSON(conn, map[string]any{
					"type": "ride_status",
					"data": msg,
				}); err != nil {
					_ = conn.Close()
					return
				}
			case <-ticker.C:
				mu := ws.lockOf(conn)
				mu.Lock()
				_ = conn.SetWriteDeadline(time.Now().Add(ctrlTimeout))
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ctrlTimeout))
				mu.Unlock()
				if err != nil {
					// Close socket to unblock the reader; goroutine exits.
					_ = conn.Close()
					ws.logger.Error(r.Context(), "ws_ping_failed", "Failed to send ping", err, map[string]any{
						idField: subjectID,
					})
					return
				}
			}
		}
	}()

	// reader: the stream is outbound-only, inbound frames only feed deadlines
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readIdleTimeout))
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				ws.logger.Error(r.Context(), "ws_unexpected_close", "Connection closed unexpectedly", err, map[string]any{
					idField: subjectID,
				})
				ws.wsWriteClose(conn, websocket.CloseInternalServerErr, "internal error")
			} else {
				ws.logger.Info(r.Context(), "ws_connection_closed", "Connection closed normally", map[string]any{
					idField: subjectID,
				})
				ws.wsWriteClose(conn, websocket.CloseNormalClosure, "bye")
			}
			break
		}
	}

	close(done)
}

// sendConnected tells the client the stream is live.
func (ws *WebSocket) sendConnected(conn *websocket.Conn, idField, subjectID string) error {
	return ws.writeJSON(conn, map[string]any{
		"type":      "connected",
		"success":   true,
		idField:     subjectID,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeJSON marshals v and writes a single TextMessage to the connection.
func (ws *WebSocket) writeJSON(conn *websocket.Conn, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	mu := ws.lockOf(conn)
	mu.Lock()
	defer mu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func (ws *WebSocket) wsWriteClose(conn *websocket.Conn, code int, reason string) {
	mu := ws.lockOf(conn)
	mu.Lock()
	defer mu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(wsCloseAckWindow),
	)
	ws.writeLocks.Delete(conn)
}

// lockOf returns the writer mutex for a specific connection.
func (ws *WebSocket) lockOf(conn *websocket.Conn) *sync.Mutex {
	if v, ok := ws.writeLocks.Load(conn); ok {
		if mu, ok := v.(*sync.Mutex); ok && mu != nil {
			return mu
		}
	}
	mu := &sync.Mutex{}
	actual, _ := ws.writeLocks.LoadOrStore(conn, mu)
	return actual.(*sync.Mutex)
}
