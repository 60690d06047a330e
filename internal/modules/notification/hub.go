package notification

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// connection represents a single WebSocket client
type connection struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
}

// Hub manages all active WebSocket connections, one per user. It is the
// delivery transport for notification events; delivery is best-effort and a
// slow or absent client is simply skipped.
type Hub struct {
	mu          sync.RWMutex
	connections map[int64]*connection
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.connections[c.userID]; ok {
		close(old.send)
	}
	h.connections[c.userID] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.userID]; ok && existing == c {
		delete(h.connections, c.userID)
		close(c.send)
	}
}

// SendToUser pushes a payload to the user's connection if one is open.
// Returns false when the user is offline or the client is too slow.
func (h *Hub) SendToUser(userID int64, payload any) bool {
	data, err := json.Marshal(payload)
	if err != nil {
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.connections[userID]
	if !ok {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		// Client too slow — skip
		return false
	}
}

// ServeWS upgrades the request and runs the connection loops until
// disconnect.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID int64) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 64),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c) // blocks until disconnect
	return nil
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Clients only listen; incoming frames are drained for pong/close
		// handling.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
