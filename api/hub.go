package api

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rustyeddy/simbot/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	sendBufferSize = 16
)

// Hub fans simulation status updates out to connected websocket clients.
// Slow clients are dropped rather than allowed to stall a broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool

	metrics *metrics.Metrics
	log     *zap.Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(m *metrics.Metrics, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*client]bool),
		metrics: m,
		log:     log,
	}
}

// Add registers a websocket connection and starts its pumps. The hub owns
// the connection from this point and closes it when the peer goes away.
func (h *Hub) Add(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.WSClients.Set(float64(n))
	}
	h.log.Debug("ws client connected", zap.Int("clients", n))

	go c.writePump()
	go h.readPump(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if !h.clients[c] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()

	close(c.send)
	if h.metrics != nil {
		h.metrics.WSClients.Set(float64(n))
	}
	h.log.Debug("ws client disconnected", zap.Int("clients", n))
}

// Broadcast marshals v once and queues it to every client. A client whose
// buffer is full is disconnected.
func (h *Hub) Broadcast(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		h.log.Error("ws broadcast marshal", zap.Error(err))
		return
	}

	h.mu.RLock()
	var stalled []*client
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			stalled = append(stalled, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stalled {
		h.remove(c)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.remove(c)
	}
}

// readPump discards inbound messages; the stream is one-way. It exists to
// notice closes and to keep the pong handler serviced.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
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
