package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/katalvlaran/tankroute/terrain"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Per-client outbound queue length.
	sendBuffer = 256
)

// Feed event names.
const (
	// EventRoute carries the planned waypoints of a unit.
	EventRoute = "route"
	// EventNoRoute reports that the requested target cannot be reached.
	EventNoRoute = "no_route"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is one outbound feed entry.
type Message struct {
	UnitID    string          `json:"unit_id"`
	Event     string          `json:"event"`
	Waypoints []terrain.Point `json:"waypoints,omitempty"`
	Data      interface{}     `json:"data,omitempty"`
}

// Client is a single websocket subscriber.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	unitID string
}

// Hub tracks subscribers per unit and fans messages out to them.
type Hub struct {
	mu    sync.RWMutex
	units map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a hub; call Run in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		units:      make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until Close is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-h.quit:
			h.mu.Lock()
			for unitID, clients := range h.units {
				for client := range clients {
					close(client.send)
				}
				delete(h.units, unitID)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Close stops Run and disconnects every client. Safe to call twice.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.quit) })
}

// ServeWS upgrades the request and subscribes the connection to unitID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, unitID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		unitID: unitID,
	}

	select {
	case h.register <- client:
	case <-h.quit:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// BroadcastRoute queues a route update for every subscriber of unitID.
func (h *Hub) BroadcastRoute(unitID string, route []terrain.Point) {
	h.publish(&Message{UnitID: unitID, Event: EventRoute, Waypoints: route})
}

// BroadcastEvent queues a custom event for every subscriber of unitID.
func (h *Hub) BroadcastEvent(unitID, event string, data interface{}) {
	h.publish(&Message{UnitID: unitID, Event: event, Data: data})
}

func (h *Hub) publish(m *Message) {
	select {
	case h.broadcast <- m:
	case <-h.quit:
	}
}

// ClientCount returns the number of subscribers of unitID.
func (h *Hub) ClientCount(unitID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.units[unitID])
}

// registerClient adds a client to its unit.
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	if h.units[client.unitID] == nil {
		h.units[client.unitID] = make(map[*Client]bool)
	}
	h.units[client.unitID][client] = true
	n := len(h.units[client.unitID])
	h.mu.Unlock()

	log.Printf("Client registered for unit %s (total clients: %d)", client.unitID, n)
}

// unregisterClient removes a client from its unit and closes its queue.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked expects h.mu to be held.
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.units[client.unitID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)

	if len(clients) == 0 {
		delete(h.units, client.unitID)
	}
	log.Printf("Client unregistered from unit %s (remaining clients: %d)", client.unitID, len(clients))
}

// broadcastMessage delivers a message to its unit's clients. Clients whose
// queue is full are dropped.
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.units[message.UnitID] {
		select {
		case client.send <- data:
		default:
			h.removeLocked(client)
		}
	}
}

// readPump drains the connection so pongs and close frames are processed.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}

// writePump pumps queued messages to the connection and keeps it alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One JSON document per frame.
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
