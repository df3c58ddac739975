package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"venuebook/internal/metrics"
)

const (
	EventAvailabilityUpdated = "availability.updated"

	writeWait = 10 * time.Second
)

// Event is pushed to every connected dashboard.
type Event struct {
	Type         string    `json:"type"`
	VenueID      int64     `json:"venueId"`
	BlockedDates []string  `json:"blockedDates"`
	At           time.Time `json:"at"`
}

type connection struct {
	conn   *websocket.Conn
	userID int64
	mu     sync.Mutex
}

func (c *connection) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *connection) writeControl(messageType int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(messageType, nil, time.Now().Add(writeWait))
}

type Hub struct {
	connections map[string]*connection
	mutex       sync.RWMutex
	log         *logrus.Logger
	now         func() time.Time
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		connections: make(map[string]*connection),
		log:         log,
		now:         time.Now,
	}
}

func (h *Hub) Register(id string, userID int64, conn *websocket.Conn) {
	c := &connection{conn: conn, userID: userID}

	h.mutex.Lock()
	if old, exists := h.connections[id]; exists && old != nil {
		_ = old.conn.Close()
	}
	h.connections[id] = c
	n := len(h.connections)
	h.mutex.Unlock()

	metrics.SetConnections(n)
}

func (h *Hub) Unregister(id string) {
	h.mutex.Lock()
	c, exists := h.connections[id]
	if exists {
		delete(h.connections, id)
	}
	n := len(h.connections)
	h.mutex.Unlock()

	if exists && c != nil {
		_ = c.conn.Close()
	}
	metrics.SetConnections(n)
}

// Broadcast writes the event to every connection and drops the ones that fail.
func (h *Hub) Broadcast(event Event) int {
	h.mutex.RLock()
	targets := make(map[string]*connection, len(h.connections))
	for id, c := range h.connections {
		targets[id] = c
	}
	h.mutex.RUnlock()

	delivered := 0
	for id, c := range targets {
		if err := c.writeJSON(event); err != nil {
			h.log.WithFields(logrus.Fields{"conn_id": id, "user_id": c.userID}).
				WithError(err).Debug("dropping availability subscriber")
			h.Unregister(id)
			continue
		}
		delivered++
	}
	return delivered
}

// PublishAvailability implements the publisher used by the booking and venue
// services.
func (h *Hub) PublishAvailability(venueID int64, blockedDates []string) {
	dates := make([]string, len(blockedDates))
	copy(dates, blockedDates)
	h.Broadcast(Event{
		Type:         EventAvailabilityUpdated,
		VenueID:      venueID,
		BlockedDates: dates,
		At:           h.now().UTC(),
	})
}

// Ping sends a ping frame to one connection.
func (h *Hub) Ping(id string) error {
	h.mutex.RLock()
	c, exists := h.connections[id]
	h.mutex.RUnlock()
	if !exists {
		return websocket.ErrCloseSent
	}
	return c.writeControl(websocket.PingMessage)
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, c := range h.connections {
		if c != nil {
			_ = c.conn.Close()
		}
		delete(h.connections, id)
	}
	metrics.SetConnections(0)
}
