package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Event tells connected screens that a collection changed and should be
// refreshed. It carries no data; screens re-fetch.
type Event struct {
	ID       string    `json:"id"`
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
	RecordID string    `json:"recordId,omitempty"`
	At       time.Time `json:"at"`
}

// Actions carried by an Event.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionReserved = "reserved"
)

// broadcastBuffer bounds how many events wait for the run loop.
const broadcastBuffer = 64

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, broadcastBuffer),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS Client Connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// ClientCount returns the number of connected screens.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Notify queues a refresh hint. It never blocks the caller: when the queue
// is full the hint is dropped, screens still refresh on their own.
func (h *Hub) Notify(resource, action, recordID string) {
	msg, err := json.Marshal(Event{
		ID:       uuid.NewString(),
		Resource: resource,
		Action:   action,
		RecordID: recordID,
		At:       time.Now().UTC(),
	})
	if err != nil {
		log.Printf("ws: encode event: %v", err)
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		log.Printf("ws: broadcast queue full, dropping %s %s", resource, action)
	}
}

// Serve is the websocket handler: it registers the connection and keeps it
// open until the client goes away.
func (h *Hub) Serve(c *websocket.Conn) {
	h.Register <- c
	defer func() { h.Unregister <- c }()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
