// Package websocket broadcasts optimization progress to subscribers,
// adapted from the teacher's internal/websocket hub: the same
// register/unregister/broadcast pattern, keyed by run id instead of user id
// since this engine has runs, not accounts.
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one subscriber's WebSocket connection.
type Client struct {
	RunID string
	Conn  *websocket.Conn
	Send  chan []byte
	Hub   *Hub
}

// ProgressUpdate is pushed to subscribers of a run. The optimize handler
// publishes one update, with Done set, when the run finishes; no
// per-generation updates are sent.
type ProgressUpdate struct {
	RunID       string  `json:"run_id"`
	Generation  int     `json:"generation"`
	BestScore   float64 `json:"best_score"`
	Stagnated   bool    `json:"stagnated"`
	Done        bool    `json:"done"`
}

// Hub maintains active WebSocket connections and routes progress updates to
// the clients watching a given run.
type Hub struct {
	clients    map[*Client]bool
	runClients map[string][]*Client
	register   chan *Client
	unregister chan *Client
	logger     *logrus.Logger
	mutex      sync.RWMutex
}

// NewHub builds an unstarted Hub; call Run in its own goroutine.
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		runClients: make(map[string][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run services the registration and unregistration channels until
// the process exits. Intended to be launched with `go hub.Run()`.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.runClients[client.RunID] = append(h.runClients[client.RunID], client)
			h.mutex.Unlock()

			h.logger.WithFields(logrus.Fields{
				"run_id":        client.RunID,
				"total_clients": len(h.clients),
			}).Info("websocket client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)

				runClients := h.runClients[client.RunID]
				for i, c := range runClients {
					if c == client {
						h.runClients[client.RunID] = append(runClients[:i], runClients[i+1:]...)
						break
					}
				}
				if len(h.runClients[client.RunID]) == 0 {
					delete(h.runClients, client.RunID)
				}
			}
			h.mutex.Unlock()

			h.logger.WithFields(logrus.Fields{
				"run_id":        client.RunID,
				"total_clients": len(h.clients),
			}).Info("websocket client disconnected")
		}
	}
}

// HandleWebSocket upgrades an inbound request to a WebSocket connection
// subscribed to progress updates for the :run_id in the route.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	runID := c.Param("run_id")
	if runID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing run_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Error("failed to upgrade websocket connection")
		return
	}

	client := &Client{
		RunID: runID,
		Conn:  conn,
		Send:  make(chan []byte, 256),
		Hub:   h,
	}

	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

// PublishProgress sends an update to every client watching update.RunID.
func (h *Hub) PublishProgress(update ProgressUpdate) {
	h.mutex.RLock()
	clients := h.runClients[update.RunID]
	h.mutex.RUnlock()

	if len(clients) == 0 {
		return
	}

	data, err := json.Marshal(update)
	if err != nil {
		h.logger.WithError(err).Error("failed to marshal progress update")
		return
	}

	h.mutex.RLock()
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			close(client.Send)
			delete(h.clients, client)
		}
	}
	h.mutex.RUnlock()
}

// ConnectionCount returns the total number of active subscriber connections.
func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.WithError(err).Error("websocket read error")
			}
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.Hub.logger.WithError(err).Error("failed to write websocket message")
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
