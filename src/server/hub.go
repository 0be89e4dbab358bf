package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop.
// Invariant: a state pointer is never written again once it has been stored
// as latestState or handed to a client channel. Clients always receive their
// own filtered copy.
func (s *APIServer) handleWebsockets() {
	for {
		select {
		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.clientCount.Store(int64(len(s.clients)))

			// Send initial state on connect
			s.stateMutex.RLock()
			state := s.latestState
			s.stateMutex.RUnlock()
			if state != nil {
				init := client.filtered(state)
				init.Type = "INITIAL"
				client.send <- init
			}

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			s.clientCount.Store(int64(len(s.clients)))

		case message := <-s.broadcast:
			// Stamp the count before the pointer is shared anywhere
			message.Metrics.ClientCount = len(s.clients)

			// Update state and broadcast
			s.stateMutex.Lock()
			s.latestState = message
			s.stateMutex.Unlock()

			for client := range s.clients {
				select {
				case client.send <- client.filtered(message):
					// Message sent successfully
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
			s.clientCount.Store(int64(len(s.clients)))
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// UpdateAllDatas - replaces the cached state without notifying clients.
// Stores a copy so the caller's payload (and its Type label) stays untouched.
func (s *APIServer) UpdateAllDatas(data *models.MLatestData) {
	if data == nil {
		return
	}

	state := *data

	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()
	s.latestState = &state
}

// -----------------------------------------------------------------------------

// Broadcast - queues the state for delivery to every connected client.
// Enqueues a copy; the caller's payload is never written after this returns.
func (s *APIServer) Broadcast(message *models.MLatestData) {
	if message == nil {
		return
	}

	state := *message
	state.Type = "UPDATE"

	// With a large buffer, blocking is rare. We trust the queue size
	// set in NewAPIServer.
	s.broadcast <- &state
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MLatestData, 256),
	}

	s.register <- client

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *APIServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	client.setSymbols(cmd.Symbols)

	s.stateMutex.RLock()
	response := client.filtered(s.latestState)
	s.stateMutex.RUnlock()

	response.Type = "INITIAL"

	// Use select to avoid blocking if client's send buffer is full
	select {
	case client.send <- response:
	default:
	}
}
