package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	writeWait      = 2 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024 * 1024 // 1MB for larger JSON messages
)

// -----------------------------------------------------------------------------
// Client Structure
// -----------------------------------------------------------------------------

type Client struct {
	hub  *APIServer
	conn *websocket.Conn
	send chan *models.MLatestData

	// Symbol subscription filter, empty means all symbols
	symbols   map[string]struct{}
	symbolsMu sync.Mutex
}

// -----------------------------------------------------------------------------

func (c *Client) setSymbols(symbols []string) {
	set := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		set[sym] = struct{}{}
	}

	c.symbolsMu.Lock()
	c.symbols = set
	c.symbolsMu.Unlock()
}

// -----------------------------------------------------------------------------

// filtered returns a copy of state with markets narrowed to the client's
// subscription. Always copies so callers may mutate the result.
func (c *Client) filtered(state *models.MLatestData) *models.MLatestData {
	out := *state

	c.symbolsMu.Lock()
	set := c.symbols
	c.symbolsMu.Unlock()

	if len(set) == 0 {
		out.Markets = append([]models.MMarketSnapshot(nil), state.Markets...)
		return &out
	}

	markets := make([]models.MMarketSnapshot, 0, len(set))
	for _, m := range state.Markets {
		if _, ok := set[m.Symbol]; ok {
			markets = append(markets, m)
		}
	}
	out.Markets = markets
	return &out
}

// -----------------------------------------------------------------------------
// readPump - handles incoming messages from client
// Act as a Watchdog for the connection
// -----------------------------------------------------------------------------

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
		c.hub.Logger.Info("Client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.Logger.Info("WebSocket error: %v", err)
			}
			break
		}
		// Handle the message (subscribe commands)
		c.hub.HandleClientMessage(c, message)
	}
}

// -----------------------------------------------------------------------------
// writePump - sends messages to client
// -----------------------------------------------------------------------------

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
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.hub.Logger.Info("Write error: %v", err)
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
