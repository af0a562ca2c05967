package chat

import (
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/CtIaMbaCK/betterus-server/internal/logging"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024

	sendBufferSize = 64
)

// Client is one websocket connection for one signed-in user. A user may hold
// several clients at once (multiple tabs); the hub fans events out to all of
// them.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan dtos.ChatEvent

	// typingLimiter throttles typing relays so one connection cannot spam
	// the other participant's sockets.
	typingLimiter *rate.Limiter
}

func newClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:           hub,
		conn:          conn,
		userID:        userID,
		send:          make(chan dtos.ChatEvent, sendBufferSize),
		typingLimiter: rate.NewLimiter(2, 4),
	}
}

// readPump pulls frames off the connection and hands them to the hub until
// the peer goes away.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var event dtos.ChatEvent
		if err := c.conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug("Chat connection closed unexpectedly", "user_id", c.userID, "error", err.Error())
			}
			return
		}
		c.hub.handleEvent(c, event)
	}
}

// writePump drains the send channel onto the connection and keeps the peer
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
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
