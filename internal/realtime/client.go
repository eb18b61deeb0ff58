package realtime

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Client is one websocket connection subscribed to a workspace room.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	workspaceID string
	userID      string
	send        chan []byte
}

// NewClient binds a connection to a workspace room. Call Serve to start pumping.
func NewClient(hub *Hub, conn *websocket.Conn, workspaceID, userID string) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		workspaceID: workspaceID,
		userID:      userID,
		send:        make(chan []byte, sendBufferSize),
	}
}

// Serve registers the client and runs its pumps. It returns when the connection closes.
func (c *Client) Serve() {
	if !c.hub.join(c) {
		_ = c.conn.Close()
		return
	}
	go c.writePump()
	c.readPump()
}

// readPump only consumes control frames; it exists to notice disconnects and pongs.
func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("Websocket read ended",
					slog.String("user_id", c.userID),
					slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
