package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
	sendBufferSize = 256
)

// Client is a single websocket session of a user.
type Client struct {
	id     string
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte

	closeOnce sync.Once
}

func newClient(conn *websocket.Conn, connectionID string, userID uuid.UUID) *Client {
	return &Client{
		id:     connectionID,
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) UserID() uuid.UUID {
	return c.userID
}

// kick closes the underlying connection, which ends the read loop.
func (c *Client) kick() {
	c.closeOnce.Do(func() {
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

type frameHandler interface {
	Handle(ctx context.Context, c *Client, payload []byte) []byte
}

// readPump handles inbound frames until the connection fails. Replies are
// queued through the hub like any other outbound frame.
func (c *Client) readPump(ctx context.Context, hub *Hub, handler frameHandler) error {
	defer c.kick()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return err
			}
			return nil
		}

		if reply := handler.Handle(ctx, c, payload); reply != nil {
			hub.Send(c.id, reply)
		}
	}
}

// writePump drains the send buffer and keeps the connection alive with pings.
// It returns once the hub closes the buffer.
func (c *Client) writePump() error {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.kick()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return nil
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return err
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if errors.Is(err, websocket.ErrCloseSent) {
					return nil
				}
				return err
			}
		}
	}
}
