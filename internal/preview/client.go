package preview

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum command size allowed from peer
	maxCommandSize = 4096

	// Outbound frames queued per client before the connection is dropped
	sendBuffer = 8
)

// client is one connected design tool.
type client struct {
	srv    *Server
	conn   *websocket.Conn
	send   chan []byte
	logger *zap.Logger
}

// writePump drains the send queue onto the connection and keeps the peer
// alive with periodic pings. It owns all writes on the connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logger.Debug("Preview write failed", zap.Error(err))
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

// readPump reads control commands until the connection drops and hands them
// to the server for dispatch.
func (c *client) readPump() {
	defer func() {
		c.srv.removeClient(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxCommandSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("Preview connection closed unexpectedly", zap.Error(err))
			}
			return
		}
		cmd, err := decodeCommand(data)
		if err != nil {
			c.logger.Warn("Dropping preview command", zap.Error(err))
			continue
		}
		c.srv.dispatch(cmd)
	}
}

// deliver queues an outbound message, reporting false when the client is too
// slow to keep up.
func (c *client) deliver(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}
