package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// clientMessage is the only inbound frame clients may send: room
// subscription changes for per-lead updates.
type clientMessage struct {
	Action string `json:"action"`
	LeadID int    `json:"lead_id"`
}

// Client is one websocket connection bound to an authenticated user.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID int
	role   string
}

// newClient registers a connection with the hub and subscribes it to
// its default rooms: its own user room, its role room and all-users.
func newClient(hub *Hub, conn *websocket.Conn, userID int, role string) *Client {
	c := &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 32),
		userID: userID,
		role:   role,
	}

	hub.join(c, fmt.Sprintf("user:%d", userID))
	hub.join(c, fmt.Sprintf("role:%s", role))
	hub.join(c, "all-users")

	hub.register <- c
	return c
}

// readPump consumes inbound frames until the connection drops. The only
// supported actions are join:lead and leave:lead.
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
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Action {
		case "join:lead":
			if msg.LeadID > 0 {
				c.hub.join(c, fmt.Sprintf("lead:%d", msg.LeadID))
			}
		case "leave:lead":
			if msg.LeadID > 0 {
				c.hub.leave(c, fmt.Sprintf("lead:%d", msg.LeadID))
			}
		}
	}
}

// writePump pushes outbound frames and keepalive pings.
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
