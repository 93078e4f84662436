package net

import (
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is a viewer's connection to a host's hub.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes
}

// Dial connects to the host at addr ("ip:port").
func Dial(addr string) (*Client, error) {
	url := fmt.Sprintf("ws://%s/ws", addr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial host %s: %w", addr, err)
	}
	log.Printf("[NET] connected to host %s", addr)
	return &Client{conn: conn}, nil
}

// Send writes one message to the host.
func (c *Client) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Listen pumps incoming messages into handler until the connection
// drops, then returns the read error.
func (c *Client) Listen(handler func(Message)) error {
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return err
		}
		handler(msg)
	}
}

// Close shuts the connection down.
func (c *Client) Close() error {
	return c.conn.Close()
}
