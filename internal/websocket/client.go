package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxCommandSize = 1024
	sendBufferSize = 64
)

// Client is one WebSocket connection. It listens to the entities in its subscription
// and accepts subscribe and unsubscribe commands from the peer.
type Client struct {
	id        string
	principal *domain.Principal
	subs      *Subscription
	conn      *websocket.Conn
	hub       *Hub

	send      chan []byte
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

var _ Subscriber = (*Client)(nil)

// NewClient wraps an upgraded connection
func NewClient(conn *websocket.Conn, principal *domain.Principal, subs *Subscription, hub *Hub) *Client {
	return &Client{
		id:        uuid.NewString(),
		principal: principal,
		subs:      subs,
		conn:      conn,
		hub:       hub,
		send:      make(chan []byte, sendBufferSize),
	}
}

func (c *Client) ID() string { return c.id }

func (c *Client) Principal() *domain.Principal { return c.principal }

func (c *Client) Wants(entity domain.EntityType) bool { return c.subs.Wants(entity) }

// Send queues a message without blocking. A full buffer means the peer is too slow.
func (c *Client) Send(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.send <- data:
		return nil
	default:
		return ErrClientClosed
	}
}

// Close closes the connection; safe to call more than once
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
		err = c.conn.Close()
	})
	return err
}

// Serve registers the client with the hub and runs it until the peer goes away
func (c *Client) Serve() {
	c.hub.Register(c)
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	go c.writeLoop()
	c.readLoop()
}

// readLoop applies the peer's subscription commands and answers each one
func (c *Client) readLoop() {
	c.conn.SetReadLimit(maxCommandSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("client_id", c.id).Msg("WebSocket unexpected close")
			}
			return
		}
		c.reply(c.handleCommand(data))
	}
}

func (c *Client) handleCommand(data []byte) Event {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return subscriptionEvent(TypeSubscriptionFailed, map[string]string{"error": "malformed command"})
	}
	if err := c.subs.Apply(cmd); err != nil {
		return subscriptionEvent(TypeSubscriptionFailed, map[string]string{"error": err.Error()})
	}

	log.Debug().
		Str("client_id", c.id).
		Str("action", cmd.Action).
		Strs("entities", cmd.Entities).
		Msg("WebSocket subscription changed")
	return subscriptionEvent(TypeSubscribed, map[string][]domain.EntityType{"entities": c.subs.Entities()})
}

func (c *Client) reply(event Event) {
	data, err := event.ToJSON()
	if err != nil {
		return
	}
	if err := c.Send(data); err != nil {
		log.Debug().Err(err).Str("client_id", c.id).Msg("WebSocket reply dropped")
	}
}

// writeLoop drains the send queue and keeps the connection alive with pings
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
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
				log.Warn().Err(err).Str("client_id", c.id).Msg("WebSocket write error")
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
