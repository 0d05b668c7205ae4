package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	errClientClosed   = errors.New("client closed")
	errSendBufferFull = errors.New("send buffer full")
)

type ClientConfig struct {
	SendBufferSize int
	ReadLimit      int64
	PongWait       time.Duration
	WriteWait      time.Duration
}

func (c ClientConfig) pingPeriod() time.Duration {
	return c.PongWait * 9 / 10
}

// Client serves one websocket connection: a read loop feeding the dispatcher
// one frame at a time and a write pump draining the send buffer.
type Client struct {
	id         string
	conn       *websocket.Conn
	dispatcher *Dispatcher
	cfg        ClientConfig
	log        *slog.Logger

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func NewClient(conn *websocket.Conn, dispatcher *Dispatcher, cfg ClientConfig, log *slog.Logger) *Client {
	return &Client{
		id:         uuid.NewString(),
		conn:       conn,
		dispatcher: dispatcher,
		cfg:        cfg,
		log:        log,
		send:       make(chan []byte, cfg.SendBufferSize),
	}
}

func (c *Client) ID() string { return c.id }

// Send queues msg. A client that cannot keep up is closed rather than
// skipped, so it never observes a gap in its match's messages.
func (c *Client) Send(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClientClosed
	}
	select {
	case c.send <- msg:
		return nil
	default:
		c.closeLocked()
		return errSendBufferFull
	}
}

// Close stops the write pump, which then closes the socket.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
	return nil
}

func (c *Client) closeLocked() {
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Run serves the connection until it closes.
func (c *Client) Run(ctx context.Context) {
	c.dispatcher.Open(c)
	go c.writePump()
	c.readPump(ctx)
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.dispatcher.Disconnect(c)
		_ = c.Close()
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(c.cfg.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})
	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.Warn("Websocket read failed", "conn", c.id, "error", err)
			}
			return
		}
		// Errors already went back to the client as ERROR frames.
		_ = c.dispatcher.Dispatch(ctx, c, frame)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.cfg.pingPeriod())
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.Debug("Websocket write failed", "conn", c.id, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
