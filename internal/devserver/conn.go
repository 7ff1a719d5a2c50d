package devserver

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"quizez/pkg/wire"
)

const (
	sendBuffer   = 256
	writeTimeout = 10 * time.Second
)

// frame is the envelope every message travels in, both directions.
type frame struct {
	Event string       `json:"event"`
	Data  wire.Payload `json:"data,omitempty"`
}

// conn is one client socket. Writes flow through a buffered channel drained
// by a single writer goroutine, so broadcasts never block on a slow peer and
// each client sees events in the order they were enqueued.
type conn struct {
	id  string
	ws  *websocket.Conn
	log *zap.Logger

	mu     sync.Mutex
	send   chan frame
	closed bool
}

func newConn(id string, ws *websocket.Conn, log *zap.Logger) *conn {
	return &conn{
		id:   id,
		ws:   ws,
		log:  log.With(zap.String("conn", id)),
		send: make(chan frame, sendBuffer),
	}
}

// enqueue queues an event for delivery. A full buffer means the client
// stopped reading; the event is dropped and the connection will die on its
// next ping anyway.
func (c *conn) enqueue(event string, data wire.Payload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- frame{Event: event, Data: data}:
	default:
		c.log.Warn("send buffer full, dropping event", zap.String("event", event))
	}
}

// shutdown stops the writer. Safe to call more than once; enqueue becomes a
// no-op afterwards.
func (c *conn) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump drains the send channel onto the socket until shutdown.
func (c *conn) writePump() {
	for f := range c.send {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.ws.WriteJSON(f); err != nil {
			c.log.Debug("write failed", zap.Error(err))
			break
		}
	}
	_ = c.ws.Close()
}

// readPump parses frames off the socket and hands them to the dispatcher.
// It returns when the client goes away.
func (c *conn) readPump(s *Server) {
	for {
		var f frame
		if err := c.ws.ReadJSON(&f); err != nil {
			c.log.Debug("read loop ended", zap.Error(err))
			return
		}
		s.dispatch(c, f.Event, f.Data)
	}
}
