package transport

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"quizez/pkg/wire"
)

const (
	writeTimeout = 5 * time.Second

	// ReasonClientDisconnect is reported to disconnect handlers when this side
	// closed the channel deliberately.
	ReasonClientDisconnect = "client disconnect"
)

// frame is the on-wire envelope for one event.
type frame struct {
	Event string       `json:"event"`
	Data  wire.Payload `json:"data,omitempty"`
}

// Socket is a websocket-backed Transport. Events are JSON frames of the form
// {"event": name, "data": payload}. All inbound dispatch happens on the read
// goroutine, so handlers observe events in arrival order.
type Socket struct {
	url *url.URL
	log *zap.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	closing   bool

	handlers     map[string][]Handler
	onConnect    []func()
	onDisconnect []func(string)
}

// NewSocket builds a socket for the given server URL. http/https schemes are
// rewritten to ws/wss; a bare host gets the /ws path.
func NewSocket(rawURL string, log *zap.Logger) (*Socket, error) {
	if log == nil {
		log = zap.NewNop()
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, ErrInvalidURL
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return nil, ErrInvalidURL
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return &Socket{
		url:      u,
		log:      log,
		handlers: make(map[string][]Handler),
	}, nil
}

func (s *Socket) On(event string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[event] = append(s.handlers[event], h)
}

func (s *Socket) OnConnect(h func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onConnect = append(s.onConnect, h)
}

func (s *Socket) OnDisconnect(h func(reason string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDisconnect = append(s.onDisconnect, h)
}

func (s *Socket) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Connect dials in the background. On success the connect handlers fire and
// the read loop starts, both on the same new goroutine; on dial failure or
// timeout only onTimeout fires.
func (s *Socket) Connect(timeout time.Duration, onTimeout func()) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url.String(), nil)
		if err != nil {
			s.log.Warn("dial failed", zap.String("url", s.url.String()), zap.Error(err))
			if onTimeout != nil {
				onTimeout()
			}
			return
		}

		s.mu.Lock()
		s.conn = conn
		s.connected = true
		s.closing = false
		connectHandlers := s.onConnect
		s.mu.Unlock()

		for _, h := range connectHandlers {
			h()
		}
		s.readLoop(conn)
	}()
}

// Disconnect closes the connection. The read loop notices the closure and
// fires the disconnect handlers with ReasonClientDisconnect.
func (s *Socket) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected || s.conn == nil {
		return
	}
	s.closing = true
	deadline := time.Now().Add(writeTimeout)
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	_ = s.conn.Close()
}

// Emit writes one event frame. The socket mutex serializes concurrent writers
// and preserves per-caller FIFO order.
func (s *Socket) Emit(event string, p wire.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected || s.conn == nil {
		return ErrNotConnected
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	if err := s.conn.WriteJSON(frame{Event: event, Data: p}); err != nil {
		s.log.Warn("emit failed", zap.String("event", event), zap.Error(err))
		return err
	}
	return nil
}

func (s *Socket) readLoop(conn *websocket.Conn) {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			s.mu.Lock()
			wasClosing := s.closing
			s.connected = false
			s.conn = nil
			disconnectHandlers := s.onDisconnect
			s.mu.Unlock()

			reason := closeReason(err)
			if wasClosing {
				reason = ReasonClientDisconnect
			}
			for _, h := range disconnectHandlers {
				h(reason)
			}
			return
		}

		s.mu.Lock()
		eventHandlers := s.handlers[f.Event]
		s.mu.Unlock()
		if len(eventHandlers) == 0 {
			s.log.Debug("no handler for event", zap.String("event", f.Event))
			continue
		}
		for _, h := range eventHandlers {
			h(f.Data)
		}
	}
}

func closeReason(err error) string {
	if ce, ok := err.(*websocket.CloseError); ok && ce.Text != "" {
		return ce.Text
	}
	return err.Error()
}
