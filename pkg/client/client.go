package client

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"quizez/pkg/quiz"
	"quizez/pkg/transport"
	"quizez/pkg/wire"
)

// Client is the stateful protocol client for one quiz-server connection. It
// guards every request against the session state, stamps the current session
// id on outgoing requests, and republishes decoded inbound events to its
// Delegate.
//
// The client's mutex makes each guard-then-emit atomic, so operations may be
// called from any goroutine; delegate callbacks always arrive on the
// transport's delivery goroutine.
type Client struct {
	transport transport.Transport
	log       *zap.Logger

	mu       sync.Mutex
	state    sessionState
	delegate Delegate
}

// NewClient wires a client to its transport. The transport must be exclusive
// to this client: event handlers are registered here and never removed.
// A nil logger disables logging.
func NewClient(t transport.Transport, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		transport: t,
		log:       log,
		delegate:  NoopDelegate{},
	}
	c.registerHandlers()
	return c
}

// SetDelegate replaces the delegate; there is no multicast. A nil delegate
// restores the no-op default.
func (c *Client) SetDelegate(d Delegate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d == nil {
		d = NoopDelegate{}
	}
	c.delegate = d
}

func (c *Client) currentDelegate() Delegate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delegate
}

// Connected reports whether the transport connection is established.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.connected
}

// SessionID returns the created or joined session's id, or "" when not in a
// session. During a pending join it already returns the requested id.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.sessionID
}

// IsSessionOwner reports whether this connection created its session.
func (c *Client) IsSessionOwner() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.isOwner
}

// Username returns the display name used to join, or "" for owners and
// unjoined connections.
func (c *Client) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.username
}

// SessionStarted reports whether the session has started.
func (c *Client) SessionStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.started
}

// SessionEnded reports whether the session has ended.
func (c *Client) SessionEnded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.ended
}

// Connect asks the transport to dial. The delegate's OnConnected fires on
// success; onTimeout fires instead if no connection is established within
// timeout. Connect itself never blocks.
func (c *Client) Connect(timeout time.Duration, onTimeout func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.connected {
		return ErrAlreadyConnected
	}
	c.transport.Connect(timeout, onTimeout)
	return nil
}

// Disconnect drops the connection. Local session state resets when the
// transport reports the disconnect.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.connected {
		return ErrNotConnected
	}
	c.transport.Disconnect()
	return nil
}

// CreateSession asks the server for a new session owned by this connection.
func (c *Client) CreateSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.connected {
		return ErrNotConnected
	}
	if c.state.inSession() {
		return ErrAlreadyInSession
	}
	return c.emit(wire.CreateSessionRequest{})
}

// JoinSession joins the session with the given id under a display name. The
// session id and name are recorded optimistically and rolled back if the
// server rejects the join.
func (c *Client) JoinSession(sessionID, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.connected {
		return ErrNotConnected
	}
	if c.state.inSession() {
		return ErrAlreadyInSession
	}
	c.state.joinRequested(sessionID, name)
	if err := c.emit(wire.JoinSessionRequest{Session: sessionID, Name: name}); err != nil {
		// The request never left; undo the optimistic record.
		c.state.joinFailed()
		return err
	}
	return nil
}

// KickUser removes a user from the owned session. The session id on the wire
// is always this client's own, never caller supplied.
func (c *Client) KickUser(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.connected {
		return ErrNotConnected
	}
	if !c.state.isOwner {
		return ErrNotSessionOwner
	}
	return c.emit(wire.KickUserRequest{Name: name})
}

// StartSession starts the owned session.
func (c *Client) StartSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.connected {
		return ErrNotConnected
	}
	if !c.state.isOwner {
		return ErrNotSessionOwner
	}
	return c.emit(wire.StartSessionRequest{})
}

// EndSession ends the owned session; it must have started and not yet ended.
func (c *Client) EndSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.connected {
		return ErrNotConnected
	}
	if !c.state.isOwner {
		return ErrNotSessionOwner
	}
	if !c.state.started {
		return ErrSessionNotStarted
	}
	if c.state.ended {
		return ErrSessionEnded
	}
	return c.emit(wire.EndSessionRequest{})
}

// AddQuestion adds a question to the owned session's quiz. Content is not
// validated here; run quiz.Question.Validate first, the protocol client is a
// transport rather than a content gate.
func (c *Client) AddQuestion(q quiz.Question) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.connected {
		return ErrNotConnected
	}
	if !c.state.isOwner {
		return ErrNotSessionOwner
	}
	if c.state.ended {
		return ErrSessionEnded
	}
	return c.emit(wire.AddQuestionRequest{Question: q})
}

// PushNextQuestion pushes the next quiz question to every session member.
func (c *Client) PushNextQuestion() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.connected {
		return ErrNotConnected
	}
	if !c.state.isOwner {
		return ErrNotSessionOwner
	}
	if !c.state.started {
		return ErrSessionNotStarted
	}
	if c.state.ended {
		return ErrSessionEnded
	}
	return c.emit(wire.NextQuestionRequest{})
}

// SubmitQuestionResponse submits a participant's answer to the question at
// the given index.
func (c *Client) SubmitQuestionResponse(index int, name string, response quiz.Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.connected {
		return ErrNotConnected
	}
	if !c.state.participant() {
		return ErrDidNotJoinSession
	}
	if !c.state.started {
		return ErrSessionNotStarted
	}
	if c.state.ended {
		return ErrSessionEnded
	}
	return c.emit(wire.SubmitResponseRequest{Index: index, Name: name, Response: response})
}

// SubmitQuestionFeedback submits a participant's difficulty feedback for the
// question at the given index.
func (c *Client) SubmitQuestionFeedback(name string, question int, feedback quiz.Feedback) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.connected {
		return ErrNotConnected
	}
	if !c.state.participant() {
		return ErrDidNotJoinSession
	}
	if !c.state.started {
		return ErrSessionNotStarted
	}
	if c.state.ended {
		return ErrSessionEnded
	}
	return c.emit(wire.SubmitFeedbackRequest{Name: name, Question: question, Feedback: feedback})
}

// SendQuestionHint pushes a hint for the question at the given index to the
// owned session's participants.
func (c *Client) SendQuestionHint(question int, hint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.connected {
		return ErrNotConnected
	}
	if !c.state.isOwner {
		return ErrNotSessionOwner
	}
	if !c.state.started {
		return ErrSessionNotStarted
	}
	if c.state.ended {
		return ErrSessionEnded
	}
	return c.emit(wire.SendHintRequest{Question: question, Hint: hint})
}

// emit stamps the current session id on the request and sends it. Callers
// hold c.mu, which keeps guard-check and emission atomic and preserves FIFO
// order across concurrent operations.
func (c *Client) emit(req wire.Request) error {
	stamped := req.WithSession(c.state.sessionID)
	c.log.Debug("emit", zap.String("event", stamped.EventKey()))
	return c.transport.Emit(stamped.EventKey(), stamped.Encode())
}
