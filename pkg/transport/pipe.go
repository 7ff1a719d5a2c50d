package transport

import (
	"sync"
	"time"

	"quizez/pkg/wire"
)

const pipeBuffer = 64

const (
	pipeEvent = iota
	pipeConnect
	pipeDisconnect
)

type pipeMsg struct {
	kind   int
	event  string
	data   wire.Payload
	reason string
}

// PipeEnd is one side of an in-memory transport pair. It honors the Transport
// delivery contract: each end dispatches its handlers on one dedicated
// goroutine, in emission order.
type PipeEnd struct {
	peer  *PipeEnd
	inbox chan pipeMsg

	mu           sync.Mutex
	connected    bool
	handlers     map[string][]Handler
	onConnect    []func()
	onDisconnect []func(string)
}

// Pipe returns two linked in-memory transports. Events emitted on one end are
// delivered to the other end's handlers. Connecting is instantaneous, so the
// timeout argument is never consulted.
func Pipe() (*PipeEnd, *PipeEnd) {
	a := newPipeEnd()
	b := newPipeEnd()
	a.peer, b.peer = b, a
	go a.deliver()
	go b.deliver()
	return a, b
}

func newPipeEnd() *PipeEnd {
	return &PipeEnd{
		inbox:    make(chan pipeMsg, pipeBuffer),
		handlers: make(map[string][]Handler),
	}
}

func (p *PipeEnd) On(event string, h Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[event] = append(p.handlers[event], h)
}

func (p *PipeEnd) OnConnect(h func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onConnect = append(p.onConnect, h)
}

func (p *PipeEnd) OnDisconnect(h func(reason string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onDisconnect = append(p.onDisconnect, h)
}

func (p *PipeEnd) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *PipeEnd) Connect(_ time.Duration, _ func()) {
	p.mu.Lock()
	if p.connected {
		p.mu.Unlock()
		return
	}
	p.connected = true
	p.mu.Unlock()
	p.inbox <- pipeMsg{kind: pipeConnect}
}

func (p *PipeEnd) Disconnect() {
	p.mu.Lock()
	if !p.connected {
		p.mu.Unlock()
		return
	}
	p.connected = false
	p.mu.Unlock()
	p.inbox <- pipeMsg{kind: pipeDisconnect, reason: ReasonClientDisconnect}
}

// DropWithReason simulates a server-side connection loss, firing this end's
// disconnect handlers with the given reason.
func (p *PipeEnd) DropWithReason(reason string) {
	p.mu.Lock()
	if !p.connected {
		p.mu.Unlock()
		return
	}
	p.connected = false
	p.mu.Unlock()
	p.inbox <- pipeMsg{kind: pipeDisconnect, reason: reason}
}

func (p *PipeEnd) Emit(event string, data wire.Payload) error {
	p.mu.Lock()
	connected := p.connected
	p.mu.Unlock()
	if !connected {
		return ErrNotConnected
	}
	if !p.peer.Connected() {
		// Nobody listening; the frame would be lost on a real network too.
		return nil
	}
	p.peer.inbox <- pipeMsg{kind: pipeEvent, event: event, data: data}
	return nil
}

func (p *PipeEnd) deliver() {
	for msg := range p.inbox {
		p.mu.Lock()
		var eventHandlers []Handler
		var connectHandlers []func()
		var disconnectHandlers []func(string)
		switch msg.kind {
		case pipeEvent:
			eventHandlers = p.handlers[msg.event]
		case pipeConnect:
			connectHandlers = p.onConnect
		case pipeDisconnect:
			disconnectHandlers = p.onDisconnect
		}
		p.mu.Unlock()

		for _, h := range eventHandlers {
			h(msg.data)
		}
		for _, h := range connectHandlers {
			h()
		}
		for _, h := range disconnectHandlers {
			h(msg.reason)
		}
	}
}
