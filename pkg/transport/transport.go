package transport

import (
	"time"

	"quizez/pkg/wire"
)

// Handler consumes the payload of one inbound event.
type Handler func(p wire.Payload)

// Transport is the ordered, reliable bidirectional event channel the protocol
// client runs over. Implementations deliver all inbound events and the
// connect/disconnect notifications on a single goroutine, in arrival order,
// so handlers never race each other.
//
// Handlers are registered before Connect and are not removed; a Transport
// belongs to exactly one client.
type Transport interface {
	// Connect dials asynchronously. The registered connect handlers fire on
	// success; onTimeout fires instead if no connection is established within
	// timeout. onTimeout may be nil.
	Connect(timeout time.Duration, onTimeout func())

	// Disconnect drops the connection. The registered disconnect handlers
	// fire with a client-side reason.
	Disconnect()

	// Connected reports whether the channel is currently established.
	Connected() bool

	// Emit sends one event. Emissions from a single goroutine are delivered
	// to the peer in call order.
	Emit(event string, p wire.Payload) error

	// On registers a handler for a named inbound event.
	On(event string, h Handler)

	// OnConnect registers a handler for connection establishment.
	OnConnect(h func())

	// OnDisconnect registers a handler for connection loss; reason describes
	// why the channel closed.
	OnDisconnect(h func(reason string))
}
