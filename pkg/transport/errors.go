package transport

import "errors"

var (
	// ErrInvalidURL: the server URL could not be parsed or has no usable scheme.
	ErrInvalidURL = errors.New("invalid server URL")

	// ErrNotConnected: an emit was attempted while the channel is down.
	ErrNotConnected = errors.New("transport not connected")

	// ErrWriteTimeout: the peer did not accept a frame within the write deadline.
	ErrWriteTimeout = errors.New("transport write timeout")
)
