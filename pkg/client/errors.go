package client

import "errors"

// Precondition errors, returned synchronously by Client operations before any
// network traffic. They are never retried automatically.
var (
	ErrNotConnected      = errors.New("not connected to a server")
	ErrAlreadyConnected  = errors.New("already connected to a server")
	ErrAlreadyInSession  = errors.New("already created or joined a session")
	ErrNotSessionOwner   = errors.New("connection does not own a session")
	ErrDidNotJoinSession = errors.New("connection did not join a session")
	ErrSessionNotStarted = errors.New("session has not started")
	ErrSessionEnded      = errors.New("session has ended")
)

// Remote rejections, delivered through the Delegate when the server answers a
// request with its failure event. The caller decides whether to retry.
var (
	ErrJoinFailed               = errors.New("failed to join session")
	ErrKickFailed               = errors.New("failed to kick user")
	ErrStartSessionFailed       = errors.New("failed to start session")
	ErrEndSessionFailed         = errors.New("failed to end session")
	ErrAddQuestionFailed        = errors.New("failed to add question")
	ErrResponseSubmissionFailed = errors.New("failed to submit question response")
	ErrFeedbackSubmissionFailed = errors.New("failed to submit question feedback")
	ErrSendHintFailed           = errors.New("failed to send question hint")
)

// ErrUnexpectedResponseData is delivered through the Delegate when an inbound
// event's payload does not decode; it indicates a schema mismatch, so
// retrying cannot help. The wrapped cause is a *wire.DecodeError.
var ErrUnexpectedResponseData = errors.New("unexpected response data")
