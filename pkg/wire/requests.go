package wire

import "quizez/pkg/quiz"

// Request is a client payload bound for a named server event. The protocol
// client stamps the session id via WithSession at send time; callers never
// put another session's id on a request themselves.
type Request interface {
	EventKey() string
	WithSession(id string) Request
	Encode() Payload
}

// CreateSessionRequest asks the server for a new session. It carries no data,
// not even a session id.
type CreateSessionRequest struct{}

func (CreateSessionRequest) EventKey() string { return EventCreateSession }

func (r CreateSessionRequest) WithSession(string) Request { return r }

func (CreateSessionRequest) Encode() Payload { return nil }

// JoinSessionRequest joins an existing session under a display name. The
// session id travels under the "id" key on this event.
type JoinSessionRequest struct {
	Session string
	Name    string
}

func (JoinSessionRequest) EventKey() string { return EventJoinSession }

func (r JoinSessionRequest) WithSession(id string) Request {
	r.Session = id
	return r
}

func (r JoinSessionRequest) Encode() Payload {
	return Payload{"id": r.Session, "name": r.Name}
}

// KickUserRequest removes a user from the session the sender owns.
type KickUserRequest struct {
	Session string
	Name    string
}

func (KickUserRequest) EventKey() string { return EventKickUser }

func (r KickUserRequest) WithSession(id string) Request {
	r.Session = id
	return r
}

func (r KickUserRequest) Encode() Payload {
	return Payload{"session": r.Session, "name": r.Name}
}

// StartSessionRequest starts the session the sender owns.
type StartSessionRequest struct {
	Session string
}

func (StartSessionRequest) EventKey() string { return EventStartSession }

func (r StartSessionRequest) WithSession(id string) Request {
	r.Session = id
	return r
}

func (r StartSessionRequest) Encode() Payload {
	return Payload{"session": r.Session}
}

// EndSessionRequest ends the session the sender owns.
type EndSessionRequest struct {
	Session string
}

func (EndSessionRequest) EventKey() string { return EventEndSession }

func (r EndSessionRequest) WithSession(id string) Request {
	r.Session = id
	return r
}

func (r EndSessionRequest) Encode() Payload {
	return Payload{"session": r.Session}
}

// AddQuestionRequest adds a question to the owned session's quiz.
type AddQuestionRequest struct {
	Session  string
	Question quiz.Question
}

func (AddQuestionRequest) EventKey() string { return EventAddQuestion }

func (r AddQuestionRequest) WithSession(id string) Request {
	r.Session = id
	return r
}

func (r AddQuestionRequest) Encode() Payload {
	return Payload{"session": r.Session, "question": EncodeQuestion(r.Question)}
}

// NextQuestionRequest pushes the next quiz question to the session.
type NextQuestionRequest struct {
	Session string
}

func (NextQuestionRequest) EventKey() string { return EventNextQuestion }

func (r NextQuestionRequest) WithSession(id string) Request {
	r.Session = id
	return r
}

func (r NextQuestionRequest) Encode() Payload {
	return Payload{"session": r.Session}
}

// SubmitResponseRequest submits a participant's answer to a pushed question.
type SubmitResponseRequest struct {
	Session  string
	Index    int
	Name     string
	Response quiz.Response
}

func (SubmitResponseRequest) EventKey() string { return EventSubmitResponse }

func (r SubmitResponseRequest) WithSession(id string) Request {
	r.Session = id
	return r
}

func (r SubmitResponseRequest) Encode() Payload {
	return Payload{
		"session":  r.Session,
		"name":     r.Name,
		"index":    r.Index,
		"response": EncodeResponse(r.Response),
	}
}

// SubmitFeedbackRequest submits a participant's difficulty feedback for a
// question.
type SubmitFeedbackRequest struct {
	Session  string
	Name     string
	Question int
	Feedback quiz.Feedback
}

func (SubmitFeedbackRequest) EventKey() string { return EventSubmitFeedback }

func (r SubmitFeedbackRequest) WithSession(id string) Request {
	r.Session = id
	return r
}

func (r SubmitFeedbackRequest) Encode() Payload {
	return Payload{
		"session":  r.Session,
		"name":     r.Name,
		"question": r.Question,
		"feedback": EncodeFeedback(r.Feedback),
	}
}

// SendHintRequest pushes a hint for a question to the owned session.
type SendHintRequest struct {
	Session  string
	Question int
	Hint     string
}

func (SendHintRequest) EventKey() string { return EventSendHint }

func (r SendHintRequest) WithSession(id string) Request {
	r.Session = id
	return r
}

func (r SendHintRequest) Encode() Payload {
	return Payload{"session": r.Session, "question": r.Question, "hint": r.Hint}
}
