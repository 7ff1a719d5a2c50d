package client

import "quizez/pkg/wire"

// Delegate receives the client's inbound protocol events, one method per
// event category. Every method pairs the decoded value with an error; on a
// remote rejection or a decode failure the value is the zero value and err
// carries one of this package's sentinel errors.
//
// All callbacks run on the transport's delivery goroutine, in arrival order.
// Implementations typically embed NoopDelegate and override what they need.
type Delegate interface {
	OnConnected()
	OnDisconnected(reason string)
	OnSessionCreated(created wire.CreatedSession, err error)
	OnSessionJoined(joined wire.UserJoined, err error)
	OnUserKicked(kicked wire.KickedUser, err error)
	OnSessionStarted(err error)
	OnSessionEnded(err error)
	OnUserDisconnected(gone wire.UserDisconnected, err error)
	OnQuestionAdded(err error)
	OnNextQuestion(next wire.NextQuestion, err error)
	OnResponseSubmitted(graded wire.QuestionResponseSubmitted, err error)
	OnResponseAdded(added wire.QuestionResponseAdded, err error)
	OnFeedbackSubmitted(err error)
	OnFeedbackReceived(feedback wire.FeedbackSubmitted, err error)
	OnHintSent(err error)
	OnHintReceived(hint wire.HintReceived, err error)
}

// NoopDelegate implements Delegate with empty methods so partial delegates
// stay valid as the event surface grows.
type NoopDelegate struct{}

func (NoopDelegate) OnConnected() {}

func (NoopDelegate) OnDisconnected(string) {}

func (NoopDelegate) OnSessionCreated(wire.CreatedSession, error) {}

func (NoopDelegate) OnSessionJoined(wire.UserJoined, error) {}

func (NoopDelegate) OnUserKicked(wire.KickedUser, error) {}

func (NoopDelegate) OnSessionStarted(error) {}

func (NoopDelegate) OnSessionEnded(error) {}

func (NoopDelegate) OnUserDisconnected(wire.UserDisconnected, error) {}

func (NoopDelegate) OnQuestionAdded(error) {}

func (NoopDelegate) OnNextQuestion(wire.NextQuestion, error) {}

func (NoopDelegate) OnResponseSubmitted(wire.QuestionResponseSubmitted, error) {}

func (NoopDelegate) OnResponseAdded(wire.QuestionResponseAdded, error) {}

func (NoopDelegate) OnFeedbackSubmitted(error) {}

func (NoopDelegate) OnFeedbackReceived(wire.FeedbackSubmitted, error) {}

func (NoopDelegate) OnHintSent(error) {}

func (NoopDelegate) OnHintReceived(wire.HintReceived, error) {}
