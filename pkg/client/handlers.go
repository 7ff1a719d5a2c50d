package client

import (
	"fmt"

	"go.uber.org/zap"

	"quizez/pkg/wire"
)

// registerHandlers binds every inbound event to exactly one decode and
// dispatch rule. The transport delivers all of them on one goroutine, so the
// handlers never race each other.
func (c *Client) registerHandlers() {
	t := c.transport

	t.OnConnect(func() {
		c.mu.Lock()
		c.state.connectSucceeded()
		c.mu.Unlock()
		c.currentDelegate().OnConnected()
	})
	t.OnDisconnect(func(reason string) {
		c.mu.Lock()
		c.state.disconnected()
		c.mu.Unlock()
		c.currentDelegate().OnDisconnected(reason)
	})

	t.On(wire.EventCreatedSession, c.handleCreatedSession)
	t.On(wire.EventJoinSuccess, c.handleJoinSuccess)
	t.On(wire.EventJoinFailed, c.handleJoinFailed)
	t.On(wire.EventKickSuccess, c.handleKickSuccess)
	t.On(wire.EventKickFailed, c.handleKickFailed)
	t.On(wire.EventSessionStarted, c.handleSessionStarted)
	t.On(wire.EventStartFailed, c.handleStartFailed)
	t.On(wire.EventSessionEnded, c.handleSessionEnded)
	t.On(wire.EventEndFailed, c.handleEndFailed)
	t.On(wire.EventUserDisconnected, c.handleUserDisconnected)
	t.On(wire.EventAddQuestionSuccess, c.handleAddQuestionSuccess)
	t.On(wire.EventAddQuestionFailed, c.handleAddQuestionFailed)
	t.On(wire.EventNextQuestion, c.handleNextQuestion)
	t.On(wire.EventResponseSuccess, c.handleResponseSuccess)
	t.On(wire.EventResponseFailed, c.handleResponseFailed)
	t.On(wire.EventResponseAdded, c.handleResponseAdded)
	t.On(wire.EventFeedbackSuccess, c.handleFeedbackSuccess)
	t.On(wire.EventFeedbackFailed, c.handleFeedbackFailed)
	t.On(wire.EventFeedbackSubmitted, c.handleFeedbackSubmitted)
	t.On(wire.EventHintSuccess, c.handleHintSuccess)
	t.On(wire.EventHintFailed, c.handleHintFailed)
	t.On(wire.EventHintReceived, c.handleHintReceived)
}

// decodeFailure wraps a decoder error for delegate delivery and logs the
// schema mismatch once here rather than at every call site.
func (c *Client) decodeFailure(event string, err error) error {
	c.log.Warn("undecodable event payload", zap.String("event", event), zap.Error(err))
	return fmt.Errorf("%w: %w", ErrUnexpectedResponseData, err)
}

// forSession applies the session filter: an event stamped with another
// session's id (or arriving while this client has no session) is not for this
// client and must not reach the delegate. Failure events bypass this filter
// at their call sites because they answer this client's own request.
func (c *Client) forSession(session string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.inSession() && session == c.state.sessionID
}

func (c *Client) handleCreatedSession(p wire.Payload) {
	created, err := wire.DecodeCreatedSession(p)
	if err != nil {
		c.currentDelegate().OnSessionCreated(wire.CreatedSession{}, c.decodeFailure(wire.EventCreatedSession, err))
		return
	}
	c.mu.Lock()
	c.state.sessionCreated(created.Session)
	c.mu.Unlock()
	c.currentDelegate().OnSessionCreated(created, nil)
}

func (c *Client) handleJoinSuccess(p wire.Payload) {
	joined, err := wire.DecodeUserJoined(p)
	if err != nil {
		c.currentDelegate().OnSessionJoined(wire.UserJoined{}, c.decodeFailure(wire.EventJoinSuccess, err))
		return
	}
	if !c.forSession(joined.Session) {
		return
	}
	c.mu.Lock()
	if c.state.pending && joined.Name == c.state.username {
		c.state.joinConfirmed()
	}
	c.mu.Unlock()
	c.currentDelegate().OnSessionJoined(joined, nil)
}

// handleJoinFailed always reaches the delegate: it answers this client's own
// pending join, which is rolled back here.
func (c *Client) handleJoinFailed(wire.Payload) {
	c.mu.Lock()
	c.state.joinFailed()
	c.mu.Unlock()
	c.currentDelegate().OnSessionJoined(wire.UserJoined{}, ErrJoinFailed)
}

func (c *Client) handleKickSuccess(p wire.Payload) {
	kicked, err := wire.DecodeKickedUser(p)
	if err != nil {
		c.currentDelegate().OnUserKicked(wire.KickedUser{}, c.decodeFailure(wire.EventKickSuccess, err))
		return
	}
	if !c.forSession(kicked.Session) {
		return
	}
	c.mu.Lock()
	if !c.state.isOwner && kicked.Name == c.state.username {
		// This connection is the one being evicted.
		c.state.kickedSelf()
	}
	c.mu.Unlock()
	c.currentDelegate().OnUserKicked(kicked, nil)
}

func (c *Client) handleKickFailed(wire.Payload) {
	c.currentDelegate().OnUserKicked(wire.KickedUser{}, ErrKickFailed)
}

func (c *Client) handleSessionStarted(wire.Payload) {
	c.mu.Lock()
	c.state.sessionStarted()
	c.mu.Unlock()
	c.currentDelegate().OnSessionStarted(nil)
}

func (c *Client) handleStartFailed(wire.Payload) {
	c.currentDelegate().OnSessionStarted(ErrStartSessionFailed)
}

func (c *Client) handleSessionEnded(wire.Payload) {
	c.mu.Lock()
	c.state.sessionEnded()
	c.mu.Unlock()
	c.currentDelegate().OnSessionEnded(nil)
}

func (c *Client) handleEndFailed(wire.Payload) {
	c.currentDelegate().OnSessionEnded(ErrEndSessionFailed)
}

func (c *Client) handleUserDisconnected(p wire.Payload) {
	gone, err := wire.DecodeUserDisconnected(p)
	if err != nil {
		c.currentDelegate().OnUserDisconnected(wire.UserDisconnected{}, c.decodeFailure(wire.EventUserDisconnected, err))
		return
	}
	if !c.forSession(gone.Session) {
		return
	}
	c.currentDelegate().OnUserDisconnected(gone, nil)
}

func (c *Client) handleAddQuestionSuccess(wire.Payload) {
	c.currentDelegate().OnQuestionAdded(nil)
}

func (c *Client) handleAddQuestionFailed(wire.Payload) {
	c.currentDelegate().OnQuestionAdded(ErrAddQuestionFailed)
}

func (c *Client) handleNextQuestion(p wire.Payload) {
	next, err := wire.DecodeNextQuestion(p)
	if err != nil {
		c.currentDelegate().OnNextQuestion(wire.NextQuestion{}, c.decodeFailure(wire.EventNextQuestion, err))
		return
	}
	if !c.forSession(next.Session) {
		return
	}
	c.currentDelegate().OnNextQuestion(next, nil)
}

func (c *Client) handleResponseSuccess(p wire.Payload) {
	graded, err := wire.DecodeQuestionResponseSubmitted(p)
	if err != nil {
		c.currentDelegate().OnResponseSubmitted(wire.QuestionResponseSubmitted{}, c.decodeFailure(wire.EventResponseSuccess, err))
		return
	}
	if !c.forSession(graded.Session) {
		return
	}
	c.currentDelegate().OnResponseSubmitted(graded, nil)
}

func (c *Client) handleResponseFailed(wire.Payload) {
	c.currentDelegate().OnResponseSubmitted(wire.QuestionResponseSubmitted{}, ErrResponseSubmissionFailed)
}

func (c *Client) handleResponseAdded(p wire.Payload) {
	added, err := wire.DecodeQuestionResponseAdded(p)
	if err != nil {
		c.currentDelegate().OnResponseAdded(wire.QuestionResponseAdded{}, c.decodeFailure(wire.EventResponseAdded, err))
		return
	}
	if !c.forSession(added.Session) {
		return
	}
	c.currentDelegate().OnResponseAdded(added, nil)
}

func (c *Client) handleFeedbackSuccess(p wire.Payload) {
	scoped, err := wire.DecodeSessionScoped(p)
	if err != nil {
		c.currentDelegate().OnFeedbackSubmitted(c.decodeFailure(wire.EventFeedbackSuccess, err))
		return
	}
	if !c.forSession(scoped.Session) {
		return
	}
	c.currentDelegate().OnFeedbackSubmitted(nil)
}

func (c *Client) handleFeedbackFailed(wire.Payload) {
	c.currentDelegate().OnFeedbackSubmitted(ErrFeedbackSubmissionFailed)
}

func (c *Client) handleFeedbackSubmitted(p wire.Payload) {
	feedback, err := wire.DecodeFeedbackSubmitted(p)
	if err != nil {
		c.currentDelegate().OnFeedbackReceived(wire.FeedbackSubmitted{}, c.decodeFailure(wire.EventFeedbackSubmitted, err))
		return
	}
	if !c.forSession(feedback.Session) {
		return
	}
	c.currentDelegate().OnFeedbackReceived(feedback, nil)
}

func (c *Client) handleHintSuccess(p wire.Payload) {
	scoped, err := wire.DecodeSessionScoped(p)
	if err != nil {
		c.currentDelegate().OnHintSent(c.decodeFailure(wire.EventHintSuccess, err))
		return
	}
	if !c.forSession(scoped.Session) {
		return
	}
	c.currentDelegate().OnHintSent(nil)
}

func (c *Client) handleHintFailed(wire.Payload) {
	c.currentDelegate().OnHintSent(ErrSendHintFailed)
}

func (c *Client) handleHintReceived(p wire.Payload) {
	hint, err := wire.DecodeHintReceived(p)
	if err != nil {
		c.currentDelegate().OnHintReceived(wire.HintReceived{}, c.decodeFailure(wire.EventHintReceived, err))
		return
	}
	if !c.forSession(hint.Session) {
		return
	}
	c.currentDelegate().OnHintReceived(hint, nil)
}
