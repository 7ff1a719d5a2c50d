package wire

// Client to server events.
const (
	EventCreateSession  = "create session"
	EventJoinSession    = "join session"
	EventKickUser       = "kick"
	EventStartSession   = "start session"
	EventEndSession     = "end session"
	EventAddQuestion    = "add question"
	EventNextQuestion   = "next question"
	EventSubmitResponse = "question response"
	EventSubmitFeedback = "submit feedback"
	EventSendHint       = "send hint"
)

// Server to client events. EventNextQuestion is shared: the owner emits it as
// a request and every session member receives it carrying the question.
const (
	EventCreatedSession     = "created session"
	EventJoinSuccess        = "join success"
	EventJoinFailed         = "join failed"
	EventKickSuccess        = "kick success"
	EventKickFailed         = "kick failed"
	EventSessionStarted     = "session started"
	EventStartFailed        = "session start failed"
	EventSessionEnded       = "session ended"
	EventEndFailed          = "session end failed"
	EventUserDisconnected   = "user disconnected"
	EventAddQuestionSuccess = "add question success"
	EventAddQuestionFailed  = "add question failed"
	EventResponseSuccess    = "question response success"
	EventResponseFailed     = "question response failed"
	EventResponseAdded      = "question response added"
	EventFeedbackSuccess    = "submit feedback success"
	EventFeedbackFailed     = "submit feedback failed"
	EventFeedbackSubmitted  = "feedback submitted"
	EventHintSuccess        = "send hint success"
	EventHintFailed         = "send hint failed"
	EventHintReceived       = "hint received"
)
