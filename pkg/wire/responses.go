package wire

import "quizez/pkg/quiz"

// Inbound event payloads. Each decoder is total: it returns a DecodeError for
// missing or mistyped keys instead of panicking, and performs no domain
// validation beyond structure.

// CreatedSession reports the id of a session this socket now owns.
type CreatedSession struct {
	Session string
}

func DecodeCreatedSession(p Payload) (CreatedSession, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return CreatedSession{}, err
	}
	return CreatedSession{Session: session}, nil
}

// UserJoined reports a user joining a session; the user may be this socket.
type UserJoined struct {
	Session string
	Name    string
}

func DecodeUserJoined(p Payload) (UserJoined, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return UserJoined{}, err
	}
	name, err := stringField(p, "name")
	if err != nil {
		return UserJoined{}, err
	}
	return UserJoined{Session: session, Name: name}, nil
}

// KickedUser reports a user removed from a session by its owner.
type KickedUser struct {
	Session string
	Name    string
}

func DecodeKickedUser(p Payload) (KickedUser, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return KickedUser{}, err
	}
	name, err := stringField(p, "name")
	if err != nil {
		return KickedUser{}, err
	}
	return KickedUser{Session: session, Name: name}, nil
}

// UserDisconnected reports a session member dropping its connection.
type UserDisconnected struct {
	Session string
	Name    string
}

func DecodeUserDisconnected(p Payload) (UserDisconnected, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return UserDisconnected{}, err
	}
	name, err := stringField(p, "name")
	if err != nil {
		return UserDisconnected{}, err
	}
	return UserDisconnected{Session: session, Name: name}, nil
}

// NextQuestion carries the question pushed to every session member.
type NextQuestion struct {
	Session  string
	Index    int
	Question quiz.Question
}

func DecodeNextQuestion(p Payload) (NextQuestion, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return NextQuestion{}, err
	}
	index, err := intField(p, "index")
	if err != nil {
		return NextQuestion{}, err
	}
	rawQuestion, err := mapField(p, "question")
	if err != nil {
		return NextQuestion{}, err
	}
	question, err := DecodeQuestion(rawQuestion)
	if err != nil {
		return NextQuestion{}, err
	}
	return NextQuestion{Session: session, Index: index, Question: question}, nil
}

// QuestionResponseSubmitted is the submitter's own grade for a response.
type QuestionResponseSubmitted struct {
	Session      string
	Index        int
	FirstCorrect bool
	Points       int
}

func DecodeQuestionResponseSubmitted(p Payload) (QuestionResponseSubmitted, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return QuestionResponseSubmitted{}, err
	}
	index, err := intField(p, "index")
	if err != nil {
		return QuestionResponseSubmitted{}, err
	}
	firstCorrect, err := boolField(p, "firstCorrect")
	if err != nil {
		return QuestionResponseSubmitted{}, err
	}
	points, err := intField(p, "points")
	if err != nil {
		return QuestionResponseSubmitted{}, err
	}
	return QuestionResponseSubmitted{
		Session:      session,
		Index:        index,
		FirstCorrect: firstCorrect,
		Points:       points,
	}, nil
}

// QuestionResponseAdded is a graded response delivered to the session owner.
// FirstCorrect names the first user to answer correctly, and the frequency
// pair describes how popular the submitted answer is at submission time.
type QuestionResponseAdded struct {
	Session           string
	Index             int
	User              string
	Response          string
	Points            int
	FirstCorrect      string
	Frequency         int
	RelativeFrequency int
}

func DecodeQuestionResponseAdded(p Payload) (QuestionResponseAdded, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return QuestionResponseAdded{}, err
	}
	index, err := intField(p, "index")
	if err != nil {
		return QuestionResponseAdded{}, err
	}
	user, err := stringField(p, "user")
	if err != nil {
		return QuestionResponseAdded{}, err
	}
	response, err := stringField(p, "response")
	if err != nil {
		return QuestionResponseAdded{}, err
	}
	points, err := intField(p, "points")
	if err != nil {
		return QuestionResponseAdded{}, err
	}
	firstCorrect, err := stringField(p, "firstCorrect")
	if err != nil {
		return QuestionResponseAdded{}, err
	}
	frequency, err := intField(p, "frequency")
	if err != nil {
		return QuestionResponseAdded{}, err
	}
	relativeFrequency, err := intField(p, "relativeFrequency")
	if err != nil {
		return QuestionResponseAdded{}, err
	}
	return QuestionResponseAdded{
		Session:           session,
		Index:             index,
		User:              user,
		Response:          response,
		Points:            points,
		FirstCorrect:      firstCorrect,
		Frequency:         frequency,
		RelativeFrequency: relativeFrequency,
	}, nil
}

// SessionScoped is the minimal payload of session-stamped acknowledgements
// such as "submit feedback success" and "send hint success".
type SessionScoped struct {
	Session string
}

func DecodeSessionScoped(p Payload) (SessionScoped, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return SessionScoped{}, err
	}
	return SessionScoped{Session: session}, nil
}

// FeedbackSubmitted is a participant's feedback delivered to the owner.
type FeedbackSubmitted struct {
	Session  string
	User     string
	Question int
	Feedback quiz.Feedback
}

func DecodeFeedbackSubmitted(p Payload) (FeedbackSubmitted, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return FeedbackSubmitted{}, err
	}
	user, err := stringField(p, "user")
	if err != nil {
		return FeedbackSubmitted{}, err
	}
	question, err := intField(p, "question")
	if err != nil {
		return FeedbackSubmitted{}, err
	}
	rawFeedback, err := mapField(p, "feedback")
	if err != nil {
		return FeedbackSubmitted{}, err
	}
	feedback, err := DecodeFeedback(rawFeedback)
	if err != nil {
		return FeedbackSubmitted{}, err
	}
	return FeedbackSubmitted{
		Session:  session,
		User:     user,
		Question: question,
		Feedback: feedback,
	}, nil
}

// HintReceived is a hint pushed to session participants.
type HintReceived struct {
	Session  string
	Question int
	Hint     string
}

func DecodeHintReceived(p Payload) (HintReceived, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return HintReceived{}, err
	}
	question, err := intField(p, "question")
	if err != nil {
		return HintReceived{}, err
	}
	hint, err := stringField(p, "hint")
	if err != nil {
		return HintReceived{}, err
	}
	return HintReceived{Session: session, Question: question, Hint: hint}, nil
}
