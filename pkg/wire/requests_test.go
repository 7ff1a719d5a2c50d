package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizez/pkg/quiz"
)

func TestWithSessionStampsACopy(t *testing.T) {
	original := KickUserRequest{Name: "amy"}
	stamped := original.WithSession("ABC123").(KickUserRequest)

	assert.Equal(t, "ABC123", stamped.Session)
	assert.Empty(t, original.Session)
}

func TestCreateSessionCarriesNoData(t *testing.T) {
	req := CreateSessionRequest{}
	assert.Equal(t, EventCreateSession, req.EventKey())
	assert.Nil(t, req.Encode())
	assert.Equal(t, req, req.WithSession("ignored"))
}

// Joining is the one request whose session id travels under "id" rather than
// "session".
func TestJoinSessionEncodesIDKey(t *testing.T) {
	p := JoinSessionRequest{Session: "ABC123", Name: "amy"}.Encode()
	assert.Equal(t, Payload{"id": "ABC123", "name": "amy"}, p)
}

func TestRequestRoundTrips(t *testing.T) {
	join := JoinSessionRequest{Session: "S", Name: "amy"}
	gotJoin, err := DecodeJoinSessionRequest(join.Encode())
	require.NoError(t, err)
	assert.Equal(t, join, gotJoin)

	kick := KickUserRequest{Session: "S", Name: "amy"}
	gotKick, err := DecodeKickUserRequest(kick.Encode())
	require.NoError(t, err)
	assert.Equal(t, kick, gotKick)

	start := StartSessionRequest{Session: "S"}
	gotStart, err := DecodeStartSessionRequest(start.Encode())
	require.NoError(t, err)
	assert.Equal(t, start, gotStart)

	end := EndSessionRequest{Session: "S"}
	gotEnd, err := DecodeEndSessionRequest(end.Encode())
	require.NoError(t, err)
	assert.Equal(t, end, gotEnd)

	add := AddQuestionRequest{Session: "S", Question: multipleChoiceQuestion()}
	gotAdd, err := DecodeAddQuestionRequest(add.Encode())
	require.NoError(t, err)
	assert.Equal(t, add, gotAdd)

	next := NextQuestionRequest{Session: "S"}
	gotNext, err := DecodeNextQuestionRequest(next.Encode())
	require.NoError(t, err)
	assert.Equal(t, next, gotNext)

	submit := SubmitResponseRequest{
		Session:  "S",
		Index:    2,
		Name:     "amy",
		Response: quiz.Response{Submitter: "amy", Body: quiz.TextResponse{Text: "Au"}},
	}
	gotSubmit, err := DecodeSubmitResponseRequest(submit.Encode())
	require.NoError(t, err)
	assert.Equal(t, submit, gotSubmit)

	feedback := SubmitFeedbackRequest{
		Session:  "S",
		Name:     "amy",
		Question: 1,
		Feedback: quiz.Feedback{Rating: quiz.RatingEasy, Message: "fun"},
	}
	gotFeedback, err := DecodeSubmitFeedbackRequest(feedback.Encode())
	require.NoError(t, err)
	assert.Equal(t, feedback, gotFeedback)

	hint := SendHintRequest{Session: "S", Question: 1, Hint: "think big"}
	gotHint, err := DecodeSendHintRequest(hint.Encode())
	require.NoError(t, err)
	assert.Equal(t, hint, gotHint)
}

func TestDecodeNextQuestionEvent(t *testing.T) {
	p := Payload{
		"session":  "S",
		"index":    0,
		"question": EncodeQuestion(fillInQuestion()),
	}
	next, err := DecodeNextQuestion(p)
	require.NoError(t, err)
	assert.Equal(t, NextQuestion{Session: "S", Index: 0, Question: fillInQuestion()}, next)

	delete(p, "index")
	_, err = DecodeNextQuestion(p)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "index", decodeErr.Field)
}

func TestDecodeQuestionResponseAdded(t *testing.T) {
	p := Payload{
		"session":           "S",
		"index":             1,
		"user":              "amy",
		"response":          "Jupiter",
		"points":            100,
		"firstCorrect":      "amy",
		"frequency":         2,
		"relativeFrequency": 66,
	}
	added, err := DecodeQuestionResponseAdded(p)
	require.NoError(t, err)
	assert.Equal(t, QuestionResponseAdded{
		Session:           "S",
		Index:             1,
		User:              "amy",
		Response:          "Jupiter",
		Points:            100,
		FirstCorrect:      "amy",
		Frequency:         2,
		RelativeFrequency: 66,
	}, added)
}
