package wire

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizez/pkg/quiz"
)

func multipleChoiceQuestion() quiz.Question {
	return quiz.Question{
		Text:      "Largest planet?",
		TimeLimit: 90,
		Body: quiz.MultipleChoiceBody{
			Choices: []quiz.Choice{
				{Text: "Jupiter", Points: 100},
				{Text: "Mars", Points: 0},
			},
			Answer: 0,
		},
	}
}

func fillInQuestion() quiz.Question {
	return quiz.Question{
		Text:      "Chemical symbol for gold?",
		TimeLimit: 60,
		Body: quiz.FillInTheBlankBody{
			Answers: []quiz.Answer{{Text: "Au", Points: 100}},
		},
	}
}

func TestQuestionRoundTrip(t *testing.T) {
	for _, q := range []quiz.Question{multipleChoiceQuestion(), fillInQuestion()} {
		decoded, err := DecodeQuestion(EncodeQuestion(q))
		require.NoError(t, err)
		assert.Equal(t, q, decoded)
	}
}

// The wire payload survives encoding/json, which turns every number into a
// float64 and every nested Payload into map[string]any.
func TestQuestionRoundTripThroughJSON(t *testing.T) {
	data, err := json.Marshal(EncodeQuestion(multipleChoiceQuestion()))
	require.NoError(t, err)

	var p Payload
	require.NoError(t, json.Unmarshal(data, &p))

	decoded, err := DecodeQuestion(p)
	require.NoError(t, err)
	assert.Equal(t, multipleChoiceQuestion(), decoded)
}

func TestQuestionEncodingShape(t *testing.T) {
	p := EncodeQuestion(multipleChoiceQuestion())
	assert.Equal(t, "Largest planet?", p["text"])
	assert.Equal(t, 90, p["timeLimit"])
	assert.Equal(t, 100, p["totalPoints"])

	body, ok := p["body"].(Payload)
	require.True(t, ok)
	assert.Equal(t, "MultipleChoice", body["type"])
	assert.Equal(t, 0, body["answer"])

	fill := EncodeQuestion(fillInQuestion())["body"].(Payload)
	assert.Equal(t, "FillIn", fill["type"])
}

func TestDecodeQuestionErrors(t *testing.T) {
	base := func() Payload { return EncodeQuestion(multipleChoiceQuestion()) }

	t.Run("missing text", func(t *testing.T) {
		p := base()
		delete(p, "text")
		_, err := DecodeQuestion(p)
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "text", decodeErr.Field)
		assert.Equal(t, MissingField, decodeErr.Kind)
	})

	t.Run("mistyped time limit", func(t *testing.T) {
		p := base()
		p["timeLimit"] = "soon"
		_, err := DecodeQuestion(p)
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, TypeMismatch, decodeErr.Kind)
	})

	t.Run("missing total points", func(t *testing.T) {
		p := base()
		delete(p, "totalPoints")
		_, err := DecodeQuestion(p)
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "totalPoints", decodeErr.Field)
	})

	t.Run("unknown body type", func(t *testing.T) {
		p := base()
		p["body"].(Payload)["type"] = "Essay"
		_, err := DecodeQuestion(p)
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, UnknownTag, decodeErr.Kind)
		assert.Equal(t, "body.type", decodeErr.Field)
	})
}

func TestResponseRoundTrip(t *testing.T) {
	choice := quiz.Response{Submitter: "amy", Body: quiz.ChoiceResponse{Choice: 1}}
	text := quiz.Response{Submitter: "ben", Body: quiz.TextResponse{Text: "Au"}}

	for _, r := range []quiz.Response{choice, text} {
		decoded, err := DecodeResponse(EncodeResponse(r))
		require.NoError(t, err)
		assert.Equal(t, r, decoded)
	}
}

func TestDecodeResponseUnknownType(t *testing.T) {
	_, err := DecodeResponse(Payload{"submitter": "amy", "type": "Essay", "answer": "x"})
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, UnknownTag, decodeErr.Kind)
}

func TestFeedbackRoundTrip(t *testing.T) {
	fb := quiz.Feedback{Rating: quiz.RatingHard, Message: "tricky one"}
	decoded, err := DecodeFeedback(EncodeFeedback(fb))
	require.NoError(t, err)
	assert.Equal(t, fb, decoded)
}

func TestDecodeFeedbackRejectsUnknownRating(t *testing.T) {
	_, err := DecodeFeedback(Payload{"rating": 9, "message": ""})
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, UnknownTag, decodeErr.Kind)
	assert.Equal(t, "rating", decodeErr.Field)
}

func TestDecodeErrorMessage(t *testing.T) {
	_, err := DecodeCreatedSession(Payload{})
	assert.EqualError(t, err, "missing field: session")
	assert.True(t, errors.As(err, new(*DecodeError)))
}
