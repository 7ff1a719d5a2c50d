package wire

import "quizez/pkg/quiz"

// Payload keys shared by the question, response and feedback codecs.
const (
	keyType    = "type"
	keyText    = "text"
	keyPoints  = "points"
	keyChoices = "choices"
	keyAnswers = "answers"
	keyAnswer  = "answer"
)

// EncodeQuestion maps a question to its wire form:
//
//	{text, timeLimit, totalPoints, body: {type, ...}}
//
// The body carries a string discriminant under "type" and the fields of the
// matching variant. Encoding is deterministic and does not validate; run
// quiz.Question.Validate before submitting.
func EncodeQuestion(q quiz.Question) Payload {
	body := Payload{keyType: string(q.Body.Type())}
	switch b := q.Body.(type) {
	case quiz.MultipleChoiceBody:
		choices := make([]any, len(b.Choices))
		for i, c := range b.Choices {
			choices[i] = Payload{keyText: c.Text, keyPoints: c.Points}
		}
		body[keyChoices] = choices
		body[keyAnswer] = b.Answer
	case quiz.FillInTheBlankBody:
		answers := make([]any, len(b.Answers))
		for i, a := range b.Answers {
			answers[i] = Payload{keyText: a.Text, keyPoints: a.Points}
		}
		body[keyAnswers] = answers
	}
	return Payload{
		"text":        q.Text,
		"timeLimit":   q.TimeLimit,
		"totalPoints": q.TotalPoints(),
		"body":        body,
	}
}

// DecodeQuestion is the inverse of EncodeQuestion. It rejects structurally
// impossible payloads (missing keys, wrong types, unknown body discriminant)
// but does not re-check domain invariants; the decoded question can be run
// through quiz.Question.Validate when that matters.
func DecodeQuestion(p Payload) (quiz.Question, error) {
	text, err := stringField(p, "text")
	if err != nil {
		return quiz.Question{}, err
	}
	timeLimit, err := intField(p, "timeLimit")
	if err != nil {
		return quiz.Question{}, err
	}
	if _, err := intField(p, "totalPoints"); err != nil {
		return quiz.Question{}, err
	}
	rawBody, err := mapField(p, "body")
	if err != nil {
		return quiz.Question{}, err
	}
	body, err := decodeQuestionBody(rawBody)
	if err != nil {
		return quiz.Question{}, err
	}
	return quiz.Question{Text: text, TimeLimit: timeLimit, Body: body}, nil
}

func decodeQuestionBody(p Payload) (quiz.Body, error) {
	tag, err := stringField(p, keyType)
	if err != nil {
		return nil, err
	}
	switch quiz.QuestionType(tag) {
	case quiz.TypeMultipleChoice:
		rawChoices, err := listField(p, keyChoices)
		if err != nil {
			return nil, err
		}
		choices := make([]quiz.Choice, len(rawChoices))
		for i, rc := range rawChoices {
			text, err := stringField(rc, keyText)
			if err != nil {
				return nil, err
			}
			points, err := intField(rc, keyPoints)
			if err != nil {
				return nil, err
			}
			choices[i] = quiz.Choice{Text: text, Points: points}
		}
		answer, err := intField(p, keyAnswer)
		if err != nil {
			return nil, err
		}
		return quiz.MultipleChoiceBody{Choices: choices, Answer: answer}, nil
	case quiz.TypeFillInTheBlank:
		rawAnswers, err := listField(p, keyAnswers)
		if err != nil {
			return nil, err
		}
		answers := make([]quiz.Answer, len(rawAnswers))
		for i, ra := range rawAnswers {
			text, err := stringField(ra, keyText)
			if err != nil {
				return nil, err
			}
			points, err := intField(ra, keyPoints)
			if err != nil {
				return nil, err
			}
			answers[i] = quiz.Answer{Text: text, Points: points}
		}
		return quiz.FillInTheBlankBody{Answers: answers}, nil
	default:
		return nil, unknownTag("body." + keyType)
	}
}

// EncodeResponse maps a response to {submitter, type, answer} where answer is
// a choice index or free text depending on the discriminant.
func EncodeResponse(r quiz.Response) Payload {
	p := Payload{"submitter": r.Submitter}
	switch b := r.Body.(type) {
	case quiz.ChoiceResponse:
		p[keyType] = string(quiz.TypeMultipleChoice)
		p[keyAnswer] = b.Choice
	case quiz.TextResponse:
		p[keyType] = string(quiz.TypeFillInTheBlank)
		p[keyAnswer] = b.Text
	}
	return p
}

// DecodeResponse is the inverse of EncodeResponse.
func DecodeResponse(p Payload) (quiz.Response, error) {
	submitter, err := stringField(p, "submitter")
	if err != nil {
		return quiz.Response{}, err
	}
	tag, err := stringField(p, keyType)
	if err != nil {
		return quiz.Response{}, err
	}
	switch quiz.QuestionType(tag) {
	case quiz.TypeMultipleChoice:
		choice, err := intField(p, keyAnswer)
		if err != nil {
			return quiz.Response{}, err
		}
		return quiz.Response{Submitter: submitter, Body: quiz.ChoiceResponse{Choice: choice}}, nil
	case quiz.TypeFillInTheBlank:
		text, err := stringField(p, keyAnswer)
		if err != nil {
			return quiz.Response{}, err
		}
		return quiz.Response{Submitter: submitter, Body: quiz.TextResponse{Text: text}}, nil
	default:
		return quiz.Response{}, unknownTag(keyType)
	}
}

// EncodeFeedback maps feedback to {rating, message} with the rating's numeric
// value as discriminant.
func EncodeFeedback(f quiz.Feedback) Payload {
	return Payload{"rating": int(f.Rating), "message": f.Message}
}

// DecodeFeedback is the inverse of EncodeFeedback. An out-of-range rating is
// an unknown tag: no client ever sent it.
func DecodeFeedback(p Payload) (quiz.Feedback, error) {
	rating, err := intField(p, "rating")
	if err != nil {
		return quiz.Feedback{}, err
	}
	if !quiz.Rating(rating).Known() {
		return quiz.Feedback{}, unknownTag("rating")
	}
	message, err := stringField(p, "message")
	if err != nil {
		return quiz.Feedback{}, err
	}
	return quiz.Feedback{Rating: quiz.Rating(rating), Message: message}, nil
}
