package wire

// Server-side decoders for the client requests that carry data. Each one is
// the inverse of the matching Request.Encode and is total in the same way the
// inbound decoders are.

func DecodeJoinSessionRequest(p Payload) (JoinSessionRequest, error) {
	session, err := stringField(p, "id")
	if err != nil {
		return JoinSessionRequest{}, err
	}
	name, err := stringField(p, "name")
	if err != nil {
		return JoinSessionRequest{}, err
	}
	return JoinSessionRequest{Session: session, Name: name}, nil
}

func DecodeKickUserRequest(p Payload) (KickUserRequest, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return KickUserRequest{}, err
	}
	name, err := stringField(p, "name")
	if err != nil {
		return KickUserRequest{}, err
	}
	return KickUserRequest{Session: session, Name: name}, nil
}

func DecodeStartSessionRequest(p Payload) (StartSessionRequest, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return StartSessionRequest{}, err
	}
	return StartSessionRequest{Session: session}, nil
}

func DecodeEndSessionRequest(p Payload) (EndSessionRequest, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return EndSessionRequest{}, err
	}
	return EndSessionRequest{Session: session}, nil
}

func DecodeAddQuestionRequest(p Payload) (AddQuestionRequest, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return AddQuestionRequest{}, err
	}
	rawQuestion, err := mapField(p, "question")
	if err != nil {
		return AddQuestionRequest{}, err
	}
	question, err := DecodeQuestion(rawQuestion)
	if err != nil {
		return AddQuestionRequest{}, err
	}
	return AddQuestionRequest{Session: session, Question: question}, nil
}

func DecodeNextQuestionRequest(p Payload) (NextQuestionRequest, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return NextQuestionRequest{}, err
	}
	return NextQuestionRequest{Session: session}, nil
}

func DecodeSubmitResponseRequest(p Payload) (SubmitResponseRequest, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return SubmitResponseRequest{}, err
	}
	name, err := stringField(p, "name")
	if err != nil {
		return SubmitResponseRequest{}, err
	}
	index, err := intField(p, "index")
	if err != nil {
		return SubmitResponseRequest{}, err
	}
	rawResponse, err := mapField(p, "response")
	if err != nil {
		return SubmitResponseRequest{}, err
	}
	response, err := DecodeResponse(rawResponse)
	if err != nil {
		return SubmitResponseRequest{}, err
	}
	return SubmitResponseRequest{Session: session, Index: index, Name: name, Response: response}, nil
}

func DecodeSubmitFeedbackRequest(p Payload) (SubmitFeedbackRequest, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return SubmitFeedbackRequest{}, err
	}
	name, err := stringField(p, "name")
	if err != nil {
		return SubmitFeedbackRequest{}, err
	}
	question, err := intField(p, "question")
	if err != nil {
		return SubmitFeedbackRequest{}, err
	}
	rawFeedback, err := mapField(p, "feedback")
	if err != nil {
		return SubmitFeedbackRequest{}, err
	}
	feedback, err := DecodeFeedback(rawFeedback)
	if err != nil {
		return SubmitFeedbackRequest{}, err
	}
	return SubmitFeedbackRequest{Session: session, Name: name, Question: question, Feedback: feedback}, nil
}

func DecodeSendHintRequest(p Payload) (SendHintRequest, error) {
	session, err := stringField(p, "session")
	if err != nil {
		return SendHintRequest{}, err
	}
	question, err := intField(p, "question")
	if err != nil {
		return SendHintRequest{}, err
	}
	hint, err := stringField(p, "hint")
	if err != nil {
		return SendHintRequest{}, err
	}
	return SendHintRequest{Session: session, Question: question, Hint: hint}, nil
}
