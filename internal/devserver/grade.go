package devserver

import (
	"strconv"
	"strings"

	"quizez/pkg/quiz"
)

// grade scores a response against the live question. It returns the points
// earned and the canonical answer string used for frequency counting. A
// response is correct when it earns points.
func grade(q quiz.Question, r quiz.Response) (points int, answer string) {
	switch body := q.Body.(type) {
	case quiz.MultipleChoiceBody:
		choice, ok := r.Body.(quiz.ChoiceResponse)
		if !ok {
			return 0, ""
		}
		if choice.Choice < 0 || choice.Choice >= len(body.Choices) {
			return 0, strconv.Itoa(choice.Choice)
		}
		return body.Choices[choice.Choice].Points, body.Choices[choice.Choice].Text
	case quiz.FillInTheBlankBody:
		text, ok := r.Body.(quiz.TextResponse)
		if !ok {
			return 0, ""
		}
		normalized := strings.ToLower(strings.TrimSpace(text.Text))
		for _, a := range body.Answers {
			if strings.ToLower(strings.TrimSpace(a.Text)) == normalized {
				return a.Points, normalized
			}
		}
		return 0, normalized
	}
	return 0, ""
}
