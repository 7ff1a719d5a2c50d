package quiz

// QuestionType discriminates the variants of a question body on the wire.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "MultipleChoice"
	TypeFillInTheBlank QuestionType = "FillIn"
)

// Bounds enforced by validation. The server is authoritative; these checks
// exist so a client can reject bad drafts before they go out.
const (
	MinChoices = 2
	MaxChoices = 4
	MinAnswers = 1
	MaxAnswers = 3

	// Time limit bounds in seconds.
	MinTimeLimit = 60
	MaxTimeLimit = 300

	MinTotalPoints = 100
)

// Choice is one selectable option of a multiple choice question.
type Choice struct {
	Text   string
	Points int
}

// Answer is one accepted answer of a fill-in-the-blank question.
type Answer struct {
	Text   string
	Points int
}

// Body is the content of a Question. Exactly MultipleChoiceBody and
// FillInTheBlankBody implement it.
type Body interface {
	Type() QuestionType
}

// MultipleChoiceBody holds 2-4 choices and the index of the correct one.
type MultipleChoiceBody struct {
	Choices []Choice
	Answer  int
}

func (MultipleChoiceBody) Type() QuestionType { return TypeMultipleChoice }

// FillInTheBlankBody holds 1-3 accepted answers for a free-text question.
type FillInTheBlankBody struct {
	Answers []Answer
}

func (FillInTheBlankBody) Type() QuestionType { return TypeFillInTheBlank }

// Question is a quiz question draft. Construction performs no validation so
// an invalid draft can be built up and inspected; callers run Validate before
// submitting it to a session.
type Question struct {
	Text      string
	TimeLimit int // seconds
	Body      Body
}

// TotalPoints sums the points of every choice or answer in the body.
func (q Question) TotalPoints() int {
	total := 0
	switch b := q.Body.(type) {
	case MultipleChoiceBody:
		for _, c := range b.Choices {
			total += c.Points
		}
	case FillInTheBlankBody:
		for _, a := range b.Answers {
			total += a.Points
		}
	}
	return total
}
