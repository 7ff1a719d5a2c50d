package quiz

// ResponseBody is the answer content of a Response. Exactly ChoiceResponse
// and TextResponse implement it.
type ResponseBody interface {
	Type() QuestionType
}

// ChoiceResponse answers a multiple choice question by choice index.
type ChoiceResponse struct {
	Choice int
}

func (ChoiceResponse) Type() QuestionType { return TypeMultipleChoice }

// TextResponse answers a fill-in-the-blank question with free text.
type TextResponse struct {
	Text string
}

func (TextResponse) Type() QuestionType { return TypeFillInTheBlank }

// Response is a participant's answer to a pushed question.
type Response struct {
	Submitter string
	Body      ResponseBody
}

// Rating grades the difficulty of a question in submitted feedback.
type Rating int

const (
	RatingImpossible Rating = iota
	RatingHard
	RatingOkay
	RatingSimple
	RatingEasy
)

// Known reports whether the rating is one of the defined values.
func (r Rating) Known() bool {
	return r >= RatingImpossible && r <= RatingEasy
}

func (r Rating) String() string {
	switch r {
	case RatingImpossible:
		return "Impossible"
	case RatingHard:
		return "Hard"
	case RatingOkay:
		return "Okay"
	case RatingSimple:
		return "Simple"
	case RatingEasy:
		return "Easy"
	default:
		return "Unknown"
	}
}

// MaxFeedbackMessage is the longest message Feedback may carry.
const MaxFeedbackMessage = 100

// Feedback is a participant's difficulty rating for a question, with an
// optional message explaining the rating.
type Feedback struct {
	Rating  Rating
	Message string
}
