package quiz

import (
	"fmt"
	"unicode/utf8"
)

// Rule names a single validation constraint.
type Rule string

const (
	RuleTextNotEmpty               Rule = "textNotEmpty"
	RuleTimeLimitInExpectedRange   Rule = "timeLimitInExpectedRange"
	RuleChoicesInExpectedRange     Rule = "choicesInExpectedRange"
	RuleChoiceTextNotEmpty         Rule = "choiceTextNotEmpty"
	RuleAnswersInExpectedRange     Rule = "answersInExpectedRange"
	RuleAnswerTextNotEmpty         Rule = "answerTextNotEmpty"
	RulePointsNotNegative          Rule = "pointsNotNegative"
	RuleAnswerWithinBounds         Rule = "answerWithinBounds"
	RuleTotalPointsInExpectedRange Rule = "totalPointsInExpectedRange"

	RuleSubmitterNotEmpty Rule = "submitterNotEmpty"
	RuleAnswerNotEmpty    Rule = "answerNotEmpty"

	RuleMessageTooLong Rule = "messageTooLong"
)

// Constraint is one violated validation rule. Index identifies the offending
// choice or answer for per-element rules and is -1 otherwise.
type Constraint struct {
	Rule  Rule
	Index int
}

func (c Constraint) String() string {
	if c.Index >= 0 {
		return fmt.Sprintf("%s(%d)", c.Rule, c.Index)
	}
	return string(c.Rule)
}

func violated(r Rule) Constraint          { return Constraint{Rule: r, Index: -1} }
func violatedAt(r Rule, i int) Constraint { return Constraint{Rule: r, Index: i} }

// Validate returns every constraint the question violates, never just the
// first, so a producer can surface all problems at once. An empty slice means
// the question may be submitted.
func (q Question) Validate() []Constraint {
	var failed []Constraint

	if q.Text == "" {
		failed = append(failed, violated(RuleTextNotEmpty))
	}
	if q.TimeLimit < MinTimeLimit || q.TimeLimit > MaxTimeLimit {
		failed = append(failed, violated(RuleTimeLimitInExpectedRange))
	}

	switch b := q.Body.(type) {
	case MultipleChoiceBody:
		if len(b.Choices) < MinChoices || len(b.Choices) > MaxChoices {
			failed = append(failed, violated(RuleChoicesInExpectedRange))
		}
		for i, c := range b.Choices {
			if c.Text == "" {
				failed = append(failed, violatedAt(RuleChoiceTextNotEmpty, i))
			}
			if c.Points < 0 {
				failed = append(failed, violatedAt(RulePointsNotNegative, i))
			}
		}
		if b.Answer < 0 || b.Answer >= len(b.Choices) {
			failed = append(failed, violated(RuleAnswerWithinBounds))
		}
	case FillInTheBlankBody:
		if len(b.Answers) < MinAnswers || len(b.Answers) > MaxAnswers {
			failed = append(failed, violated(RuleAnswersInExpectedRange))
		}
		for i, a := range b.Answers {
			if a.Text == "" {
				failed = append(failed, violatedAt(RuleAnswerTextNotEmpty, i))
			}
			if a.Points < 0 {
				failed = append(failed, violatedAt(RulePointsNotNegative, i))
			}
		}
	}

	if q.TotalPoints() < MinTotalPoints {
		failed = append(failed, violated(RuleTotalPointsInExpectedRange))
	}

	return failed
}

// Validate checks the response's content, optionally against the question it
// answers. With a multiple choice reference question the choice index must be
// within the question's choice range.
func (r Response) Validate(question *Question) []Constraint {
	var failed []Constraint

	if r.Submitter == "" {
		failed = append(failed, violated(RuleSubmitterNotEmpty))
	}

	switch b := r.Body.(type) {
	case ChoiceResponse:
		if question == nil {
			break
		}
		mc, ok := question.Body.(MultipleChoiceBody)
		if !ok {
			break
		}
		if b.Choice < 0 || b.Choice >= len(mc.Choices) {
			failed = append(failed, violated(RuleAnswerWithinBounds))
		}
	case TextResponse:
		if b.Text == "" {
			failed = append(failed, violated(RuleAnswerNotEmpty))
		}
	}

	return failed
}

// Validate checks the feedback message length.
func (f Feedback) Validate() []Constraint {
	var failed []Constraint
	if utf8.RuneCountInString(f.Message) > MaxFeedbackMessage {
		failed = append(failed, violated(RuleMessageTooLong))
	}
	return failed
}
