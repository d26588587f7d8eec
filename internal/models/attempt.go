package models

import "errors"

var (
	ErrNoQuestions     = errors.New("question list must not be empty")
	ErrTotalMismatch   = errors.New("total_questions does not match the number of questions")
	ErrAnswersMismatch = errors.New("number of answers does not match the number of questions")
)

// UserAttempt holds one quiz run: the score, the number of questions and the
// option index the user picked for each question, in question order.
type UserAttempt struct {
	Score          int   `json:"score" binding:"min=0"`
	TotalQuestions int   `json:"total_questions" binding:"required,gt=0"`
	Answers        []int `json:"answers" binding:"required"`
}

type ExplanationRequest struct {
	QuestionText string `json:"question_text" binding:"required"`
}

type ExplanationResponse struct {
	Explanation string `json:"explanation"`
}

type FeedbackRequest struct {
	Questions   []Question  `json:"questions" binding:"required,min=1,dive"`
	UserAttempt UserAttempt `json:"user_attempt" binding:"required"`
}

type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

// Validate checks that the answer list lines up with the question list.
func (r *FeedbackRequest) Validate() error {
	if len(r.Questions) == 0 {
		return ErrNoQuestions
	}
	if len(r.Questions) != r.UserAttempt.TotalQuestions {
		return ErrTotalMismatch
	}
	if len(r.UserAttempt.Answers) != len(r.Questions) {
		return ErrAnswersMismatch
	}
	return nil
}

// IncorrectQuestions returns the questions whose selected option index differs
// from the correct one, preserving question order.
func (r *FeedbackRequest) IncorrectQuestions() []Question {
	var incorrect []Question
	for i, q := range r.Questions {
		if r.UserAttempt.Answers[i] != q.CorrectAnswer {
			incorrect = append(incorrect, q)
		}
	}
	return incorrect
}
