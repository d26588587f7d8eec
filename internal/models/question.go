package models

import "errors"

var (
	ErrEmptyQuestionText = errors.New("question text must not be empty")
	ErrTooFewOptions     = errors.New("question needs at least two options")
	ErrAnswerOutOfRange  = errors.New("correct_answer index is out of range")
)

// Question is a single multiple-choice question from the question bank.
// Questions are read-mostly; the subject label is optional.
type Question struct {
	ID            string   `bson:"_id,omitempty" json:"id"`
	Question      string   `bson:"question" json:"question" binding:"required"`
	Options       []string `bson:"options" json:"options" binding:"required,min=2"`
	CorrectAnswer int      `bson:"correct_answer" json:"correct_answer" binding:"min=0"`
	Subject       string   `bson:"subject,omitempty" json:"subject,omitempty"`
}

func (q *Question) Validate() error {
	if q.Question == "" {
		return ErrEmptyQuestionText
	}
	if len(q.Options) < 2 {
		return ErrTooFewOptions
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return ErrAnswerOutOfRange
	}
	return nil
}
