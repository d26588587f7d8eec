package models

import (
	"errors"
	"testing"
)

func TestQuestionValidate(t *testing.T) {
	testCases := []struct {
		name     string
		question Question
		wantErr  error
	}{
		{
			name: "valid",
			question: Question{
				Question:      "What is the capital of France?",
				Options:       []string{"London", "Paris", "Madrid", "Rome"},
				CorrectAnswer: 1,
				Subject:       "Geography",
			},
			wantErr: nil,
		},
		{
			name: "empty text",
			question: Question{
				Options:       []string{"A", "B"},
				CorrectAnswer: 0,
			},
			wantErr: ErrEmptyQuestionText,
		},
		{
			name: "single option",
			question: Question{
				Question:      "Pick one",
				Options:       []string{"A"},
				CorrectAnswer: 0,
			},
			wantErr: ErrTooFewOptions,
		},
		{
			name: "answer index too large",
			question: Question{
				Question:      "Pick one",
				Options:       []string{"A", "B"},
				CorrectAnswer: 2,
			},
			wantErr: ErrAnswerOutOfRange,
		},
		{
			name: "negative answer index",
			question: Question{
				Question:      "Pick one",
				Options:       []string{"A", "B"},
				CorrectAnswer: -1,
			},
			wantErr: ErrAnswerOutOfRange,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.question.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
