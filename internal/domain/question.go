package domain

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Speaking test part bounds. IELTS speaking has exactly three parts:
// personal questions, the individual long turn and the discussion.
const (
	MinPart = 1
	MaxPart = 3
)

// Common validation errors
var (
	ErrEmptyQuestionID       = errors.New("question ID cannot be empty")
	ErrInvalidPart           = errors.New("part must be 1, 2 or 3")
	ErrQuestionTextTooShort  = errors.New("question text must be at least 10 characters long")
	ErrCategoryTooLong       = errors.New("category must be at most 100 characters long")
)

// Question is a speaking prompt belonging to one of the three test parts.
// The question pool is managed through the CRUD surface and the bulk
// importer; the practice session only ever reads it.
type Question struct {
	ID           uuid.UUID `json:"id"`
	Part         int       `json:"part"`
	Text         string    `json:"question_text"`
	SampleAnswer *string   `json:"sample_answer,omitempty"`
	Category     *string   `json:"category,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewQuestion creates a new Question for the given part.
// Returns an error if validation fails.
func NewQuestion(part int, text string, sampleAnswer, category *string) (*Question, error) {
	question := &Question{
		ID:           uuid.New(),
		Part:         part,
		Text:         text,
		SampleAnswer: sampleAnswer,
		Category:     category,
		CreatedAt:    time.Now().UTC(),
	}

	if err := question.Validate(); err != nil {
		return nil, err
	}

	return question, nil
}

// Validate checks if the Question has valid data.
func (q *Question) Validate() error {
	if q.ID == uuid.Nil {
		return ErrEmptyQuestionID
	}

	if q.Part < MinPart || q.Part > MaxPart {
		return ErrInvalidPart
	}

	// Length limits count characters, not bytes.
	if utf8.RuneCountInString(q.Text) < 10 {
		return ErrQuestionTextTooShort
	}

	if q.Category != nil && utf8.RuneCountInString(*q.Category) > 100 {
		return ErrCategoryTooLong
	}

	return nil
}
