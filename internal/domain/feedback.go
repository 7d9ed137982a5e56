package domain

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyFeedbackID     = errors.New("feedback ID cannot be empty")
	ErrEmptyFeedbackUserID = errors.New("feedback user ID cannot be empty")
	ErrCommentTooShort     = errors.New("feedback comment must be at least 10 characters long")
)

// Feedback is standalone AI commentary attached to a user, independent
// of any single response.
type Feedback struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Comment   string    `json:"ai_comment"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFeedback creates a new Feedback entry for the given user.
// Returns an error if validation fails.
func NewFeedback(userID uuid.UUID, comment string) (*Feedback, error) {
	feedback := &Feedback{
		ID:        uuid.New(),
		UserID:    userID,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}

	if err := feedback.Validate(); err != nil {
		return nil, err
	}

	return feedback, nil
}

// Validate checks if the Feedback has valid data.
func (f *Feedback) Validate() error {
	if f.ID == uuid.Nil {
		return ErrEmptyFeedbackID
	}

	if f.UserID == uuid.Nil {
		return ErrEmptyFeedbackUserID
	}

	// Length limits count characters, not bytes.
	if utf8.RuneCountInString(f.Comment) < 10 {
		return ErrCommentTooShort
	}

	return nil
}
