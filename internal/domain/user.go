package domain

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID        = errors.New("user ID cannot be empty")
	ErrInvalidTelegramID  = errors.New("telegram ID must be a positive number")
	ErrEmptyFirstName     = errors.New("first name cannot be empty")
	ErrFirstNameTooLong   = errors.New("first name must be at most 25 characters long")
	ErrUsernameTooLong    = errors.New("username must be at most 50 characters long")
)

// User represents a registered user of the Speako platform.
// TelegramID is the external identity the chat front-end knows the user
// by; ID is the internal surrogate key everything else references.
type User struct {
	ID         uuid.UUID `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	FirstName  string    `json:"first_name"`
	Username   *string   `json:"username,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewUser creates a new User with the given external identity.
// It generates a new UUID for the user ID and sets the creation timestamp.
// Returns an error if validation fails.
func NewUser(telegramID int64, firstName string, username *string) (*User, error) {
	user := &User{
		ID:         uuid.New(),
		TelegramID: telegramID,
		FirstName:  firstName,
		Username:   username,
		CreatedAt:  time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.TelegramID <= 0 {
		return ErrInvalidTelegramID
	}

	if u.FirstName == "" {
		return ErrEmptyFirstName
	}

	// Length limits count characters, not bytes; the columns behind
	// these fields are character-sized.
	if utf8.RuneCountInString(u.FirstName) > 25 {
		return ErrFirstNameTooLong
	}

	if u.Username != nil && utf8.RuneCountInString(*u.Username) > 50 {
		return ErrUsernameTooLong
	}

	return nil
}
