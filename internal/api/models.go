package api

import (
	"time"

	"github.com/speakoai/speako-api/internal/domain"
)

// CreateUserRequest represents the request body for registering a user
type CreateUserRequest struct {
	TelegramID int64   `json:"telegram_id" validate:"required,gt=0"`
	FirstName  string  `json:"first_name"  validate:"required,max=25"`
	Username   *string `json:"username"    validate:"omitempty,max=50"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=25"`
	Username  *string `json:"username"   validate:"omitempty,max=50"`
}

// UserResponse represents the response data for a user
type UserResponse struct {
	ID         string    `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	FirstName  string    `json:"first_name"`
	Username   *string   `json:"username,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateQuestionRequest represents the request body for creating a question
type CreateQuestionRequest struct {
	Part         int     `json:"part"          validate:"required,min=1,max=3"`
	QuestionText string  `json:"question_text" validate:"required,min=10"`
	SampleAnswer *string `json:"sample_answer" validate:"omitempty"`
	Category     *string `json:"category"      validate:"omitempty,max=100"`
}

// QuestionResponse represents the response data for a question
type QuestionResponse struct {
	ID           string    `json:"id"`
	Part         int       `json:"part"`
	QuestionText string    `json:"question_text"`
	SampleAnswer *string   `json:"sample_answer,omitempty"`
	Category     *string   `json:"category,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateResponseRequest represents the request body for recording a
// practice response directly, scores included. The conversational flow
// goes through the practice service instead; this surface exists for
// imports and admin tooling.
type CreateResponseRequest struct {
	UserID             string   `json:"user_id"       validate:"required,uuid"`
	QuestionID         string   `json:"question_id"   validate:"required,uuid"`
	ResponseText       string   `json:"response_text" validate:"required,min=10"`
	FluencyScore       *float64 `json:"fluency_score"       validate:"omitempty,gte=0,lte=9"`
	PronunciationScore *float64 `json:"pronunciation_score" validate:"omitempty,gte=0,lte=9"`
	GrammarScore       *float64 `json:"grammar_score"       validate:"omitempty,gte=0,lte=9"`
	VocabularyScore    *float64 `json:"vocabulary_score"    validate:"omitempty,gte=0,lte=9"`
	OverallScore       *float64 `json:"overall_score"       validate:"omitempty,gte=0,lte=9"`
	AIFeedback         *string  `json:"ai_feedback"`
}

// CreateFeedbackRequest represents the request body for storing AI commentary
type CreateFeedbackRequest struct {
	UserID  string `json:"user_id"    validate:"required,uuid"`
	Comment string `json:"ai_comment" validate:"required,min=10"`
}

// userToDTOResponse converts a domain.User to a UserResponse
func userToDTOResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID.String(),
		TelegramID: user.TelegramID,
		FirstName:  user.FirstName,
		Username:   user.Username,
		CreatedAt:  user.CreatedAt,
	}
}

// questionToDTOResponse converts a domain.Question to a QuestionResponse
func questionToDTOResponse(question *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:           question.ID.String(),
		Part:         question.Part,
		QuestionText: question.Text,
		SampleAnswer: question.SampleAnswer,
		Category:     question.Category,
		CreatedAt:    question.CreatedAt,
	}
}
