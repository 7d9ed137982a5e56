package domain

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Band score bounds. All five dimensions use the same closed interval.
const (
	MinScore = 0.0
	MaxScore = 9.0
)

// Common validation errors
var (
	ErrEmptyResponseID       = errors.New("response ID cannot be empty")
	ErrEmptyResponseUserID   = errors.New("response user ID cannot be empty")
	ErrEmptyResponseQuestion = errors.New("response question ID cannot be empty")
	ErrResponseTextTooShort  = errors.New("response text must be at least 10 characters long")
	ErrScoreOutOfRange       = errors.New("score must be between 0 and 9")
)

// Response is one submitted practice answer. The five sub-scores are
// optional because the scoring service may return partial data; a nil
// dimension means "not assessed", never zero.
type Response struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	QuestionID         uuid.UUID `json:"question_id"`
	Text               string    `json:"response_text"`
	AudioPath          *string   `json:"audio_file_path,omitempty"`
	FluencyScore       *float64  `json:"fluency_score,omitempty"`
	PronunciationScore *float64  `json:"pronunciation_score,omitempty"`
	GrammarScore       *float64  `json:"grammar_score,omitempty"`
	VocabularyScore    *float64  `json:"vocabulary_score,omitempty"`
	OverallScore       *float64  `json:"overall_score,omitempty"`
	AIFeedback         *string   `json:"ai_feedback,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewResponse creates a new Response for the given user and question.
// Scores are attached afterwards by the caller, before the response is
// persisted; Validate covers them either way.
func NewResponse(userID, questionID uuid.UUID, text string) (*Response, error) {
	response := &Response{
		ID:         uuid.New(),
		UserID:     userID,
		QuestionID: questionID,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}

	if err := response.Validate(); err != nil {
		return nil, err
	}

	return response, nil
}

// Validate checks if the Response has valid data, including the range
// of every sub-score that is present.
func (r *Response) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyResponseID
	}

	if r.UserID == uuid.Nil {
		return ErrEmptyResponseUserID
	}

	if r.QuestionID == uuid.Nil {
		return ErrEmptyResponseQuestion
	}

	// Length limits count characters, not bytes.
	if utf8.RuneCountInString(r.Text) < 10 {
		return ErrResponseTextTooShort
	}

	scores := map[string]*float64{
		"fluency":       r.FluencyScore,
		"pronunciation": r.PronunciationScore,
		"grammar":       r.GrammarScore,
		"vocabulary":    r.VocabularyScore,
		"overall":       r.OverallScore,
	}
	for dimension, score := range scores {
		if score != nil && (*score < MinScore || *score > MaxScore) {
			return fmt.Errorf("%w: %s", ErrScoreOutOfRange, dimension)
		}
	}

	return nil
}
