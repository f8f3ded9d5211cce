package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Answer belongs to exactly one question.
type Answer struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Body       string    `json:"body"`
	IsAccepted bool      `json:"is_accepted"`
	VoteScore  int       `json:"vote_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AnswerCreate is the body for POST /questions/{id}/answers.
type AnswerCreate struct {
	Body string `json:"body"`
}

// Validate checks the answer body is present.
func (a AnswerCreate) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Body, validation.Required),
	)
}

// AdminAnswerPatch is the body for PATCH /admin/content/answers/{id}.
type AdminAnswerPatch struct {
	Body *string `json:"body,omitempty"`
}

// Validate rejects an empty patch.
func (p AdminAnswerPatch) Validate() error {
	if p.Body == nil {
		return validation.NewError("validation_empty_patch", "at least one field must be set")
	}
	return nil
}
