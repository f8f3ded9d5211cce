package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Question is one question as the server renders it in lists.
type Question struct {
	ID               uuid.UUID  `json:"id"`
	AuthorID         uuid.UUID  `json:"author_id"`
	AuthorName       string     `json:"author_name,omitempty"`
	Title            string     `json:"title"`
	Body             string     `json:"body"`
	Category         string     `json:"category"`
	Stage            string     `json:"stage"`
	AcceptedAnswerID *uuid.UUID `json:"accepted_answer_id"`
	AnswersCount     int        `json:"answers_count,omitempty"`
	ViewsCount       int        `json:"views_count,omitempty"`
	VoteScore        int        `json:"vote_score"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// QuestionDetail is the full aggregate for one question id.
type QuestionDetail struct {
	Question
	Answers          []Answer   `json:"answers"`
	Tags             []Tag      `json:"tags"`
	RelatedQuestions []Question `json:"related_questions"`
}

// Tag is a read-only label attached to questions.
type Tag struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// QuestionCreate is the body for POST /questions.
type QuestionCreate struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
	Stage    string `json:"stage"`
}

// Validate checks required question fields before the request is sent.
func (q QuestionCreate) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&q.Body, validation.Required),
		validation.Field(&q.Category, validation.Required),
		validation.Field(&q.Stage, validation.Required),
	)
}

// AdminQuestionPatch is the body for PATCH /admin/content/questions/{id}.
// Nil fields are left untouched by the server.
type AdminQuestionPatch struct {
	Title    *string `json:"title,omitempty"`
	Body     *string `json:"body,omitempty"`
	Category *string `json:"category,omitempty"`
	Stage    *string `json:"stage,omitempty"`
}

// Validate rejects an empty patch.
func (p AdminQuestionPatch) Validate() error {
	if p.Title == nil && p.Body == nil && p.Category == nil && p.Stage == nil {
		return validation.NewError("validation_empty_patch", "at least one field must be set")
	}
	return nil
}
