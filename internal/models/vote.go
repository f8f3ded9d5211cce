package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Vote and flag targets.
const (
	TargetQuestion = "question"
	TargetAnswer   = "answer"
)

// VoteCreate is the body for POST /votes. Value is exactly +1 or -1.
type VoteCreate struct {
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
	Value      int       `json:"value"`
}

// Validate checks target type and vote value.
func (v VoteCreate) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.TargetType, validation.Required, validation.In(TargetQuestion, TargetAnswer)),
		validation.Field(&v.TargetID, validation.By(requiredUUID)),
		validation.Field(&v.Value, validation.Required, validation.In(1, -1)),
	)
}

// Vote is the server's record of a cast vote. The client never keeps a
// list of these; scores come from refetching the target aggregate.
type Vote struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
	Value      int       `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
}

func requiredUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}
