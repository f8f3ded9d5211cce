package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// FlagCreate is the body for POST /flags.
type FlagCreate struct {
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
	Reason     string    `json:"reason"`
}

// Validate checks target type and reason.
func (f FlagCreate) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.TargetType, validation.Required, validation.In(TargetQuestion, TargetAnswer)),
		validation.Field(&f.TargetID, validation.By(requiredUUID)),
		validation.Field(&f.Reason, validation.Required, validation.Length(1, 1000)),
	)
}

// Flag is the server's record of a content flag.
type Flag struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}
