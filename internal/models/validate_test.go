package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVoteCreateValidate(t *testing.T) {
	valid := VoteCreate{TargetType: TargetQuestion, TargetID: uuid.New(), Value: 1}
	assert.NoError(t, valid.Validate())

	valid.Value = -1
	assert.NoError(t, valid.Validate())

	// No abstention and no stuffing: only +1 and -1 exist.
	for _, value := range []int{0, 2, -2} {
		invalid := valid
		invalid.Value = value
		assert.Error(t, invalid.Validate(), "value %d", value)
	}

	invalid := valid
	invalid.TargetType = "comment"
	assert.Error(t, invalid.Validate())

	invalid = valid
	invalid.TargetID = uuid.Nil
	assert.Error(t, invalid.Validate())
}

func TestFlagCreateValidate(t *testing.T) {
	valid := FlagCreate{TargetType: TargetAnswer, TargetID: uuid.New(), Reason: "spam"}
	assert.NoError(t, valid.Validate())

	invalid := valid
	invalid.Reason = ""
	assert.Error(t, invalid.Validate())
}

func TestAdminPatchesRejectEmpty(t *testing.T) {
	assert.Error(t, AdminQuestionPatch{}.Validate())
	assert.Error(t, AdminAnswerPatch{}.Validate())

	title := "new title"
	assert.NoError(t, AdminQuestionPatch{Title: &title}.Validate())
	body := "new body"
	assert.NoError(t, AdminAnswerPatch{Body: &body}.Validate())
}

func TestAnswerCreateValidate(t *testing.T) {
	assert.Error(t, AnswerCreate{}.Validate())
	assert.NoError(t, AnswerCreate{Body: "because flexbox"}.Validate())
}
