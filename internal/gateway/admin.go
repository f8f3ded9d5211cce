package gateway

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/moringa-qa/client/internal/models"
)

// AdminUpdateQuestion edits question content in place. Role checks happen
// server-side; the client only shapes the request.
func (c *Client) AdminUpdateQuestion(ctx context.Context, id uuid.UUID, patch models.AdminQuestionPatch) (*models.Question, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	var question models.Question
	err := c.do(ctx, apiRequest{
		method: http.MethodPatch,
		path:   "/admin/content/questions/" + id.String(),
		body:   patch,
	}, &question)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// AdminUpdateAnswer edits answer content in place.
func (c *Client) AdminUpdateAnswer(ctx context.Context, id uuid.UUID, patch models.AdminAnswerPatch) (*models.Answer, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	var answer models.Answer
	err := c.do(ctx, apiRequest{
		method: http.MethodPatch,
		path:   "/admin/content/answers/" + id.String(),
		body:   patch,
	}, &answer)
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// AdminDeleteQuestion removes a question and its answers.
func (c *Client) AdminDeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, apiRequest{
		method: http.MethodDelete,
		path:   "/admin/content/questions/" + id.String(),
	}, nil)
}

// AdminDeleteAnswer removes one answer.
func (c *Client) AdminDeleteAnswer(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, apiRequest{
		method: http.MethodDelete,
		path:   "/admin/content/answers/" + id.String(),
	}, nil)
}
