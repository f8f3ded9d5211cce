package gateway

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/moringa-qa/client/internal/models"
)

// ListAnswers fetches the flat answer list for a question.
func (c *Client) ListAnswers(ctx context.Context, questionID uuid.UUID) ([]models.Answer, error) {
	var answers []models.Answer
	err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   "/questions/" + questionID.String() + "/answers",
	}, &answers)
	return answers, err
}

// CreateAnswer posts an answer under a question.
func (c *Client) CreateAnswer(ctx context.Context, questionID uuid.UUID, payload models.AnswerCreate) (*models.Answer, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	var answer models.Answer
	err := c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "/questions/" + questionID.String() + "/answers",
		body:   payload,
	}, &answer)
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// AcceptAnswer marks one answer as accepted server-side. The client learns
// the resulting accept state only by refetching.
func (c *Client) AcceptAnswer(ctx context.Context, questionID, answerID uuid.UUID) error {
	return c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "/questions/" + questionID.String() + "/answers/" + answerID.String() + "/accept",
	}, nil)
}
