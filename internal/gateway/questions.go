package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/moringa-qa/client/internal/models"
)

// SessionTokenHeader correlates view tracking across requests from the
// same client session.
const SessionTokenHeader = "X-Session-Token"

// ViewOptions control whether a detail fetch should count as a view.
type ViewOptions struct {
	TrackView    bool
	SessionToken string
}

// ListParams filter GET /questions.
type ListParams struct {
	Limit    int
	Offset   int
	Tag      string
	Category string
	Stage    string
	Query    string
}

// GetQuestion fetches the full aggregate for one question id. The view
// decision is forwarded as request metadata; the server owns the counter.
func (c *Client) GetQuestion(ctx context.Context, id uuid.UUID, view ViewOptions) (*models.QuestionDetail, error) {
	query := url.Values{}
	query.Set("track_view", strconv.FormatBool(view.TrackView))
	header := http.Header{}
	if view.SessionToken != "" {
		header.Set(SessionTokenHeader, view.SessionToken)
	}

	var detail models.QuestionDetail
	err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   "/questions/" + id.String(),
		query:  query,
		header: header,
	}, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListQuestions fetches a page of questions.
func (c *Client) ListQuestions(ctx context.Context, params ListParams) ([]models.Question, error) {
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.Tag != "" {
		query.Set("tag", params.Tag)
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}
	if params.Stage != "" {
		query.Set("stage", params.Stage)
	}
	if params.Query != "" {
		query.Set("q", params.Query)
	}

	var questions []models.Question
	err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   "/questions",
		query:  query,
	}, &questions)
	return questions, err
}

// CreateQuestion posts a new question.
func (c *Client) CreateQuestion(ctx context.Context, payload models.QuestionCreate) (*models.Question, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	var question models.Question
	err := c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "/questions",
		body:   payload,
	}, &question)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// ListDuplicates fetches questions whose titles look similar to title.
// The server returns an empty list for titles under its own threshold.
func (c *Client) ListDuplicates(ctx context.Context, title string) ([]models.Question, error) {
	query := url.Values{}
	query.Set("title", title)

	var questions []models.Question
	err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   "/questions/duplicates",
		query:  query,
	}, &questions)
	return questions, err
}
