// Package gateway holds the typed request functions for the Q&A API.
// Each function performs exactly one round-trip and shapes the request or
// unwraps the response; retry, caching and timeout policy belong to the
// caller and the injected http.Client.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/moringa-qa/client/internal/auth"
)

// GenericErrorMessage is shown when a failure carries no structured detail.
const GenericErrorMessage = "Something went wrong"

// RemoteError is a structured API failure. Detail is the server's
// human-readable message when the response body carried one.
type RemoteError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// ErrorMessage extracts a user-facing message from err: the server detail
// when present, otherwise the generic fallback. Transport failures never
// leak raw error text to the user.
func ErrorMessage(err error) string {
	return ErrorMessageOr(err, GenericErrorMessage)
}

// ErrorMessageOr is ErrorMessage with a caller-chosen fallback.
func ErrorMessageOr(err error, fallback string) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Detail != "" {
		return remote.Detail
	}
	return fallback
}

// Client calls the Q&A API with a bearer credential.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     auth.TokenSource
	logger     *zap.Logger
}

// NewClient creates a gateway client. A nil httpClient gets a 30s timeout
// default; timeouts are otherwise the transport's concern.
func NewClient(baseURL string, tokens auth.TokenSource, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
	}
}

type apiRequest struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   any
}

// do performs one round-trip and decodes a JSON response into out (when
// non-nil). Non-2xx responses become *RemoteError with the optional
// {detail} body message.
func (c *Client) do(ctx context.Context, req apiRequest, out any) error {
	var body io.Reader
	if req.body != nil {
		buf, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range req.header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err == nil && token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api round-trip",
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.remoteError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) remoteError(resp *http.Response) error {
	remote := &RemoteError{Status: resp.StatusCode}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err == nil {
		remote.Detail = payload.Detail
	}
	return remote
}
