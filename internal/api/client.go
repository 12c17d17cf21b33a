// Package api is the REST client for the SnapBee backend. Every operation
// is exactly one HTTP round trip with a uniform timeout, bearer-token
// injection, and error normalization. Retry policy, if any, belongs to
// callers; nothing here retries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bee-go/internal/bee"
)

// DefaultBaseURL is the production backend.
const DefaultBaseURL = "https://snaphive.onrender.com"

// DefaultTimeout bounds every request; the transport aborts the in-flight
// request once the deadline passes.
const DefaultTimeout = 30 * time.Second

// Client performs HTTP round trips against the backend. Operations are
// grouped per resource, mirroring the backend's controller layout.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  bee.TokenStore
	timeout time.Duration
	logger  bee.Logger

	Auth     *AuthService
	Users    *UsersService
	Posts    *PostsService
	Stories  *StoriesService
	Comments *CommentsService
}

// New creates a Client. tokens supplies the bearer token attached to
// authenticated requests; a store yielding "" leaves requests anonymous.
// A non-positive timeout falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration, tokens bee.TokenStore, logger bee.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = bee.NewNopLogger()
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		tokens:  tokens,
		timeout: timeout,
		logger:  logger,
	}
	c.Auth = &AuthService{client: c}
	c.Users = &UsersService{client: c}
	c.Posts = &PostsService{client: c}
	c.Stories = &StoriesService{client: c}
	c.Comments = &CommentsService{client: c}
	return c
}

// raw performs one round trip and returns the response body.
// A 2xx status returns the body bytes (possibly empty). Anything else
// returns a *Error carrying the status and a best-effort message.
func (c *Client) raw(ctx context.Context, method, path string, body any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("loading token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	c.logger.Debug("request complete",
		"method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start).Truncate(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Status:  resp.StatusCode,
			Message: extractMessage(data),
		}
	}
	return data, nil
}

// do performs one round trip and decodes a JSON response into out.
// An empty 2xx body leaves out at its zero value; that is the
// empty-result sentinel, not an error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	data, err := c.raw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

// classifyTransportError maps transport failures onto the error taxonomy:
// a deadline hit becomes a timeout-class *Error without a status, anything
// else a plain network *Error.
func classifyTransportError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return &Error{
			Timeout: true,
			Message: "request timed out: the server may be slow to respond, try again",
			cause:   err,
		}
	}
	return &Error{
		Message: "network error: could not reach the server",
		cause:   err,
	}
}

// extractMessage pulls a human-readable message out of an error body:
// a structured message/error field when the body parses as JSON, else the
// raw body text.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return "request failed"
	}

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return string(body)
}
