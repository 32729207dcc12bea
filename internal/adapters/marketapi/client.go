// Package marketapi is the HTTP client for the marketplace REST API. Every call sends
// exactly one request with the caller's bearer token and never retries.
package marketapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rentwise-portal/internal/pkg/logger"
)

const maxErrorBody = 4 << 10

// Client talks to the marketplace API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client rooted at baseURL, e.g. https://api.example.com/api
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP lets tests and the CLI supply their own transport
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// call describes one marketplace request
type call struct {
	op      string // operation name for logs and errors
	failure string // fixed user-facing message when the server gives none
	method  string
	path    string
	query   url.Values
	token   string
	body    interface{}

	// set by multipart calls instead of body
	rawBody     io.Reader
	contentType string
}

func (c *Client) do(ctx context.Context, cl call, out interface{}) error {
	log := logger.FromContext(ctx).With("component", "marketapi", "op", cl.op)

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	body := cl.rawBody
	contentType := cl.contentType
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return &APIError{Op: cl.op, Message: cl.failure, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return &APIError{Op: cl.op, Message: cl.failure, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	if requestID := logger.RequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	log.Debug("sending request to marketplace", "method", cl.method, "path", cl.path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("marketplace request failed", "error", err)
		return &APIError{Op: cl.op, Message: cl.failure, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			Op:         cl.op,
			StatusCode: resp.StatusCode,
			Message:    serverMessage(raw, cl.failure),
		}
		log.Warn("marketplace returned error status", "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Op: cl.op, StatusCode: resp.StatusCode, Message: cl.failure, Err: err}
	}
	if err := decode(raw, out); err != nil {
		log.Error("failed to decode marketplace response", "error", err)
		return &APIError{Op: cl.op, StatusCode: resp.StatusCode, Message: cl.failure, Err: err}
	}
	return nil
}

// envelope is the wrapper some marketplace endpoints put around their payload
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// decode accepts both bare payloads and {"data": ...} envelopes
func decode(raw []byte, out interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
			if json.Unmarshal(env.Data, out) == nil {
				return nil
			}
		}
	}
	return json.Unmarshal(trimmed, out)
}

// serverMessage picks a human-readable message out of an error body
func serverMessage(raw []byte, fallback string) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
		Detail  string          `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return fallback
	}
	if body.Message != "" {
		return body.Message
	}
	if len(body.Error) > 0 {
		var s string
		if json.Unmarshal(body.Error, &s) == nil && s != "" {
			return s
		}
	}
	if body.Detail != "" {
		return body.Detail
	}
	return fallback
}

func escape(id string) string {
	return url.PathEscape(id)
}
