// Package apiclient is the gateway every console screen talks to the
// backend through. It attaches the session's bearer token to each request
// and turns every outcome into either a decoded payload or a
// *util.ConsoleError categorized as FETCH_ERROR or SERVER_REJECTED.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-console/internal/api/dto"
	"github.com/spec-kit/ticket-console/internal/observability"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

// RequestIDHeader carries a per-call correlation id.
const RequestIDHeader = "X-Request-ID"

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

// Options configures a Client.
type Options struct {
	BaseURL string
	Tokens  TokenSource
	Timeout time.Duration
	Logger  *zap.Logger
	Metrics *observability.Metrics
}

// Client issues JSON requests against a fixed base URL.
type Client struct {
	baseURL string
	tokens  TokenSource
	timeout time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics
}

// Result is the raw outcome of a successful call.
type Result struct {
	Status    int
	Body      []byte
	RequestID string
}

// New builds a client.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		tokens:  opts.Tokens,
		timeout: opts.Timeout,
		logger:  logger,
		metrics: opts.Metrics,
	}
}

// WithToken returns a copy of the client that sends token instead of the
// configured token source. Used while a login is still being verified and
// the token is not yet part of a session.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.tokens = staticToken(token)
	return &clone
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches path and decodes the payload into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.call(ctx, fiber.MethodGet, path, nil, out)
}

// Post sends payload to path and decodes the payload into out.
func (c *Client) Post(ctx context.Context, path string, payload, out any) error {
	return c.call(ctx, fiber.MethodPost, path, payload, out)
}

// Put sends payload to path and decodes the payload into out.
func (c *Client) Put(ctx context.Context, path string, payload, out any) error {
	return c.call(ctx, fiber.MethodPut, path, payload, out)
}

// Delete issues a DELETE to path and decodes the payload into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.call(ctx, fiber.MethodDelete, path, nil, out)
}

func (c *Client) call(ctx context.Context, method, path string, payload, out any) error {
	result, err := c.Do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if err := DecodeData(result.Body, out); err != nil {
		c.metrics.RecordError(path, method, apperrors.CodeFetchError)
		return apperrors.NewFetchError(method, path, err)
	}
	return nil
}

// Do performs one request. Status codes of 400 and above become
// SERVER_REJECTED errors carrying the server's message.
func (c *Client) Do(ctx context.Context, method, path string, payload any) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewFetchError(method, path, err)
	}

	agent, err := newAgent(method, c.baseURL+path)
	if err != nil {
		return nil, apperrors.NewFetchError(method, path, err)
	}
	requestID := uuid.NewString()
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.Set(RequestIDHeader, requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
	}
	if payload != nil {
		agent.JSON(payload)
	}
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}

	start := time.Now()
	status, body, errs := agent.Bytes()
	duration := time.Since(start)

	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Duration("duration", duration),
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		c.metrics.RecordError(path, method, apperrors.CodeFetchError)
		c.logger.Warn("api request failed", append(fields, zap.Error(err))...)
		return nil, apperrors.NewFetchError(method, path, err)
	}

	c.metrics.RecordRequest(path, method, status, duration)
	fields = append(fields, zap.Int("status", status))

	if status >= fiber.StatusBadRequest {
		var errBody dto.ErrorBody
		_ = json.Unmarshal(body, &errBody)
		c.metrics.RecordError(path, method, apperrors.CodeServerRejected)
		c.logger.Info("api request rejected", append(fields, zap.String("server_message", errBody.Text()))...)
		return nil, apperrors.NewServerRejected(status, errBody.Text(), map[string]any{
			"method":     method,
			"path":       path,
			"request_id": requestID,
		})
	}

	c.logger.Debug("api request", fields...)
	return &Result{Status: status, Body: body, RequestID: requestID}, nil
}

func newAgent(method, url string) (*fiber.Agent, error) {
	switch method {
	case fiber.MethodGet:
		return fiber.Get(url), nil
	case fiber.MethodPost:
		return fiber.Post(url), nil
	case fiber.MethodPut:
		return fiber.Put(url), nil
	case fiber.MethodDelete:
		return fiber.Delete(url), nil
	default:
		return nil, errors.New("unsupported method " + method)
	}
}
