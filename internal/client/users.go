package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wuwenbin0122/userdash/internal/models"
	"github.com/wuwenbin0122/userdash/internal/utils"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBodySize   = 64 * 1024

	// FallbackMessage is shown when the server gave no usable error message.
	FallbackMessage = "Something went wrong, please come back later."
	networkMessage  = "Unable to reach the user service, please come back later."
)

type httpDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// APIError is a non-success response from the users endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError means the request never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return networkMessage
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// Client fetches the user directory from a users endpoint.
type Client struct {
	url    string
	token  string
	client httpDoer
	logger *zap.Logger
}

type Option func(*Client)

// WithToken sends token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(doer httpDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.client = doer
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client = newHTTPClientWithTimeout(d)
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(url string, opts ...Option) *Client {
	c := &Client{
		url:    strings.TrimSpace(url),
		client: newHTTPClientWithTimeout(defaultHTTPTimeout),
		logger: utils.Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClientWithTimeout(d time.Duration) *http.Client {
	if d <= 0 {
		d = defaultHTTPTimeout
	}
	return &http.Client{Timeout: d}
}

// FetchUsers issues a single GET to the users endpoint. A non-2xx response is
// returned as *APIError carrying the server message, a transport failure as
// *NetworkError. An undecodable 2xx body is a plain wrapped error.
func (c *Client) FetchUsers(ctx context.Context) ([]models.User, error) {
	if c.url == "" {
		return nil, errors.New("client: users url is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("users request failed", zap.String("url", c.url), zap.Error(err))
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		apiErr := buildAPIError(resp.StatusCode, body)
		c.logger.Warn("users endpoint returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return nil, apiErr
	}

	var users []models.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		c.logger.Warn("decode users response", zap.Error(err))
		return nil, fmt.Errorf("client: decode users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}

	c.logger.Debug("fetched users", zap.Int("count", len(users)))
	return users, nil
}

func buildAPIError(statusCode int, body []byte) *APIError {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		if msg := strings.TrimSpace(envelope.Error); msg != "" {
			return &APIError{StatusCode: statusCode, Message: msg}
		}
	}
	return &APIError{StatusCode: statusCode, Message: FallbackMessage}
}

// Message returns the text shown to the user for a fetch error.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Error()
	}

	return FallbackMessage
}
