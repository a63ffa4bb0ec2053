package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds every request, including reading the response.
const DefaultTimeout = 10 * time.Second

// Client talks to the catalog REST API.
type Client struct {
	http    *resty.Client
	tokens  TokenStore
	timeout time.Duration
}

type Option func(*Client)

// WithTokenStore replaces the default in-memory token store.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.tokens = store }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient sends requests through hc, e.g. an httptest server client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = resty.NewWithClient(hc) }
}

// New builds a client for the API rooted at baseURL (scheme and host, no
// /api suffix).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:    resty.New(),
		tokens:  &MemoryTokenStore{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return c
}

// Tokens exposes the token store the client reads from.
func (c *Client) Tokens() TokenStore { return c.tokens }

type call struct {
	method     string
	path       string
	pathParams map[string]string
	query      map[string]string
	body       any
}

// do sends the request and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, in call, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := c.http.R().SetContext(ctx)
	if token := c.tokens.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if in.pathParams != nil {
		req.SetPathParams(in.pathParams)
	}
	if in.query != nil {
		req.SetQueryParams(in.query)
	}
	if in.body != nil {
		req.SetBody(in.body)
	}

	resp, err := req.Execute(in.method, in.path)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w", in.method, in.path, ErrTimeout)
		}
		return fmt.Errorf("%s %s: %w", in.method, in.path, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		if err := c.tokens.ClearToken(); err != nil {
			log.Warn().Err(err).Msg("api: clear token failed")
		}
		return fmt.Errorf("%w: %w", ErrSessionExpired, &APIError{
			Status:  http.StatusUnauthorized,
			Message: messageOf(resp.Body()),
		})
	}

	if !resp.IsSuccess() {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(resp.Body(), &payload); err != nil {
			return ErrInvalidJSON
		}
		if payload.Message == "" {
			payload.Message = "Something went wrong"
		}
		return &APIError{Status: resp.StatusCode(), Message: payload.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return ErrInvalidJSON
	}
	return nil
}

func messageOf(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	return payload.Message
}
