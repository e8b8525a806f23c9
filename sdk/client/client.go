// Package client is a small REST client for the factory backend, used by
// the browser tests as a side channel for data the UI does not show.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/danielsheh02/willy-wonka-factory/sdk/auth"
	"github.com/danielsheh02/willy-wonka-factory/sdk/errors"
	"github.com/danielsheh02/willy-wonka-factory/sdk/types"
)

// Client represents the factory API client
type Client struct {
	httpClient *resty.Client
	baseURL    string
	auth       auth.Authenticator

	// Service clients
	Auth    *AuthService
	Tickets *TicketsService
}

// Config represents client configuration
type Config struct {
	BaseURL    string
	Auth       auth.Authenticator
	UserAgent  string
	Timeout    time.Duration
	RetryCount int // negative disables retries
	Debug      bool
}

// New creates a new API client
func New(config *Config) *Client {
	if config.UserAgent == "" {
		config.UserAgent = "wonka-e2e/1.0"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RetryCount == 0 {
		config.RetryCount = 2
	}

	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetRetryCount(max(config.RetryCount, 0)).
		SetHeader("User-Agent", config.UserAgent).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if config.Debug {
		httpClient.SetDebug(true)
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    config.BaseURL,
		auth:       config.Auth,
	}

	client.Auth = &AuthService{client: client}
	client.Tickets = &TicketsService{client: client}

	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		return client.setAuth(req)
	})

	return client
}

// SetAuth updates the client's authentication
func (c *Client) SetAuth(authenticator auth.Authenticator) {
	c.auth = authenticator
}

// setAuth sets authentication headers on requests
func (c *Client) setAuth(req *resty.Request) error {
	if c.auth == nil {
		return nil
	}

	if c.auth.IsExpired() {
		if err := c.auth.Refresh(); err != nil {
			return fmt.Errorf("failed to refresh authentication: %w", err)
		}
	}

	if header := c.auth.GetAuthHeader(); header != "" {
		req.SetHeader("Authorization", header)
	}
	return nil
}

// responseError maps a non-2xx response to an APIError.
func responseError(resp *resty.Response) error {
	var body types.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if msg := firstNonEmpty(body.Error, body.Message); msg != "" {
			return errors.NewAPIError(resp.StatusCode(), msg, "")
		}
	}

	switch resp.StatusCode() {
	case 400:
		return errors.ErrBadRequest
	case 401:
		return errors.ErrUnauthorized
	case 403:
		return errors.ErrForbidden
	case 404:
		return errors.ErrNotFound
	case 500:
		return errors.ErrInternalServer
	default:
		return errors.NewAPIError(resp.StatusCode(), "Unknown error", string(resp.Body()))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	req := c.httpClient.R().SetContext(ctx)
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Get(path)
	if err != nil {
		return &errors.NetworkError{
			Operation: "GET",
			URL:       c.baseURL + path,
			Err:       err,
		}
	}
	if resp.IsError() {
		return responseError(resp)
	}
	return nil
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	req := c.httpClient.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Post(path)
	if err != nil {
		return &errors.NetworkError{
			Operation: "POST",
			URL:       c.baseURL + path,
			Err:       err,
		}
	}
	if resp.IsError() {
		return responseError(resp)
	}
	return nil
}
