// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search talks to the remote search backend: a "ping" endpoint used
// to wake the backend up and a "search" endpoint returning result records.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/site-search/internal/httputil"
	"github.com/pdiddy/site-search/pkg/types"
)

const (
	pingEndpoint   = "ping"
	searchEndpoint = "search"
)

var (
	// ErrTransport matches errors where no response was received.
	ErrTransport = errors.New("search backend unreachable")

	// ErrMalformedResponse matches 200 responses whose body is not a
	// search response envelope.
	ErrMalformedResponse = errors.New("malformed search response")
)

// TransportError wraps a network-level failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%v: %v", ErrTransport, e.Err) }

// Unwrap exposes both the sentinel and the underlying error.
func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// StatusError is returned when the backend answers with a status other
// than 200. The body is not read.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search backend returned HTTP %d", e.StatusCode)
}

// Client calls the search backend.
type Client struct {
	// BaseURL is the backend base; endpoint names are appended to it.
	BaseURL string

	// APIKey is sent as X-API-Key on every request.
	APIKey string

	// UserAgent is sent when non-empty.
	UserAgent string

	// HTTP is the transport. nil uses http.DefaultClient.
	HTTP *http.Client
}

// NewClient builds a Client from the widget configuration.
func NewClient(cfg types.WidgetConfig) *Client {
	return &Client{
		BaseURL:   cfg.SearchURL,
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
		HTTP:      httputil.NewClient(cfg.Timeout),
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// Ping sends a warm-up request. The response body is discarded; the status
// is reported only so callers can log it.
func (c *Client) Ping(ctx context.Context) error {
	req, err := httputil.NewAPIRequest(ctx, c.BaseURL, pingEndpoint, "", c.APIKey, c.UserAgent)
	if err != nil {
		return err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer httputil.Drain(resp)

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

// Search runs the query described by params and decodes the result
// envelope. Errors are a *TransportError, a *StatusError, or wrap
// ErrMalformedResponse.
func (c *Client) Search(ctx context.Context, params Params) (types.SearchResponse, error) {
	req, err := httputil.NewAPIRequest(ctx, c.BaseURL, searchEndpoint, params.Encode(), c.APIKey, c.UserAgent)
	if err != nil {
		return types.SearchResponse{}, err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return types.SearchResponse{}, &TransportError{Err: err}
	}
	defer httputil.Drain(resp)

	if resp.StatusCode != http.StatusOK {
		return types.SearchResponse{}, &StatusError{StatusCode: resp.StatusCode}
	}

	var sr types.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return types.SearchResponse{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return sr, nil
}
