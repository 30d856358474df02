// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the backend client and
// the blog tooling.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIKeyHeader carries the static backend API key.
const APIKeyHeader = "X-API-Key"

// BrowserUserAgent is sent when fetching third-party pages that reject
// unknown clients.
const BrowserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// NewClient returns an HTTP client with the given timeout. A zero timeout
// waits indefinitely; callers bound such requests through their context.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// JoinURL appends endpoint to base. The endpoint is relative to base the way
// a browser resolves "ping" against "https://host/api/", so a base without a
// trailing slash gets one.
func JoinURL(base, endpoint string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.TrimPrefix(endpoint, "/")
}

// NewAPIRequest builds a GET request for endpoint under base. rawQuery is
// appended verbatim after "?" when non-empty. The API key header is set when
// apiKey is non-empty, the User-Agent when userAgent is non-empty.
func NewAPIRequest(ctx context.Context, base, endpoint, rawQuery, apiKey, userAgent string) (*http.Request, error) {
	u := JoinURL(base, endpoint)
	if rawQuery != "" {
		u += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set(APIKeyHeader, apiKey)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	return req, nil
}

// Get fetches rawURL with the given User-Agent and returns the response when
// the status is 2xx. Any other status closes the body and returns an error.
func Get(ctx context.Context, client *http.Client, rawURL, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		Drain(resp)
		return nil, fmt.Errorf("GET %s returned HTTP %d", rawURL, resp.StatusCode)
	}
	return resp, nil
}

// maxDrain caps how much of an unread body Drain consumes. A longer body
// costs the connection instead.
const maxDrain = 64 << 10

// Drain discards up to maxDrain bytes of the rest of the body and closes it
// so the connection can be reused.
func Drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
	resp.Body.Close()
}
