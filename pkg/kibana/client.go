/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/

// Package kibana is the Kibana API surface of esadmctl: Fleet management,
// saved objects, spaces, and security listings. No Go client library exists
// for these endpoints, so requests are built directly against the documented
// HTTP contract with the same non-200 short-circuit rule as the
// Elasticsearch side.
package kibana

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

	"github.com/google/uuid"

	"github.com/esadmin/esadmctl/pkg/config"
	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
)

// Client talks to one Kibana server.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

// Option is a functional option for configuring Client instances.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Tests use it to install
// a mock transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a Kibana client for the given settings.
func NewClient(cfg config.Kibana, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, adminerrors.New(adminerrors.ErrCodeConfig, "kibana base URL is not configured")
	}
	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError is a non-2xx response from Kibana, carried raw.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	return fmt.Sprintf("kibana returned %d: %s", e.StatusCode, body)
}

// do issues one request. Mutating endpoints require the kbn-xsrf header;
// it is set unconditionally since Kibana ignores it on reads.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return adminerrors.Wrap(adminerrors.ErrCodeInternal, err, "marshaling %s body", path)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return adminerrors.Wrap(adminerrors.ErrCodeRequest, err, "building %s %s", method, path)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("kbn-xsrf", "true")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return adminerrors.Wrap(adminerrors.ErrCodeRequest, err, "%s %s", method, path)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return adminerrors.Wrap(adminerrors.ErrCodeResponse, err, "reading %s response", path)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{StatusCode: res.StatusCode, Body: string(raw)}
		return adminerrors.Wrap(adminerrors.ErrCodeResponse, apiErr, "%s %s", method, path)
	}

	if out == nil {
		return nil
	}
	if rawOut, ok := out.(*json.RawMessage); ok {
		*rawOut = raw
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return adminerrors.Wrap(adminerrors.ErrCodeResponse, err, "%s returned malformed JSON", path)
	}
	return nil
}
