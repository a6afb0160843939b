/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/

// Package elastic is the Elasticsearch API surface of esadmctl. It wraps the
// official go-elasticsearch client with the uniform response handling every
// operation relies on: any non-200 status short-circuits with a typed APIError
// before the body is ever parsed as a domain object, and nothing is retried.
package elastic

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/esadmin/esadmctl/pkg/config"
	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
)

// Client talks to one Elasticsearch cluster.
type Client struct {
	es *elasticsearch.Client
}

// NewClient creates a client for the given cluster settings.
func NewClient(cluster config.Cluster) (*Client, error) {
	cfg := elasticsearch.Config{
		Addresses: cluster.Addresses,
		Username:  cluster.Username,
		Password:  cluster.Password,
	}
	if cluster.InsecureSkipTLSVerify {
		cfg.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return NewClientFromConfig(cfg)
}

// NewClientFromConfig creates a client from a raw go-elasticsearch config.
// Tests use it to install a mock transport.
func NewClientFromConfig(cfg elasticsearch.Config) (*Client, error) {
	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, adminerrors.Wrap(adminerrors.ErrCodeConfig, err, "creating elasticsearch client")
	}
	return &Client{es: es}, nil
}

// APIError is a non-200 response from the cluster. The body is carried raw so
// the operator sees exactly what the cluster said; it is never decoded.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	return fmt.Sprintf("elasticsearch returned %s: %s", e.Status, body)
}

// IsNotFound reports whether the error wraps a 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return adminerrors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// consume validates the response and returns its body. Non-2xx responses
// short-circuit into an APIError without touching the body as a domain object.
func consume(res *esapi.Response, err error, operation string) ([]byte, error) {
	if err != nil {
		return nil, adminerrors.Wrap(adminerrors.ErrCodeRequest, err, "%s", operation)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, adminerrors.Wrap(adminerrors.ErrCodeResponse, err, "reading %s response", operation)
	}

	if res.IsError() {
		apiErr := &APIError{StatusCode: res.StatusCode, Status: res.Status(), Body: string(raw)}
		return nil, adminerrors.Wrap(adminerrors.ErrCodeResponse, apiErr, "%s", operation)
	}
	return raw, nil
}

// decode validates the response and unmarshals the body into out.
func decode(res *esapi.Response, err error, operation string, out any) error {
	raw, err := consume(res, err, operation)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return adminerrors.Wrap(adminerrors.ErrCodeResponse, err, "%s returned malformed JSON", operation)
	}
	return nil
}

// perform issues a request for endpoints the typed esapi surface does not
// cover (for example SLM policies). Paths are built by callers with
// joinPath; bodies are always structured DTOs marshaled here.
func (c *Client) perform(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return adminerrors.Wrap(adminerrors.ErrCodeInternal, err, "marshaling %s body", path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, reader)
	if err != nil {
		return adminerrors.Wrap(adminerrors.ErrCodeRequest, err, "building %s %s", method, path)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpRes, err := c.es.Perform(req)
	if err != nil {
		return adminerrors.Wrap(adminerrors.ErrCodeRequest, err, "%s %s", method, path)
	}
	res := &esapi.Response{StatusCode: httpRes.StatusCode, Header: httpRes.Header, Body: httpRes.Body}

	if out == nil {
		_, err := consume(res, nil, method+" "+path)
		return err
	}
	return decode(res, nil, method+" "+path, out)
}

// joinPath builds an API path from segments, escaping nothing: index and
// policy names are passed through the way the REST API expects them.
func joinPath(segments ...string) string {
	var path strings.Builder
	for _, s := range segments {
		path.WriteString("/")
		path.WriteString(s)
	}
	return path.String()
}

// Ping checks connectivity and returns basic cluster info.
func (c *Client) Ping(ctx context.Context) (Info, error) {
	res, err := c.es.Info(c.es.Info.WithContext(ctx))
	var info Info
	err = decode(res, err, "cluster info", &info)
	return info, err
}

// Info is the root endpoint response.
type Info struct {
	Name        string `json:"name"`
	ClusterName string `json:"cluster_name"`
	Version     struct {
		Number string `json:"number"`
	} `json:"version"`
}
