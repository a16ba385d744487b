// Package tagcount talks to the service that counts published articles per tag.
package tagcount

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Path is the endpoint, relative to the service base URL, that lists tag counts.
const Path = "/api/article/tags/count"

const maxBodySize = 1 << 20

// Count is one tag and the number of articles carrying it.
type Count struct {
	Tag   string `json:"tag" validate:"required"`
	Count int    `json:"count" validate:"gte=0"`
}

// Response is the envelope the service wraps every payload in.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type countsResponse struct {
	Code    *int     `json:"code"`
	Message string   `json:"message"`
	Data    *[]Count `json:"data"`
}

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tagcount: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client fetches tag counts over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a Client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListArticleTagCounts returns every tag with its article count, in the
// order the service sends them.
func (c *Client) ListArticleTagCounts(ctx context.Context) ([]Count, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+Path, nil)
	if err != nil {
		return nil, fmt.Errorf("tagcount: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tagcount: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("tagcount: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	counts, err := decode(body)
	if err != nil {
		return nil, err
	}
	for i := range counts {
		if err := c.validate.Struct(&counts[i]); err != nil {
			return nil, fmt.Errorf("tagcount: item %d: %w", i, err)
		}
	}
	return counts, nil
}

// decode accepts either the {code,message,data} envelope or a bare array.
// An envelope must carry code 200 and a data array; anything else is an error.
func decode(body []byte) ([]Count, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var counts []Count
		if err := json.Unmarshal(trimmed, &counts); err != nil {
			return nil, fmt.Errorf("tagcount: decode: %w", err)
		}
		return counts, nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("tagcount: decode: unexpected body %.32q", trimmed)
	}
	var env countsResponse
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("tagcount: decode: %w", err)
	}
	if env.Code == nil {
		return nil, fmt.Errorf("tagcount: decode: envelope without code")
	}
	if *env.Code != http.StatusOK {
		return nil, fmt.Errorf("tagcount: service error %d: %s", *env.Code, env.Message)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("tagcount: decode: envelope without data")
	}
	return *env.Data, nil
}
